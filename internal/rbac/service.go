package rbac

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Service carries the business rules for permissions and the two link
// relations: uniqueness conflicts, referential checks before insert, and
// explicit cascades on delete.
type Service struct {
	store Store
}

// NewService constructs a Service over the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// CreatePermission inserts a new permission, rejecting duplicate names.
func (s *Service) CreatePermission(ctx context.Context, name string) (*Permission, error) {
	existing, err := s.store.PermissionByName(ctx, name)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, &AlreadyExistsError{
			Entity: "permission",
			Detail: fmt.Sprintf("permission id: %s, permission name: %s", existing.ID, existing.Name),
		}
	}
	return s.store.CreatePermission(ctx, name)
}

// ListPermissions returns all permissions.
func (s *Service) ListPermissions(ctx context.Context) ([]Permission, error) {
	return s.store.ListPermissions(ctx)
}

// UpdatePermission renames an existing permission.
func (s *Service) UpdatePermission(ctx context.Context, id uuid.UUID, name string) (*Permission, error) {
	if _, err := s.store.PermissionByID(ctx, id); err != nil {
		return nil, s.permissionErr(id, err)
	}
	return s.store.UpdatePermissionName(ctx, id, name)
}

// DeletePermission removes a permission together with every role link that
// references it.
func (s *Service) DeletePermission(ctx context.Context, id uuid.UUID) error {
	if _, err := s.store.PermissionByID(ctx, id); err != nil {
		return s.permissionErr(id, err)
	}
	return s.store.DeletePermission(ctx, id)
}

// CreateUserRole links a user to a role after verifying both sides exist and
// the link is new.
func (s *Service) CreateUserRole(ctx context.Context, userID, roleID uuid.UUID) (*UserRole, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.requireRole(ctx, roleID); err != nil {
		return nil, err
	}
	if link, err := s.store.UserRoleLink(ctx, userID, roleID); err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	} else if link != nil {
		return nil, &AlreadyExistsError{
			Entity: "user has role",
			Detail: fmt.Sprintf("user id: %s, role id: %s", link.UserID, link.RoleID),
		}
	}
	return s.store.CreateUserRole(ctx, userID, roleID)
}

// RolesOfUser returns the roles currently linked to the user.
func (s *Service) RolesOfUser(ctx context.Context, userID uuid.UUID) ([]Role, error) {
	return s.store.RolesByUser(ctx, userID)
}

// UpdateUserRole replaces one role link with another for the same user.
func (s *Service) UpdateUserRole(ctx context.Context, userID, oldRoleID, newRoleID uuid.UUID) (*UserRole, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.requireRole(ctx, newRoleID); err != nil {
		return nil, err
	}
	if _, err := s.store.UserRoleLink(ctx, userID, oldRoleID); err != nil {
		return nil, s.userRoleErr(userID, oldRoleID, err)
	}
	return s.store.UpdateUserRole(ctx, userID, oldRoleID, newRoleID)
}

// DeleteUserRole removes a user-role link.
func (s *Service) DeleteUserRole(ctx context.Context, userID, roleID uuid.UUID) error {
	if _, err := s.store.UserRoleLink(ctx, userID, roleID); err != nil {
		return s.userRoleErr(userID, roleID, err)
	}
	return s.store.DeleteUserRole(ctx, userID, roleID)
}

// CreateRolePermission links a role to a permission after verifying both
// sides exist and the link is new.
func (s *Service) CreateRolePermission(ctx context.Context, roleID, permissionID uuid.UUID) (*RolePermission, error) {
	if err := s.requireRole(ctx, roleID); err != nil {
		return nil, err
	}
	if _, err := s.store.PermissionByID(ctx, permissionID); err != nil {
		return nil, s.permissionErr(permissionID, err)
	}
	if link, err := s.store.RolePermissionLink(ctx, roleID, permissionID); err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	} else if link != nil {
		return nil, &AlreadyExistsError{
			Entity: "role has permission",
			Detail: fmt.Sprintf("no role id: %s, permission id: %s", link.RoleID, link.PermissionID),
		}
	}
	return s.store.CreateRolePermission(ctx, roleID, permissionID)
}

// PermissionsOfRole returns the permissions currently linked to the role.
func (s *Service) PermissionsOfRole(ctx context.Context, roleID uuid.UUID) ([]Permission, error) {
	return s.store.PermissionsByRole(ctx, roleID)
}

// UpdateRolePermission replaces one permission link with another for the
// same role.
func (s *Service) UpdateRolePermission(ctx context.Context, roleID, oldPermissionID, newPermissionID uuid.UUID) (*RolePermission, error) {
	if err := s.requireRole(ctx, roleID); err != nil {
		return nil, err
	}
	if _, err := s.store.PermissionByID(ctx, newPermissionID); err != nil {
		return nil, s.permissionErr(newPermissionID, err)
	}
	if _, err := s.store.RolePermissionLink(ctx, roleID, oldPermissionID); err != nil {
		return nil, s.rolePermissionErr(roleID, oldPermissionID, err)
	}
	return s.store.UpdateRolePermission(ctx, roleID, oldPermissionID, newPermissionID)
}

// DeleteRolePermission removes a role-permission link.
func (s *Service) DeleteRolePermission(ctx context.Context, roleID, permissionID uuid.UUID) error {
	if _, err := s.store.RolePermissionLink(ctx, roleID, permissionID); err != nil {
		return s.rolePermissionErr(roleID, permissionID, err)
	}
	return s.store.DeleteRolePermission(ctx, roleID, permissionID)
}

func (s *Service) requireUser(ctx context.Context, id uuid.UUID) error {
	ok, err := s.store.UserExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return &NotFoundError{Entity: "user", Detail: fmt.Sprintf("no user id: %s", id)}
	}
	return nil
}

func (s *Service) requireRole(ctx context.Context, id uuid.UUID) error {
	ok, err := s.store.RoleExists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return &NotFoundError{Entity: "role", Detail: fmt.Sprintf("no role id: %s", id)}
	}
	return nil
}

func (s *Service) permissionErr(id uuid.UUID, err error) error {
	if errors.Is(err, ErrNotFound) {
		return &NotFoundError{Entity: "permission", Detail: fmt.Sprintf("no permission id: %s", id)}
	}
	return err
}

func (s *Service) userRoleErr(userID, roleID uuid.UUID, err error) error {
	if errors.Is(err, ErrNotFound) {
		return &NotFoundError{
			Entity: "user has role",
			Detail: fmt.Sprintf("no user id: %s, role id: %s", userID, roleID),
		}
	}
	return err
}

func (s *Service) rolePermissionErr(roleID, permissionID uuid.UUID, err error) error {
	if errors.Is(err, ErrNotFound) {
		return &NotFoundError{
			Entity: "role has permission",
			Detail: fmt.Sprintf("no role id: %s, permission id: %s", roleID, permissionID),
		}
	}
	return err
}
