package rbac

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the persistence operations the rbac module needs. The pgx
// implementation lives in pg.go; tests substitute an in-memory fake.
type Store interface {
	// Resolver reads.
	RoleIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	PermissionIDsByRole(ctx context.Context, roleID uuid.UUID) ([]uuid.UUID, error)
	PermissionNameByID(ctx context.Context, id uuid.UUID) (string, error)

	// Permission entity.
	PermissionByID(ctx context.Context, id uuid.UUID) (*Permission, error)
	PermissionByName(ctx context.Context, name string) (*Permission, error)
	ListPermissions(ctx context.Context) ([]Permission, error)
	CreatePermission(ctx context.Context, name string) (*Permission, error)
	UpdatePermissionName(ctx context.Context, id uuid.UUID, name string) (*Permission, error)
	DeletePermission(ctx context.Context, id uuid.UUID) error

	// Referential existence checks for the join endpoints.
	UserExists(ctx context.Context, id uuid.UUID) (bool, error)
	RoleExists(ctx context.Context, id uuid.UUID) (bool, error)

	// User-role links.
	UserRoleLink(ctx context.Context, userID, roleID uuid.UUID) (*UserRole, error)
	CreateUserRole(ctx context.Context, userID, roleID uuid.UUID) (*UserRole, error)
	UpdateUserRole(ctx context.Context, userID, oldRoleID, newRoleID uuid.UUID) (*UserRole, error)
	DeleteUserRole(ctx context.Context, userID, roleID uuid.UUID) error
	RolesByUser(ctx context.Context, userID uuid.UUID) ([]Role, error)

	// Role-permission links.
	RolePermissionLink(ctx context.Context, roleID, permissionID uuid.UUID) (*RolePermission, error)
	CreateRolePermission(ctx context.Context, roleID, permissionID uuid.UUID) (*RolePermission, error)
	UpdateRolePermission(ctx context.Context, roleID, oldPermissionID, newPermissionID uuid.UUID) (*RolePermission, error)
	DeleteRolePermission(ctx context.Context, roleID, permissionID uuid.UUID) error
	PermissionsByRole(ctx context.Context, roleID uuid.UUID) ([]Permission, error)
}
