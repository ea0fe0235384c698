package rbac

import (
	"context"

	"github.com/google/uuid"
)

// fakeStore is an in-memory Store used by the package tests.
type fakeStore struct {
	users       map[uuid.UUID]struct{}
	roles       map[uuid.UUID]string
	permissions map[uuid.UUID]string
	userRoles   map[uuid.UUID][]uuid.UUID // user id -> role ids, ordered
	rolePerms   map[uuid.UUID][]uuid.UUID // role id -> permission ids, ordered

	// Error injection.
	permissionNameErr error
	roleIDsErr        error
	permissionIDsErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       make(map[uuid.UUID]struct{}),
		roles:       make(map[uuid.UUID]string),
		permissions: make(map[uuid.UUID]string),
		userRoles:   make(map[uuid.UUID][]uuid.UUID),
		rolePerms:   make(map[uuid.UUID][]uuid.UUID),
	}
}

func (f *fakeStore) addUser() uuid.UUID {
	id := uuid.New()
	f.users[id] = struct{}{}
	return id
}

func (f *fakeStore) addRole(name string) uuid.UUID {
	id := uuid.New()
	f.roles[id] = name
	return id
}

func (f *fakeStore) addPermission(name string) uuid.UUID {
	id := uuid.New()
	f.permissions[id] = name
	return id
}

func (f *fakeStore) link(userID, roleID uuid.UUID) {
	f.userRoles[userID] = append(f.userRoles[userID], roleID)
}

func (f *fakeStore) grant(roleID, permissionID uuid.UUID) {
	f.rolePerms[roleID] = append(f.rolePerms[roleID], permissionID)
}

func (f *fakeStore) RoleIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if f.roleIDsErr != nil {
		return nil, f.roleIDsErr
	}
	return append([]uuid.UUID(nil), f.userRoles[userID]...), nil
}

func (f *fakeStore) PermissionIDsByRole(ctx context.Context, roleID uuid.UUID) ([]uuid.UUID, error) {
	if f.permissionIDsErr != nil {
		return nil, f.permissionIDsErr
	}
	return append([]uuid.UUID(nil), f.rolePerms[roleID]...), nil
}

func (f *fakeStore) PermissionNameByID(ctx context.Context, id uuid.UUID) (string, error) {
	if f.permissionNameErr != nil {
		return "", f.permissionNameErr
	}
	name, ok := f.permissions[id]
	if !ok {
		return "", ErrNotFound
	}
	return name, nil
}

func (f *fakeStore) PermissionByID(ctx context.Context, id uuid.UUID) (*Permission, error) {
	name, ok := f.permissions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &Permission{ID: id, Name: name}, nil
}

func (f *fakeStore) PermissionByName(ctx context.Context, name string) (*Permission, error) {
	for id, n := range f.permissions {
		if n == name {
			return &Permission{ID: id, Name: n}, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeStore) ListPermissions(ctx context.Context) ([]Permission, error) {
	var out []Permission
	for id, name := range f.permissions {
		out = append(out, Permission{ID: id, Name: name})
	}
	return out, nil
}

func (f *fakeStore) CreatePermission(ctx context.Context, name string) (*Permission, error) {
	id := f.addPermission(name)
	return &Permission{ID: id, Name: name}, nil
}

func (f *fakeStore) UpdatePermissionName(ctx context.Context, id uuid.UUID, name string) (*Permission, error) {
	if _, ok := f.permissions[id]; !ok {
		return nil, ErrNotFound
	}
	f.permissions[id] = name
	return &Permission{ID: id, Name: name}, nil
}

func (f *fakeStore) DeletePermission(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.permissions[id]; !ok {
		return ErrNotFound
	}
	delete(f.permissions, id)
	for roleID, perms := range f.rolePerms {
		kept := perms[:0]
		for _, p := range perms {
			if p != id {
				kept = append(kept, p)
			}
		}
		f.rolePerms[roleID] = kept
	}
	return nil
}

func (f *fakeStore) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.users[id]
	return ok, nil
}

func (f *fakeStore) RoleExists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.roles[id]
	return ok, nil
}

func (f *fakeStore) UserRoleLink(ctx context.Context, userID, roleID uuid.UUID) (*UserRole, error) {
	for _, r := range f.userRoles[userID] {
		if r == roleID {
			return &UserRole{UserID: userID, RoleID: roleID}, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeStore) CreateUserRole(ctx context.Context, userID, roleID uuid.UUID) (*UserRole, error) {
	f.link(userID, roleID)
	return &UserRole{UserID: userID, RoleID: roleID}, nil
}

func (f *fakeStore) UpdateUserRole(ctx context.Context, userID, oldRoleID, newRoleID uuid.UUID) (*UserRole, error) {
	roles := f.userRoles[userID]
	for i, r := range roles {
		if r == oldRoleID {
			roles[i] = newRoleID
			return &UserRole{UserID: userID, RoleID: newRoleID}, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeStore) DeleteUserRole(ctx context.Context, userID, roleID uuid.UUID) error {
	roles := f.userRoles[userID]
	for i, r := range roles {
		if r == roleID {
			f.userRoles[userID] = append(roles[:i], roles[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeStore) RolesByUser(ctx context.Context, userID uuid.UUID) ([]Role, error) {
	var out []Role
	for _, r := range f.userRoles[userID] {
		out = append(out, Role{ID: r, Name: f.roles[r]})
	}
	return out, nil
}

func (f *fakeStore) RolePermissionLink(ctx context.Context, roleID, permissionID uuid.UUID) (*RolePermission, error) {
	for _, p := range f.rolePerms[roleID] {
		if p == permissionID {
			return &RolePermission{RoleID: roleID, PermissionID: permissionID}, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeStore) CreateRolePermission(ctx context.Context, roleID, permissionID uuid.UUID) (*RolePermission, error) {
	f.grant(roleID, permissionID)
	return &RolePermission{RoleID: roleID, PermissionID: permissionID}, nil
}

func (f *fakeStore) UpdateRolePermission(ctx context.Context, roleID, oldPermissionID, newPermissionID uuid.UUID) (*RolePermission, error) {
	perms := f.rolePerms[roleID]
	for i, p := range perms {
		if p == oldPermissionID {
			perms[i] = newPermissionID
			return &RolePermission{RoleID: roleID, PermissionID: newPermissionID}, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeStore) DeleteRolePermission(ctx context.Context, roleID, permissionID uuid.UUID) error {
	perms := f.rolePerms[roleID]
	for i, p := range perms {
		if p == permissionID {
			f.rolePerms[roleID] = append(perms[:i], perms[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeStore) PermissionsByRole(ctx context.Context, roleID uuid.UUID) ([]Permission, error) {
	var out []Permission
	for _, p := range f.rolePerms[roleID] {
		out = append(out, Permission{ID: p, Name: f.permissions[p]})
	}
	return out, nil
}

var _ Store = (*fakeStore)(nil)
