// Package rbac implements permission resolution and the authorization gate.
//
// Identity is modeled as users holding roles and roles holding permissions.
// Login snapshots the permission ids reachable through a user's roles into a
// signed token; the gate verifies that token and checks required permission
// names against it without walking the role graph again.
package rbac

import "github.com/google/uuid"

// Role is a named bundle of permissions assignable to users.
type Role struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Permission is an atomic named capability, e.g. "setting.create".
type Permission struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// UserRole links a user to a role. Its identity is the composite key; there
// is no independent row id.
type UserRole struct {
	UserID uuid.UUID `json:"user_id"`
	RoleID uuid.UUID `json:"role_id"`
}

// RolePermission links a role to a permission.
type RolePermission struct {
	RoleID       uuid.UUID `json:"role_id"`
	PermissionID uuid.UUID `json:"permission_id"`
}

// Required permission names for the RBAC management endpoints. Every
// mutating or reading endpoint checks exactly one of these.
const (
	PermSettingCreate = "setting.create"
	PermSettingRead   = "setting.read"
	PermSettingUpdate = "setting.update"
	PermSettingDelete = "setting.delete"
)
