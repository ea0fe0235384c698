package rbac

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Resolver computes the permission set reachable from a user through their
// roles. It is stateless; every call reads the store directly.
type Resolver struct {
	store Store
}

// NewResolver constructs a Resolver over the given store.
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// RoleIDsForUser returns the ids of all roles held by the user.
func (r *Resolver) RoleIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return r.store.RoleIDsByUser(ctx, userID)
}

// PermissionIDsForRoles concatenates the permission ids of each role in the
// given order. A permission attached through more than one role appears once
// per role; the result is a list, not a set.
func (r *Resolver) PermissionIDsForRoles(ctx context.Context, roleIDs []uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, roleID := range roleIDs {
		permIDs, err := r.store.PermissionIDsByRole(ctx, roleID)
		if err != nil {
			return nil, err
		}
		ids = append(ids, permIDs...)
	}
	return ids, nil
}

// PermissionIDsForUser resolves both hops at once: user → roles → permissions.
func (r *Resolver) PermissionIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	roleIDs, err := r.RoleIDsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return r.PermissionIDsForRoles(ctx, roleIDs)
}

// PermissionNames resolves each id to its current name. Ids whose permission
// row has since been deleted are skipped: a dangling id in a token snapshot
// simply no longer grants anything. Store failures propagate.
func (r *Resolver) PermissionNames(ctx context.Context, ids []uuid.UUID) ([]string, error) {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		name, err := r.store.PermissionNameByID(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}
