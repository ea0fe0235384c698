package rbac

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/full-stack-rbac/full-stack-rbac/internal/platform/db"
)

// PGStore implements Store using PostgreSQL.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore constructs a PostgreSQL-backed store.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

var _ Store = (*PGStore)(nil)

// RoleIDsByUser returns the ids of all roles linked to the user. The
// composite key on user_has_role de-duplicates implicitly.
func (s *PGStore) RoleIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.pool.Query(ctx, `SELECT role_id FROM user_has_role WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	return scanIDs(rows)
}

// PermissionIDsByRole returns the ids of all permissions linked to the role.
func (s *PGStore) PermissionIDsByRole(ctx context.Context, roleID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.pool.Query(ctx, `SELECT permission_id FROM role_has_permission WHERE role_id = $1`, roleID)
	if err != nil {
		return nil, err
	}
	return scanIDs(rows)
}

// PermissionNameByID resolves a permission id to its current name.
func (s *PGStore) PermissionNameByID(ctx context.Context, id uuid.UUID) (string, error) {
	var name string
	err := s.pool.QueryRow(ctx, `SELECT name FROM permission WHERE id = $1`, id).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return name, nil
}

// PermissionByID fetches a permission by id.
func (s *PGStore) PermissionByID(ctx context.Context, id uuid.UUID) (*Permission, error) {
	return scanPermission(s.pool.QueryRow(ctx, `SELECT id, name FROM permission WHERE id = $1`, id))
}

// PermissionByName fetches a permission by name.
func (s *PGStore) PermissionByName(ctx context.Context, name string) (*Permission, error) {
	return scanPermission(s.pool.QueryRow(ctx, `SELECT id, name FROM permission WHERE name = $1`, name))
}

// ListPermissions returns all permissions.
func (s *PGStore) ListPermissions(ctx context.Context) ([]Permission, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name FROM permission`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var perms []Permission
	for rows.Next() {
		var p Permission
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

// CreatePermission inserts a new permission.
func (s *PGStore) CreatePermission(ctx context.Context, name string) (*Permission, error) {
	return scanPermission(s.pool.QueryRow(ctx,
		`INSERT INTO permission (name) VALUES ($1) RETURNING id, name`, name))
}

// UpdatePermissionName renames a permission.
func (s *PGStore) UpdatePermissionName(ctx context.Context, id uuid.UUID, name string) (*Permission, error) {
	return scanPermission(s.pool.QueryRow(ctx,
		`UPDATE permission SET name = $2 WHERE id = $1 RETURNING id, name`, id, name))
}

// DeletePermission removes a permission after deleting every
// role_has_permission row that references it.
func (s *PGStore) DeletePermission(ctx context.Context, id uuid.UUID) error {
	return db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM role_has_permission WHERE permission_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM permission WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// UserExists reports whether a user row exists.
func (s *PGStore) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM "user" WHERE id = $1)`, id)
}

// RoleExists reports whether a role row exists.
func (s *PGStore) RoleExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM role WHERE id = $1)`, id)
}

// UserRoleLink fetches a single user-role link by its composite key.
func (s *PGStore) UserRoleLink(ctx context.Context, userID, roleID uuid.UUID) (*UserRole, error) {
	link := &UserRole{}
	err := s.pool.QueryRow(ctx,
		`SELECT user_id, role_id FROM user_has_role WHERE user_id = $1 AND role_id = $2`,
		userID, roleID).Scan(&link.UserID, &link.RoleID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return link, nil
}

// CreateUserRole inserts a user-role link.
func (s *PGStore) CreateUserRole(ctx context.Context, userID, roleID uuid.UUID) (*UserRole, error) {
	if _, err := s.pool.Exec(ctx,
		`INSERT INTO user_has_role (user_id, role_id) VALUES ($1, $2)`, userID, roleID); err != nil {
		return nil, err
	}
	return &UserRole{UserID: userID, RoleID: roleID}, nil
}

// UpdateUserRole rewrites the role side of an existing link.
func (s *PGStore) UpdateUserRole(ctx context.Context, userID, oldRoleID, newRoleID uuid.UUID) (*UserRole, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE user_has_role SET role_id = $3 WHERE user_id = $1 AND role_id = $2`,
		userID, oldRoleID, newRoleID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return &UserRole{UserID: userID, RoleID: newRoleID}, nil
}

// DeleteUserRole removes a user-role link.
func (s *PGStore) DeleteUserRole(ctx context.Context, userID, roleID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM user_has_role WHERE user_id = $1 AND role_id = $2`, userID, roleID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// RolesByUser returns the role rows linked to a user.
func (s *PGStore) RolesByUser(ctx context.Context, userID uuid.UUID) ([]Role, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT r.id, r.name FROM role r JOIN user_has_role ur ON ur.role_id = r.id WHERE ur.user_id = $1`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var roles []Role
	for rows.Next() {
		var r Role
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, err
		}
		roles = append(roles, r)
	}
	return roles, rows.Err()
}

// RolePermissionLink fetches a single role-permission link by its composite key.
func (s *PGStore) RolePermissionLink(ctx context.Context, roleID, permissionID uuid.UUID) (*RolePermission, error) {
	link := &RolePermission{}
	err := s.pool.QueryRow(ctx,
		`SELECT role_id, permission_id FROM role_has_permission WHERE role_id = $1 AND permission_id = $2`,
		roleID, permissionID).Scan(&link.RoleID, &link.PermissionID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return link, nil
}

// CreateRolePermission inserts a role-permission link.
func (s *PGStore) CreateRolePermission(ctx context.Context, roleID, permissionID uuid.UUID) (*RolePermission, error) {
	if _, err := s.pool.Exec(ctx,
		`INSERT INTO role_has_permission (role_id, permission_id) VALUES ($1, $2)`, roleID, permissionID); err != nil {
		return nil, err
	}
	return &RolePermission{RoleID: roleID, PermissionID: permissionID}, nil
}

// UpdateRolePermission rewrites the permission side of an existing link.
func (s *PGStore) UpdateRolePermission(ctx context.Context, roleID, oldPermissionID, newPermissionID uuid.UUID) (*RolePermission, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE role_has_permission SET permission_id = $3 WHERE role_id = $1 AND permission_id = $2`,
		roleID, oldPermissionID, newPermissionID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return &RolePermission{RoleID: roleID, PermissionID: newPermissionID}, nil
}

// DeleteRolePermission removes a role-permission link.
func (s *PGStore) DeleteRolePermission(ctx context.Context, roleID, permissionID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM role_has_permission WHERE role_id = $1 AND permission_id = $2`, roleID, permissionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// PermissionsByRole returns the permission rows linked to a role.
func (s *PGStore) PermissionsByRole(ctx context.Context, roleID uuid.UUID) ([]Permission, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT p.id, p.name FROM permission p JOIN role_has_permission rp ON rp.permission_id = p.id WHERE rp.role_id = $1`,
		roleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var perms []Permission
	for rows.Next() {
		var p Permission
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

func (s *PGStore) exists(ctx context.Context, query string, id uuid.UUID) (bool, error) {
	var ok bool
	if err := s.pool.QueryRow(ctx, query, id).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func scanPermission(row pgx.Row) (*Permission, error) {
	p := &Permission{}
	err := row.Scan(&p.ID, &p.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func scanIDs(rows pgx.Rows) ([]uuid.UUID, error) {
	defer rows.Close()
	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
