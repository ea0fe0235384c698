package roles

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/full-stack-rbac/full-stack-rbac/internal/platform/db"
	"github.com/full-stack-rbac/full-stack-rbac/internal/rbac"
)

// RepositoryPort defines data access methods for roles.
type RepositoryPort interface {
	FindByName(ctx context.Context, name string) (*Role, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Role, error)
	ListRoles(ctx context.Context) ([]Role, error)
	CreateRole(ctx context.Context, name string) (*Role, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) (*Role, error)
	DeleteRole(ctx context.Context, id uuid.UUID) error
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

var _ RepositoryPort = (*Repository)(nil)

// FindByName fetches the first role with the given name.
func (r *Repository) FindByName(ctx context.Context, name string) (*Role, error) {
	return scanRole(r.pool.QueryRow(ctx, `SELECT id, name FROM role WHERE name = $1 LIMIT 1`, name))
}

// FindByID fetches a role by id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*Role, error) {
	return scanRole(r.pool.QueryRow(ctx, `SELECT id, name FROM role WHERE id = $1`, id))
}

// ListRoles returns all roles.
func (r *Repository) ListRoles(ctx context.Context) ([]Role, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM role`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var roles []Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// CreateRole inserts a new role.
func (r *Repository) CreateRole(ctx context.Context, name string) (*Role, error) {
	return scanRole(r.pool.QueryRow(ctx,
		`INSERT INTO role (name) VALUES ($1) RETURNING id, name`, name))
}

// UpdateName renames a role.
func (r *Repository) UpdateName(ctx context.Context, id uuid.UUID, name string) (*Role, error) {
	return scanRole(r.pool.QueryRow(ctx,
		`UPDATE role SET name = $2 WHERE id = $1 RETURNING id, name`, id, name))
}

// DeleteRole removes a role after deleting every user_has_role and
// role_has_permission row that references it.
func (r *Repository) DeleteRole(ctx context.Context, id uuid.UUID) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM user_has_role WHERE role_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM role_has_permission WHERE role_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM role WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return rbac.ErrNotFound
		}
		return nil
	})
}

func scanRole(row pgx.Row) (*Role, error) {
	role := &Role{}
	err := row.Scan(&role.ID, &role.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, rbac.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return role, nil
}
