package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/full-stack-rbac/full-stack-rbac/internal/platform/db"
	"github.com/full-stack-rbac/full-stack-rbac/internal/rbac"
)

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	CreateUser(ctx context.Context, email, hashedPassword string) (*User, error)
	UpdateEmail(ctx context.Context, id uuid.UUID, email string) (*User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
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

// FindByEmail fetches a user by email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT id, email, hashed_password FROM "user" WHERE email = $1`, email))
}

// FindByID fetches a user by id.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT id, email, hashed_password FROM "user" WHERE id = $1`, id))
}

// ListUsers returns all users.
func (r *Repository) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, email, hashed_password FROM "user"`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var users []User
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.ID, &user.Email, &user.HashedPassword); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// CreateUser inserts a new user with an already-hashed password.
func (r *Repository) CreateUser(ctx context.Context, email, hashedPassword string) (*User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`INSERT INTO "user" (email, hashed_password) VALUES ($1, $2) RETURNING id, email, hashed_password`,
		email, hashedPassword))
}

// UpdateEmail changes a user's email address.
func (r *Repository) UpdateEmail(ctx context.Context, id uuid.UUID, email string) (*User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`UPDATE "user" SET email = $2 WHERE id = $1 RETURNING id, email, hashed_password`, id, email))
}

// DeleteUser removes a user after deleting every user_has_role row that
// references it. The cascade is explicit; the schema does not do it for us.
func (r *Repository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM user_has_role WHERE user_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM "user" WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return rbac.ErrNotFound
		}
		return nil
	})
}

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(&user.ID, &user.Email, &user.HashedPassword)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, rbac.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
