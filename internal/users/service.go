package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/full-stack-rbac/full-stack-rbac/internal/auth"
	"github.com/full-stack-rbac/full-stack-rbac/internal/rbac"
)

// Service handles user management business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// CreateUser registers a new user, rejecting duplicate emails.
func (s *Service) CreateUser(ctx context.Context, email, password string) (*User, error) {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, rbac.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, &rbac.AlreadyExistsError{
			Entity: "user",
			Detail: fmt.Sprintf("user id: %s, user email: %s", existing.ID, existing.Email),
		}
	}
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return s.repo.CreateUser(ctx, email, hashed)
}

// ListUsers returns all users.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.ListUsers(ctx)
}

// UpdateUser changes a user's email address.
func (s *Service) UpdateUser(ctx context.Context, id uuid.UUID, email string) (*User, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, s.notFound(id, err)
	}
	return s.repo.UpdateEmail(ctx, id, email)
}

// DeleteUser removes a user and its role links.
func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return s.notFound(id, err)
	}
	return s.repo.DeleteUser(ctx, id)
}

func (s *Service) notFound(id uuid.UUID, err error) error {
	if errors.Is(err, rbac.ErrNotFound) {
		return &rbac.NotFoundError{Entity: "user", Detail: fmt.Sprintf("no user id: %s", id)}
	}
	return err
}
