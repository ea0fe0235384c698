package roles

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/full-stack-rbac/full-stack-rbac/internal/rbac"
)

// Service handles role business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// CreateRole inserts a new role, rejecting duplicate names.
func (s *Service) CreateRole(ctx context.Context, name string) (*Role, error) {
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil && !errors.Is(err, rbac.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, &rbac.AlreadyExistsError{
			Entity: "role",
			Detail: fmt.Sprintf("role id: %s, role name: %s", existing.ID, existing.Name),
		}
	}
	return s.repo.CreateRole(ctx, name)
}

// ListRoles returns all roles.
func (s *Service) ListRoles(ctx context.Context) ([]Role, error) {
	return s.repo.ListRoles(ctx)
}

// UpdateRole renames an existing role.
func (s *Service) UpdateRole(ctx context.Context, id uuid.UUID, name string) (*Role, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, s.notFound(id, err)
	}
	return s.repo.UpdateName(ctx, id, name)
}

// DeleteRole removes a role and every link referencing it.
func (s *Service) DeleteRole(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return s.notFound(id, err)
	}
	return s.repo.DeleteRole(ctx, id)
}

func (s *Service) notFound(id uuid.UUID, err error) error {
	if errors.Is(err, rbac.ErrNotFound) {
		return &rbac.NotFoundError{Entity: "role", Detail: fmt.Sprintf("no role id: %s", id)}
	}
	return err
}
