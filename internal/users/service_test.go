package users

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/full-stack-rbac/full-stack-rbac/internal/auth"
	"github.com/full-stack-rbac/full-stack-rbac/internal/rbac"
)

type mockRepository struct {
	byID    map[uuid.UUID]*User
	byEmail map[string]*User
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		byID:    make(map[uuid.UUID]*User),
		byEmail: make(map[string]*User),
	}
}

func (m *mockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	user, ok := m.byEmail[email]
	if !ok {
		return nil, rbac.ErrNotFound
	}
	return user, nil
}

func (m *mockRepository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	user, ok := m.byID[id]
	if !ok {
		return nil, rbac.ErrNotFound
	}
	return user, nil
}

func (m *mockRepository) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	for _, u := range m.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockRepository) CreateUser(ctx context.Context, email, hashedPassword string) (*User, error) {
	user := &User{ID: uuid.New(), Email: email, HashedPassword: hashedPassword}
	m.byID[user.ID] = user
	m.byEmail[email] = user
	return user, nil
}

func (m *mockRepository) UpdateEmail(ctx context.Context, id uuid.UUID, email string) (*User, error) {
	user, ok := m.byID[id]
	if !ok {
		return nil, rbac.ErrNotFound
	}
	delete(m.byEmail, user.Email)
	user.Email = email
	m.byEmail[email] = user
	return user, nil
}

func (m *mockRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	user, ok := m.byID[id]
	if !ok {
		return rbac.ErrNotFound
	}
	delete(m.byEmail, user.Email)
	delete(m.byID, id)
	return nil
}

var _ RepositoryPort = (*mockRepository)(nil)

func TestCreateUserHashesPassword(t *testing.T) {
	service := NewService(newMockRepository())

	user, err := service.CreateUser(context.Background(), "admin@example.com", "s3cret")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret", user.HashedPassword)
	assert.True(t, auth.VerifyPassword("s3cret", user.HashedPassword))
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	service := NewService(newMockRepository())
	ctx := context.Background()

	created, err := service.CreateUser(ctx, "admin@example.com", "s3cret")
	require.NoError(t, err)

	_, err = service.CreateUser(ctx, "admin@example.com", "other")
	var conflict *rbac.AlreadyExistsError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "user has already been created", conflict.Error())
	assert.Equal(t, fmt.Sprintf("user id: %s, user email: admin@example.com", created.ID), conflict.Detail)
}

func TestUpdateUserUnknownID(t *testing.T) {
	service := NewService(newMockRepository())
	id := uuid.New()

	_, err := service.UpdateUser(context.Background(), id, "new@example.com")
	var notFound *rbac.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "user not found", notFound.Error())
	assert.Equal(t, fmt.Sprintf("no user id: %s", id), notFound.Detail)
}

func TestUpdateUserChangesEmail(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo)
	ctx := context.Background()

	created, err := service.CreateUser(ctx, "old@example.com", "s3cret")
	require.NoError(t, err)

	updated, err := service.UpdateUser(ctx, created.ID, "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
}

func TestDeleteUserUnknownID(t *testing.T) {
	service := NewService(newMockRepository())

	err := service.DeleteUser(context.Background(), uuid.New())
	var notFound *rbac.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "user not found", notFound.Error())
}
