package auth

import (
	"context"

	"github.com/full-stack-rbac/full-stack-rbac/internal/rbac"
	"github.com/full-stack-rbac/full-stack-rbac/internal/token"
)

// Service wraps the login flow: credential check, permission resolution and
// token issuance.
type Service struct {
	repo     Repository
	resolver *rbac.Resolver
	codec    *token.Codec
}

// NewService constructs a new Service.
func NewService(repo Repository, resolver *rbac.Resolver, codec *token.Codec) *Service {
	return &Service{repo: repo, resolver: resolver, codec: codec}
}

// LoginResult carries the issued token and the display names of the
// permissions embedded in it. The names are informational; authorization
// decisions use the ids inside the token.
type LoginResult struct {
	Permissions []string `json:"permissions"`
	Token       string   `json:"token"`
}

// Login validates the credentials and issues a capability token embedding
// the permission ids the user holds at this moment. The snapshot stays valid
// until the token expires even if role membership changes afterwards.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !VerifyPassword(password, user.HashedPassword) {
		return nil, ErrInvalidCredentials
	}

	permissionIDs, err := s.resolver.PermissionIDsForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	signed, err := s.codec.Issue(permissionIDs, user.Email)
	if err != nil {
		return nil, err
	}
	names, err := s.resolver.PermissionNames(ctx, permissionIDs)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Permissions: names, Token: signed}, nil
}
