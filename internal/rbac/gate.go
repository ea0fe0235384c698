package rbac

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/full-stack-rbac/full-stack-rbac/internal/platform/httpx"
	"github.com/full-stack-rbac/full-stack-rbac/internal/token"
)

const bearerPrefix = "Bearer "

// Gate authorizes requests against a bearer token. It holds no mutable
// state; handlers receive it by injection rather than via ambient lookup.
type Gate struct {
	codec    *token.Codec
	resolver *Resolver
}

// NewGate constructs a Gate from the token codec and permission resolver.
func NewGate(codec *token.Codec, resolver *Resolver) *Gate {
	return &Gate{codec: codec, resolver: resolver}
}

// Authorize checks an authorization header against the required permission
// names. It fails fast on the first violated condition: header shape, then
// token verification, then permission membership.
//
// Returned errors: ErrBearerPrefix for a missing or non-bearer header, a
// *TokenError wrapping the verification failure, ErrPermissionDenied when a
// required name is absent, or a bare store error (infrastructure, not an
// authorization decision).
func (g *Gate) Authorize(ctx context.Context, header string, required []string) error {
	if !strings.HasPrefix(header, bearerPrefix) {
		return ErrBearerPrefix
	}
	return g.CheckToken(ctx, strings.TrimPrefix(header, bearerPrefix), required)
}

// CheckToken verifies a raw token and checks permission membership. The
// embedded permission ids are resolved to names against the current store
// state, so a rename after issuance is honored; a link removed from a role
// is not reflected until the holder logs in again.
func (g *Gate) CheckToken(ctx context.Context, raw string, required []string) error {
	claims, err := g.codec.Verify(raw)
	if err != nil {
		return &TokenError{cause: err}
	}
	granted, err := g.resolver.PermissionNames(ctx, claims.PermissionIDs())
	if err != nil {
		return err
	}
	set := make(map[string]struct{}, len(granted))
	for _, name := range granted {
		set[name] = struct{}{}
	}
	for _, name := range required {
		if _, ok := set[name]; !ok {
			return ErrPermissionDenied
		}
	}
	return nil
}

// Require builds middleware that rejects requests lacking all the given
// permissions with a 401 before the handler runs.
func (g *Gate) Require(permissions ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := g.Authorize(r.Context(), r.Header.Get("Authorization"), permissions); err != nil {
				RespondAuthError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RespondAuthError writes the 401 envelope for a Gate rejection. Anything
// that is not an authorization decision is an infrastructure failure and
// becomes a 500.
func RespondAuthError(w http.ResponseWriter, err error) {
	var tokenErr *TokenError
	switch {
	case errors.Is(err, ErrBearerPrefix) || errors.Is(err, ErrPermissionDenied):
		httpx.Error(w, http.StatusUnauthorized, "user is not authorized", err.Error())
	case errors.As(err, &tokenErr):
		httpx.Error(w, http.StatusUnauthorized, "user is not authorized", tokenErr.Error())
	default:
		httpx.Error(w, http.StatusInternalServerError, "internal server error", "")
	}
}
