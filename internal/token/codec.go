// Package token implements the signed capability token carried by clients.
//
// A token freezes the permission-id set of a user at login time. Later
// authorization checks only verify the signature and expiry and look the
// embedded ids up by name; they never walk the role graph again.
package token

import (
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer is the fixed "iss" claim stamped into every token.
const Issuer = "full-stack-rbac"

// TTL is the validity window of an issued token. It is not configurable
// per call; permission changes take effect on the next login at the latest.
const TTL = 24 * time.Hour

// Claims is the payload of a capability token. Permissions holds the raw
// permission ids (as uuid strings), not the display names.
type Claims struct {
	Permissions []string `json:"permissions"`
	Email       string   `json:"email"`
	jwtv5.RegisteredClaims
}

// PermissionIDs parses the embedded permission ids. Entries that are not
// valid uuids are dropped; they can never match a stored permission.
func (c *Claims) PermissionIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(c.Permissions))
	for _, raw := range c.Permissions {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// Codec signs and verifies capability tokens with a shared HMAC-SHA256 secret.
type Codec struct {
	secret []byte
	now    func() time.Time
}

// NewCodec constructs a Codec around the externally supplied signing secret.
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret), now: time.Now}
}

// WithClock overrides the codec clock. Used by tests to cross the expiry
// boundary without sleeping.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	c.now = now
	return c
}

// Issue signs a token embedding the given permission ids and subject email.
// Timestamps are UTC; expiry is fixed at TTL from issuance.
func (c *Codec) Issue(permissionIDs []uuid.UUID, email string) (string, error) {
	now := c.now().UTC()
	perms := make([]string, len(permissionIDs))
	for i, id := range permissionIDs {
		perms[i] = id.String()
	}
	claims := Claims{
		Permissions: perms,
		Email:       email,
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    Issuer,
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(TTL)),
		},
	}
	signed, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Verify parses the compact form and validates signature, issuer and expiry.
// The returned error text is surfaced to clients verbatim on 401 responses.
func (c *Codec) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwtv5.ParseWithClaims(raw, claims, func(t *jwtv5.Token) (any, error) {
		return c.secret, nil
	},
		jwtv5.WithValidMethods([]string{jwtv5.SigningMethodHS256.Alg()}),
		jwtv5.WithIssuer(Issuer),
		jwtv5.WithExpirationRequired(),
		jwtv5.WithTimeFunc(func() time.Time { return c.now().UTC() }),
	)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
