package token

import (
	"strings"
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	codec := NewCodec("topsecret")
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	signed, err := codec.Issue(ids, "admin@test.local")
	require.NoError(t, err)

	claims, err := codec.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "admin@test.local", claims.Email)
	assert.Equal(t, Issuer, claims.Issuer)
	assert.Equal(t, ids, claims.PermissionIDs())
}

func TestVerifyWrongSecret(t *testing.T) {
	signed, err := NewCodec("secret-a").Issue([]uuid.UUID{uuid.New()}, "user@test.local")
	require.NoError(t, err)

	_, err = NewCodec("secret-b").Verify(signed)
	require.ErrorIs(t, err, jwtv5.ErrSignatureInvalid)
}

func TestVerifyExpired(t *testing.T) {
	issuedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := NewCodec("topsecret").WithClock(func() time.Time { return issuedAt })

	signed, err := codec.Issue(nil, "user@test.local")
	require.NoError(t, err)

	// Still valid one minute before the 24h window closes.
	codec.WithClock(func() time.Time { return issuedAt.Add(TTL - time.Minute) })
	_, err = codec.Verify(signed)
	require.NoError(t, err)

	codec.WithClock(func() time.Time { return issuedAt.Add(TTL + time.Minute) })
	_, err = codec.Verify(signed)
	require.ErrorIs(t, err, jwtv5.ErrTokenExpired)
}

func TestVerifyIssuerMismatch(t *testing.T) {
	claims := Claims{
		Email: "user@test.local",
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    "someone-else",
			IssuedAt:  jwtv5.NewNumericDate(time.Now().UTC()),
			ExpiresAt: jwtv5.NewNumericDate(time.Now().UTC().Add(time.Hour)),
		},
	}
	signed, err := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims).SignedString([]byte("topsecret"))
	require.NoError(t, err)

	_, err = NewCodec("topsecret").Verify(signed)
	require.ErrorIs(t, err, jwtv5.ErrTokenInvalidIssuer)
}

func TestVerifyRejectsUnsignedAlgorithm(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    Issuer,
			ExpiresAt: jwtv5.NewNumericDate(time.Now().UTC().Add(time.Hour)),
		},
	}
	signed, err := jwtv5.NewWithClaims(jwtv5.SigningMethodNone, claims).SignedString(jwtv5.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewCodec("topsecret").Verify(signed)
	require.Error(t, err)
}

func TestVerifyMalformed(t *testing.T) {
	_, err := NewCodec("topsecret").Verify("not-a-jwt")
	require.ErrorIs(t, err, jwtv5.ErrTokenMalformed)
}

func TestPermissionIDsSkipInvalidEntries(t *testing.T) {
	id := uuid.New()
	claims := &Claims{Permissions: []string{id.String(), "garbage", ""}}
	assert.Equal(t, []uuid.UUID{id}, claims.PermissionIDs())
}

func TestIssuedTokenIsCompact(t *testing.T) {
	signed, err := NewCodec("topsecret").Issue(nil, "user@test.local")
	require.NoError(t, err)
	assert.Len(t, strings.Split(signed, "."), 3)
}
