// Package auth implements credential verification and token issuance.
package auth

import (
	"errors"

	"github.com/google/uuid"
)

// User is an account that can authenticate with email and password.
type User struct {
	ID             uuid.UUID
	Email          string
	HashedPassword string
}

// ErrInvalidCredentials covers both an unknown email and a wrong password.
// Callers must not distinguish the two cases, so the response cannot be used
// to enumerate accounts.
var ErrInvalidCredentials = errors.New("incorrect email or password")
