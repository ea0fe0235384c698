// Package users implements user account management.
package users

import "github.com/google/uuid"

// User is a managed account. The password hash never leaves the package
// boundary; responses expose only id and email.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
}
