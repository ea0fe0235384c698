// Package roles implements role management.
package roles

import "github.com/google/uuid"

// Role is a named permission bundle. Storage does not enforce name
// uniqueness; the create path treats a duplicate name as a conflict.
type Role struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
