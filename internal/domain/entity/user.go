// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity of the system, representing one registered account.
// PasswordHash is the bcrypt hash of the account password; it must never be
// serialized into an API response.
type User struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Email        string    // The user's unique login email, stored case-sensitive.
	Name         string    // Optional display name.
	PasswordHash string    // One-way bcrypt hash of the password.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}
