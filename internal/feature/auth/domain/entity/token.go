package entity

import "time"

// Token represents a persisted API token association.
// ID is the SHA-256 digest (hex) of the opaque bearer token handed to the
// client; the plaintext value itself is never stored.
type Token struct {
	ID       string    // SHA-256 hex digest of the bearer token (64 characters)
	UserID   uint      // Owning user ID
	IssuedAt time.Time // Token issuance time
}
