// Package password provides the bcrypt-backed password hashing primitive.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher hashes and verifies passwords using bcrypt.
// The cost parameter is the tunable work factor; higher values make
// brute-force guessing proportionally more expensive.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher with the given cost.
// A cost of 0 (or any value below bcrypt.MinCost) falls back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash generates a salted digest from the plaintext password.
// The digest embeds both the salt and the cost, so verification needs
// no side channel.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify compares a plaintext password against a stored digest.
// Any failure, including a malformed or corrupt digest, results in false;
// no error ever escapes this boundary.
func (h *BcryptHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
