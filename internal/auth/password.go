package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher performs one-way password hashing and verification.
type Hasher struct {
	cost int
}

// NewHasher constructs a Hasher with the default bcrypt cost.
func NewHasher() Hasher {
	return Hasher{cost: bcrypt.DefaultCost}
}

// Hash produces a salted bcrypt hash of the plaintext.
func (h Hasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify compares a plaintext against a stored hash. A mismatch is
// (false, nil); a corrupt or malformed stored hash is an error so callers
// cannot mistake a broken record for a wrong password.
func (h Hasher) Verify(plaintext, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("auth: verify password: %w", err)
}
