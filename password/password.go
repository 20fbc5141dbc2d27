// Package password implements the one-way password hashing scheme: bcrypt
// over the plaintext concatenated with a server-wide pepper. The pepper is in
// addition to the per-hash random salt bcrypt embeds in every digest.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword is returned when asked to hash an empty string.
var ErrEmptyPassword = errors.New("password must not be empty")

// Hasher hashes and verifies passwords with a fixed pepper and cost, both
// read once from configuration at process start.
type Hasher struct {
	pepper string
	cost   int
}

// NewHasher validates the work factor and returns a Hasher. The cost must be
// within bcrypt's supported range.
func NewHasher(pepper string, cost int) (*Hasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, errors.New("bcrypt cost out of range")
	}
	return &Hasher{pepper: pepper, cost: cost}, nil
}

// Hash returns the bcrypt digest of plain+pepper. The digest embeds its own
// random salt, so hashing the same password twice yields different digests.
func (h *Hasher) Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmptyPassword
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plain+h.pepper), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plain matches digest. The comparison is delegated to
// bcrypt, which compares in constant time and never short-circuits on an
// early byte mismatch.
func (h *Hasher) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain+h.pepper)) == nil
}
