package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// Hasher is the password hashing algorithm used for stored credentials.
type Hasher interface {
	// Hash creates a salted one-way digest from a plaintext password.
	Hash(password string) (string, error)

	// Verify checks a plaintext password against a digest. A mismatch is
	// (false, nil); an error means the digest itself is unusable.
	Verify(password, digest string) (bool, error)
}

// BcryptHasher implements Hasher using bcrypt. Each call to Hash embeds a
// fresh random salt, and verification runs in constant time.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the given cost factor, clamped to
// bcrypt's valid range.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func (h *BcryptHasher) Verify(password, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	if err == bcrypt.ErrMismatchedHashAndPassword {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

var _ Hasher = (*BcryptHasher)(nil)
