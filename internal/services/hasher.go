package services

import "golang.org/x/crypto/bcrypt"

// PasswordHasher provides one-way password hashing and verification.
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Verify reports whether password matches hash. Mismatches and malformed
	// hashes both report false; Verify never errors on bad input.
	Verify(password, hash string) bool
}

// BcryptHasher implements PasswordHasher with bcrypt at a configurable cost.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

var _ PasswordHasher = (*BcryptHasher)(nil)
