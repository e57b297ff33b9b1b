package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/AlejoooE764/Login-definitivo-NutriFit/internal/models"
)

// resetTokenBytes is the entropy of a reset token; 32 random bytes encoded
// as 64 hex characters.
const resetTokenBytes = 32

// ResetTokenService drives the single-use password-reset token lifecycle.
// A user either has no pending token or exactly one (token, expiry) pair;
// issuing overwrites the pair, consuming clears it together with setting the
// new password hash.
type ResetTokenService struct {
	store CredentialStore
	ttl   time.Duration
	now   func() time.Time
}

func NewResetTokenService(store CredentialStore, ttl time.Duration) *ResetTokenService {
	return &ResetTokenService{store: store, ttl: ttl, now: time.Now}
}

// Issue generates a fresh token for the user with the given email and
// persists it with expiry = now + TTL. Any previously issued token for the
// user becomes invalid. Returns the plaintext token for delivery.
func (s *ResetTokenService) Issue(ctx context.Context, email string) (*models.User, string, error) {
	user, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}

	token, err := generateResetToken()
	if err != nil {
		return nil, "", fmt.Errorf("generate reset token: %w", err)
	}

	expiry := s.now().Add(s.ttl)
	if err := s.store.SetResetToken(ctx, user.ID, token, expiry); err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Validate returns the user holding token if it has not expired. Expiry is
// exclusive: a token checked at its expiry instant is already invalid.
func (s *ResetTokenService) Validate(ctx context.Context, token string) (*models.User, error) {
	return s.store.FindByValidResetToken(ctx, token, s.now())
}

// Consume atomically sets the new password hash and clears the token pair.
// The store evaluates token match, non-expiry, and the update as one
// operation, so concurrent consumers of the same token get exactly one
// winner; losers see ErrNoActiveToken.
func (s *ResetTokenService) Consume(ctx context.Context, token, newPasswordHash string) (*models.User, error) {
	return s.store.ConsumeResetToken(ctx, token, newPasswordHash, s.now())
}

func generateResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
