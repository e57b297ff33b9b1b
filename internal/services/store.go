package services

import (
	"context"
	"errors"
	"time"

	"github.com/AlejoooE764/Login-definitivo-NutriFit/internal/models"
)

// Sentinel errors the credential store implementations translate their
// backend failures into. Services branch on these; anything else is an
// internal fault.
var (
	// ErrUserNotFound is returned when no user matches the given email or id.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned by Create when the email is already
	// taken. Implementations must enforce this with a store-level uniqueness
	// guarantee so that concurrent creates have exactly one winner.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrNoActiveToken is returned when no user holds the given reset token
	// or the token has expired. Lookup and consumption evaluate token match
	// and expiry as one predicate.
	ErrNoActiveToken = errors.New("no active reset token")
)

// CredentialStore is the durable record of users. It is the single shared
// resource across concurrent requests; every mutating operation applies
// atomically at the granularity of one record.
type CredentialStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)

	// Create inserts a new user, failing with ErrDuplicateEmail when the
	// email is present. Email is stored as given; callers normalize first.
	Create(ctx context.Context, name, email, passwordHash string) (*models.User, error)

	// FindByValidResetToken returns the user holding token with an expiry
	// strictly after now, or ErrNoActiveToken.
	FindByValidResetToken(ctx context.Context, token string, now time.Time) (*models.User, error)

	// SetResetToken stores token and expiry on the user, replacing any
	// previous pair. The prior token becomes permanently invalid.
	SetResetToken(ctx context.Context, userID, token string, expiry time.Time) error

	// ClearResetToken removes any pending token pair from the user.
	ClearResetToken(ctx context.Context, userID string) error

	// UpdatePassword replaces the password hash without touching the reset
	// token fields.
	UpdatePassword(ctx context.Context, userID, passwordHash string) error

	// ConsumeResetToken sets the new password hash and clears the token pair
	// in one atomic update, keyed by token match and non-expiry. Of two
	// concurrent calls with the same token exactly one wins; the loser gets
	// ErrNoActiveToken.
	ConsumeResetToken(ctx context.Context, token, passwordHash string, now time.Time) (*models.User, error)
}
