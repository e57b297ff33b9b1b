package repo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AlejoooE764/Login-definitivo-NutriFit/internal/models"
	"github.com/AlejoooE764/Login-definitivo-NutriFit/internal/services"
)

// MemoryRepo is an in-process services.CredentialStore. It backs tests and
// DB-less dev runs; the mutex gives it the same single-winner semantics the
// postgres repo gets from the database.
type MemoryRepo struct {
	mu    sync.Mutex
	users map[string]*models.User // keyed by id
	now   func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		users: make(map[string]*models.User),
		now:   time.Now,
	}
}

func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			return copyUser(user), nil
		}
	}
	return nil, services.ErrUserNotFound
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, services.ErrUserNotFound
	}
	return copyUser(user), nil
}

func (r *MemoryRepo) Create(ctx context.Context, name, email, passwordHash string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			return nil, services.ErrDuplicateEmail
		}
	}

	now := r.now()
	user := &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.users[user.ID] = user
	return copyUser(user), nil
}

func (r *MemoryRepo) FindByValidResetToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user := r.findByValidTokenLocked(token, now)
	if user == nil {
		return nil, services.ErrNoActiveToken
	}
	return copyUser(user), nil
}

func (r *MemoryRepo) SetResetToken(ctx context.Context, userID, token string, expiry time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return services.ErrUserNotFound
	}
	user.ResetToken = &token
	user.ResetTokenExpiry = &expiry
	user.UpdatedAt = r.now()
	return nil
}

func (r *MemoryRepo) ClearResetToken(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return services.ErrUserNotFound
	}
	user.ResetToken = nil
	user.ResetTokenExpiry = nil
	user.UpdatedAt = r.now()
	return nil
}

func (r *MemoryRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return services.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = r.now()
	return nil
}

func (r *MemoryRepo) ConsumeResetToken(ctx context.Context, token, passwordHash string, now time.Time) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Match, update, and clear happen under one lock hold, mirroring the
	// single conditional UPDATE of the postgres repo.
	user := r.findByValidTokenLocked(token, now)
	if user == nil {
		return nil, services.ErrNoActiveToken
	}
	user.PasswordHash = passwordHash
	user.ResetToken = nil
	user.ResetTokenExpiry = nil
	user.UpdatedAt = r.now()
	return copyUser(user), nil
}

func (r *MemoryRepo) findByValidTokenLocked(token string, now time.Time) *models.User {
	if token == "" {
		return nil
	}
	for _, user := range r.users {
		if user.ResetToken != nil && *user.ResetToken == token &&
			user.ResetTokenExpiry != nil && now.Before(*user.ResetTokenExpiry) {
			return user
		}
	}
	return nil
}

func copyUser(user *models.User) *models.User {
	clone := *user
	if user.ResetToken != nil {
		token := *user.ResetToken
		clone.ResetToken = &token
	}
	if user.ResetTokenExpiry != nil {
		expiry := *user.ResetTokenExpiry
		clone.ResetTokenExpiry = &expiry
	}
	return &clone
}

var _ services.CredentialStore = (*MemoryRepo)(nil)
