package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AlejoooE764/Login-definitivo-NutriFit/internal/models"
)

// fakeStore is a mutex-guarded CredentialStore for service tests, with the
// same single-winner consume semantics as the real stores.
type fakeStore struct {
	mu    sync.Mutex
	users map[string]*models.User

	failWith error // when set, every call fails with this error
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[string]*models.User)}
}

func (s *fakeStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	for _, user := range s.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *fakeStore) GetByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	user, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *fakeStore) Create(_ context.Context, name, email, passwordHash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	for _, user := range s.users {
		if user.Email == email {
			return nil, ErrDuplicateEmail
		}
	}
	user := &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	s.users[user.ID] = user
	clone := *user
	return &clone, nil
}

func (s *fakeStore) FindByValidResetToken(_ context.Context, token string, now time.Time) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	user := s.matchTokenLocked(token, now)
	if user == nil {
		return nil, ErrNoActiveToken
	}
	clone := *user
	return &clone, nil
}

func (s *fakeStore) SetResetToken(_ context.Context, userID, token string, expiry time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	user, ok := s.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	user.ResetToken = &token
	user.ResetTokenExpiry = &expiry
	return nil
}

func (s *fakeStore) ClearResetToken(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	user, ok := s.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	user.ResetToken = nil
	user.ResetTokenExpiry = nil
	return nil
}

func (s *fakeStore) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	user, ok := s.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

func (s *fakeStore) ConsumeResetToken(_ context.Context, token, passwordHash string, now time.Time) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return nil, s.failWith
	}
	user := s.matchTokenLocked(token, now)
	if user == nil {
		return nil, ErrNoActiveToken
	}
	user.PasswordHash = passwordHash
	user.ResetToken = nil
	user.ResetTokenExpiry = nil
	clone := *user
	return &clone, nil
}

func (s *fakeStore) matchTokenLocked(token string, now time.Time) *models.User {
	if token == "" {
		return nil
	}
	for _, user := range s.users {
		if user.ResetToken != nil && *user.ResetToken == token &&
			user.ResetTokenExpiry != nil && now.Before(*user.ResetTokenExpiry) {
			return user
		}
	}
	return nil
}

// userByEmail is a test helper bypassing the store contract.
func (s *fakeStore) userByEmail(email string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			return user
		}
	}
	return nil
}

// fakeNotifier records sent notifications and can be told to fail.
type fakeNotifier struct {
	mu        sync.Mutex
	resets    []sentReset
	reminders []sentReminder
	failWith  error
}

type sentReset struct {
	email string
	token string
}

type sentReminder struct {
	email string
	name  string
}

func (n *fakeNotifier) SendResetToken(_ context.Context, email, token string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failWith != nil {
		return n.failWith
	}
	n.resets = append(n.resets, sentReset{email: email, token: token})
	return nil
}

func (n *fakeNotifier) SendUsernameReminder(_ context.Context, email, name string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failWith != nil {
		return n.failWith
	}
	n.reminders = append(n.reminders, sentReminder{email: email, name: name})
	return nil
}

func (n *fakeNotifier) lastReset() (sentReset, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.resets) == 0 {
		return sentReset{}, false
	}
	return n.resets[len(n.resets)-1], true
}

var errStoreDown = errors.New("store down")
