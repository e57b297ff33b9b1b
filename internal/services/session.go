package services

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/AlejoooE764/Login-definitivo-NutriFit/internal/models"
)

// SessionManager owns the lifecycle of authenticated sessions. Sessions live
// in process memory keyed by an opaque random token; they are created on
// login, destroyed on logout, and lazily dropped once expired.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionManager(ttl time.Duration) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*models.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create issues a session for the user, capturing id, name, and email at
// login time. No password material is stored.
func (m *SessionManager) Create(user *models.User) (*models.Session, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	now := m.now()
	session := &models.Session{
		Token:     hex.EncodeToString(buf),
		UserID:    user.ID,
		UserName:  user.Name,
		UserEmail: user.Email,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	m.mu.Lock()
	m.sessions[session.Token] = session
	m.mu.Unlock()
	return session, nil
}

// Get returns the live session for token, or nil when the token is unknown
// or the session has expired. Expired entries are removed on lookup.
func (m *SessionManager) Get(token string) *models.Session {
	if token == "" {
		return nil
	}

	m.mu.RLock()
	session, ok := m.sessions[token]
	m.mu.RUnlock()
	if !ok {
		return nil
	}

	if !m.now().Before(session.ExpiresAt) {
		m.Destroy(token)
		return nil
	}
	return session
}

// Destroy invalidates the session for token. Destroying an unknown or
// already-destroyed session is not an error.
func (m *SessionManager) Destroy(token string) {
	if token == "" {
		return
	}
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}
