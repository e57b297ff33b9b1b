package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/AlejoooE764/Login-definitivo-NutriFit/internal/models"
	"github.com/AlejoooE764/Login-definitivo-NutriFit/internal/notify"
	"github.com/AlejoooE764/Login-definitivo-NutriFit/internal/utils"
)

// AuthService orchestrates the five authentication use cases. Required
// fields are validated before any store access; store and notifier failures
// surface as internal errors with detail going to the operator log only.
type AuthService struct {
	store    CredentialStore
	hasher   PasswordHasher
	resets   *ResetTokenService
	sessions *SessionManager
	notifier notify.Notifier
	logger   *slog.Logger

	passwordMinLen int
}

func NewAuthService(
	store CredentialStore,
	hasher PasswordHasher,
	resets *ResetTokenService,
	sessions *SessionManager,
	notifier notify.Notifier,
	logger *slog.Logger,
	passwordMinLen int,
) *AuthService {
	return &AuthService{
		store:          store,
		hasher:         hasher,
		resets:         resets,
		sessions:       sessions,
		notifier:       notifier,
		logger:         logger,
		passwordMinLen: passwordMinLen,
	}
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates a new user. The email must not be registered yet; the
// store's uniqueness guarantee decides races between concurrent registrations.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := NormalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, utils.ErrValidation("name, email and password are required")
	}
	if len(in.Password) < s.passwordMinLen {
		return nil, utils.ErrValidation(fmt.Sprintf("password must be at least %d characters", s.passwordMinLen))
	}

	if _, err := s.store.GetByEmail(ctx, email); err == nil {
		return nil, utils.ErrConflict("email already registered")
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, s.internal("register: lookup email", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, s.internal("register: hash password", err)
	}

	user, err := s.store.Create(ctx, name, email, hash)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, utils.ErrConflict("email already registered")
		}
		return nil, s.internal("register: create user", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login verifies the credential and establishes a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, utils.ErrValidation("email and password are required")
	}

	user, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, utils.ErrNotFound("no user with that email")
		}
		return nil, s.internal("login: lookup email", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, utils.ErrUnauthorized("invalid credentials")
	}

	session, err := s.sessions.Create(user)
	if err != nil {
		return nil, s.internal("login: create session", err)
	}
	return session, nil
}

// Logout destroys the session for token. Unknown tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	s.sessions.Destroy(token)
	return nil
}

// RecoverUsername sends the user's display name to their email address.
func (s *AuthService) RecoverUsername(ctx context.Context, email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return utils.ErrValidation("email is required")
	}

	user, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return utils.ErrNotFound("no user with that email")
		}
		return s.internal("recover username: lookup email", err)
	}

	if err := s.notifier.SendUsernameReminder(ctx, user.Email, user.Name); err != nil {
		return s.internal("recover username: send reminder", err)
	}
	return nil
}

// RequestPasswordReset issues a fresh reset token and mails it. A token that
// was persisted before a delivery failure stays valid; the caller still sees
// an internal error.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return utils.ErrValidation("email is required")
	}

	user, token, err := s.resets.Issue(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return utils.ErrNotFound("no user with that email")
		}
		return s.internal("request password reset: issue token", err)
	}

	if err := s.notifier.SendResetToken(ctx, user.Email, token); err != nil {
		return s.internal("request password reset: send token", err)
	}
	return nil
}

// ResetPassword consumes a reset token and sets the new password. The
// consume step is atomic in the store, so a token can only ever be spent
// once even under concurrent calls.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if strings.TrimSpace(token) == "" || newPassword == "" {
		return utils.ErrValidation("token and new password are required")
	}
	if len(newPassword) < s.passwordMinLen {
		return utils.ErrValidation(fmt.Sprintf("password must be at least %d characters", s.passwordMinLen))
	}

	if _, err := s.resets.Validate(ctx, token); err != nil {
		if errors.Is(err, ErrNoActiveToken) {
			return utils.ErrTokenInvalid()
		}
		return s.internal("reset password: validate token", err)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return s.internal("reset password: hash password", err)
	}

	if _, err := s.resets.Consume(ctx, token, hash); err != nil {
		// The token may have been consumed or expired between validate and
		// consume; the atomic update decides.
		if errors.Is(err, ErrNoActiveToken) {
			return utils.ErrTokenInvalid()
		}
		return s.internal("reset password: consume token", err)
	}
	return nil
}

// Session resolves a live session token, for the transport middleware.
func (s *AuthService) Session(token string) *models.Session {
	return s.sessions.Get(token)
}

func (s *AuthService) internal(op string, err error) error {
	s.logger.Error("auth operation failed", "op", op, "error", err)
	return utils.ErrInternal()
}

// NormalizeEmail trims surrounding whitespace and lowercases, making email
// lookups and the uniqueness constraint case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
