// Package notify abstracts outbound user notifications. The auth service
// only depends on the Notifier interface; delivery is a collaborator detail.
package notify

import (
	"context"
	"log/slog"
)

// Notifier delivers account-recovery messages. Implementations may fail;
// failures are reported to the caller but never roll back state already
// persisted (an issued reset token stays issued).
type Notifier interface {
	SendResetToken(ctx context.Context, email, token string) error
	SendUsernameReminder(ctx context.Context, email, name string) error
}

// LogNotifier writes notifications to the log instead of delivering them.
// Used in dev and tests, where exposing the reset token in the log is the
// point.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) SendResetToken(ctx context.Context, email, token string) error {
	n.logger.Info("password reset token issued", "email", email, "token", token)
	return nil
}

func (n *LogNotifier) SendUsernameReminder(ctx context.Context, email, name string) error {
	n.logger.Info("username reminder", "email", email, "name", name)
	return nil
}

var _ Notifier = (*LogNotifier)(nil)
