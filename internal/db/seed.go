package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// EnsureDemoUser creates a known dev account if it does not exist yet.
// Only wired up outside prod.
func EnsureDemoUser(ctx context.Context, pool *pgxpool.Pool, timeout time.Duration) error {
	const (
		demoName     = "Demo"
		demoEmail    = "demo@nutrifit.local"
		demoPassword = "demo1234"
	)

	ctxCheck, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var exists bool
	row := pool.QueryRow(ctxCheck, "SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", demoEmail)
	if err := row.Scan(&exists); err != nil {
		return fmt.Errorf("check demo user: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	ctxInsert, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	_, err = pool.Exec(ctxInsert, `
		INSERT INTO users (id, name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO NOTHING
	`, uuid.New().String(), demoName, demoEmail, string(hash))
	if err != nil {
		return fmt.Errorf("insert demo user: %w", err)
	}
	return nil
}
