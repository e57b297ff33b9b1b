package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AlejoooE764/Login-definitivo-NutriFit/internal/config"
	"github.com/AlejoooE764/Login-definitivo-NutriFit/internal/db"
	transport "github.com/AlejoooE764/Login-definitivo-NutriFit/internal/http"
	"github.com/AlejoooE764/Login-definitivo-NutriFit/internal/notify"
	"github.com/AlejoooE764/Login-definitivo-NutriFit/internal/repo"
	"github.com/AlejoooE764/Login-definitivo-NutriFit/internal/services"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Env)

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	store, cleanup, err := newStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	notifier, err := newNotifier(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize notifier", "error", err)
		os.Exit(1)
	}

	hasher := services.NewBcryptHasher(cfg.BcryptCost)
	resets := services.NewResetTokenService(store, cfg.ResetTokenTTL)
	sessions := services.NewSessionManager(cfg.SessionTTL)
	authService := services.NewAuthService(store, hasher, resets, sessions, notifier, logger, cfg.PasswordMinLen)

	router := transport.NewRouter(transport.Dependencies{
		Config:      cfg,
		AuthService: authService,
		Logger:      logger,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.RequestTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.RequestTimeout,
		IdleTimeout:       60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr, "env", cfg.Env, "store", cfg.Store)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErrors:
		logger.Error("http server stopped unexpectedly", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", "error", err)
		os.Exit(1)
	}

	logger.Info("http server stopped")
}

// newStore builds the credential store selected by config: the postgres repo
// (with migrations and optional dev seeding) or the in-memory repo.
func newStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (services.CredentialStore, func(), error) {
	if cfg.Store == "memory" {
		logger.Warn("using in-memory store; users are lost on restart")
		return repo.NewMemoryRepo(), func() {}, nil
	}

	if err := db.Migrate(cfg.DBURL); err != nil {
		return nil, nil, err
	}

	dbConn, err := db.Connect(ctx, cfg.DBURL)
	if err != nil {
		return nil, nil, err
	}

	if cfg.SeedDemoUser {
		if err := db.EnsureDemoUser(ctx, dbConn.Pool, cfg.RequestTimeout); err != nil {
			dbConn.Close()
			return nil, nil, err
		}
	}

	return repo.NewUserRepo(dbConn.Pool, cfg.RequestTimeout), dbConn.Close, nil
}

func newNotifier(cfg *config.Config, logger *slog.Logger) (notify.Notifier, error) {
	if !cfg.MailEnabled() {
		logger.Warn("SMTP not configured; notifications go to the log")
		return notify.NewLogNotifier(logger), nil
	}

	return notify.NewSMTPNotifier(notify.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.MailFrom,
	})
}

func newLogger(env string) *slog.Logger {
	level := slog.LevelInfo
	if env != "prod" {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if env == "prod" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	return slog.New(handler)
}
