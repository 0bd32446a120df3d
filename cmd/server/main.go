package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/welldanyogia/recipe-app-api/internal/api"
	"github.com/welldanyogia/recipe-app-api/internal/auth"
	"github.com/welldanyogia/recipe-app-api/internal/config"
	"github.com/welldanyogia/recipe-app-api/internal/database"
	"github.com/welldanyogia/recipe-app-api/internal/logger"
	"github.com/welldanyogia/recipe-app-api/internal/repository"
	"github.com/welldanyogia/recipe-app-api/internal/storage"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(args []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.LoadWithValidation()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Setup logger
	log := logger.New(cfg.SlogLevel())
	slog.SetDefault(log)
	cfg.LogConfig(log)

	db, err := database.ConnectWithConfig(cfg.DatabaseDriver, cfg.DatabaseURL, database.DefaultPoolConfig(), gormLogLevel(cfg))
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Error("failed to close database", slog.String("error", err.Error()))
		}
	}()

	if err := database.Migrate(db); err != nil {
		return err
	}

	if len(args) > 0 && args[0] == "createsuperuser" {
		return createSuperuser(db, args[1:])
	}

	fileStorage, err := storage.NewLocalStorage(cfg.MediaRoot)
	if err != nil {
		return err
	}

	secret := cfg.JWTSecret
	if secret == "" {
		secret, err = randomSecret()
		if err != nil {
			return err
		}
		slog.Warn("JWT_SECRET not set, using an ephemeral secret; tokens will not survive a restart")
	}
	tokens, err := auth.NewTokenService(secret, cfg.TokenTTL)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e := api.NewRouter(&api.RouterConfig{
		DB:             db,
		FileStorage:    fileStorage,
		Tokens:         tokens,
		Logger:         log,
		AllowedOrigins: cfg.Origins(),
		Production:     cfg.IsProduction(),
		RateLimit:      cfg.RateLimitRequests,
		RateBurst:      cfg.RateLimitBurst,
		Context:        ctx,
	})

	serverErr := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.APIPort)
		slog.Info("Starting recipe API server", slog.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("Server stopped")
	return nil
}

// createSuperuser handles `server createsuperuser <email>`; the password is
// read from SUPERUSER_PASSWORD.
func createSuperuser(db *gorm.DB, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: server createsuperuser <email>")
	}
	password := os.Getenv("SUPERUSER_PASSWORD")
	if password == "" {
		return errors.New("SUPERUSER_PASSWORD is required")
	}

	user, err := repository.NewUserRepository(db).CreateSuperuser(context.Background(), args[0], password)
	if err != nil {
		return err
	}
	slog.Info("superuser created", slog.Uint64("user_id", uint64(user.ID)))
	return nil
}

func gormLogLevel(cfg *config.Config) gormlogger.LogLevel {
	switch cfg.SlogLevel() {
	case slog.LevelDebug:
		return gormlogger.Info
	case slog.LevelInfo, slog.LevelWarn:
		return gormlogger.Warn
	default:
		return gormlogger.Error
	}
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
