// @title           Technotes API
// @version         1.0
// @description     User lifecycle and repair-note tracking for the technotes service.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/technotes/technotes-api/docs"
	"github.com/technotes/technotes-api/internal/api"
	"github.com/technotes/technotes-api/internal/api/handler"
	"github.com/technotes/technotes-api/internal/core/service"
	mongodb "github.com/technotes/technotes-api/internal/infrastructure/db/mongo"
	redisdb "github.com/technotes/technotes-api/internal/infrastructure/db/redis"
	"github.com/technotes/technotes-api/internal/infrastructure/queue"
	"github.com/technotes/technotes-api/internal/infrastructure/security"
	"github.com/technotes/technotes-api/internal/pkg/config"
	"github.com/technotes/technotes-api/pkg/logger"
)

const (
	serviceName     = "technotes-api"
	shutdownTimeout = 30 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := bootLogger(os.Stderr)
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		File:    cfg.LogFile,
		Service: serviceName,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
}

// bootLogger reports failures that happen before the configured logger exists.
func bootLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Str("service", serviceName).Logger()
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  serviceName,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	noteRepo := mongodb.NewNoteRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	if err := mongodb.EnsureIndexes(ctx, userRepo, noteRepo); err != nil {
		return err
	}

	// --- Services ---
	hasher := security.NewBcryptHasher(cfg.Auth.HashCost)
	userService := service.NewUserService(userRepo, noteRepo, hasher, log.With().Str("component", "users").Logger())
	noteService := service.NewNoteService(noteRepo, userRepo, log.With().Str("component", "notes").Logger())
	authService := service.NewAuthService(userRepo, hasher, cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)

	// --- Audit trail ---
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, auditRepo, log.With().Str("component", "audit").Logger())
	dispatcher.Start(workerCtx)

	e := api.NewRouter(api.Deps{
		Users:        userService,
		Notes:        noteService,
		Auth:         authService,
		Audit:        dispatcher,
		LoginLimiter: redisdb.NewLoginLimiter(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow),
		Pingers: map[string]handler.Pinger{
			"mongodb": handler.MongoPinger(db),
			"redis":   handler.RedisPinger(rdb),
		},
		JWTSecret: cfg.Auth.JWTSecret,
		Logger:    log,
	})

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		cancelWorkers()
		dispatcher.Wait()
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server forced to shutdown")
	}

	cancelWorkers()
	dispatcher.Wait()
	log.Info().Int64("audit_dropped", dispatcher.Dropped()).Msg("server stopped")
	return nil
}
