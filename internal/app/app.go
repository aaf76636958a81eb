package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/eduquiz/internal/auth"
	"github.com/gokatarajesh/eduquiz/internal/auth/jwt"
	"github.com/gokatarajesh/eduquiz/internal/config"
	"github.com/gokatarajesh/eduquiz/internal/curriculum"
	"github.com/gokatarajesh/eduquiz/internal/db/queries"
	"github.com/gokatarajesh/eduquiz/internal/db/repository"
	"github.com/gokatarajesh/eduquiz/internal/logging"
	"github.com/gokatarajesh/eduquiz/internal/question"
	"github.com/gokatarajesh/eduquiz/internal/question/provider"
	"github.com/gokatarajesh/eduquiz/internal/quiz"
	"github.com/gokatarajesh/eduquiz/internal/server"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server
}

// New bootstraps logger, Postgres, Redis, the question pipeline and the HTTP
// server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env, cfg.LogLevel)
	logger.Info().Msg("starting application bootstrap")

	pool, err := pgxpool.New(ctx, cfg.Postgres.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	catalog, err := curriculum.Load()
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("load curriculum: %w", err)
	}

	metrics := question.NewMetrics(prometheus.DefaultRegisterer)
	questionSvc, err := provider.NewQuestionService(ctx, cfg.AI, metrics, logger)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("build question pipeline: %w", err)
	}

	q := queries.New(pool)
	userRepo := repository.NewUserRepository(q)
	resultRepo := repository.NewResultRepository(q)

	authSvc := auth.NewService(userRepo, auth.ServiceOptions{
		TokenConfig: jwt.TokenConfig{
			AccessSecret:  []byte(cfg.Security.JWTSecret),
			RefreshSecret: []byte(cfg.Security.JWTSecret + "_refresh"),
			AccessTTL:     cfg.Security.AccessTokenTTL,
			RefreshTTL:    cfg.Security.RefreshTokenTTL,
			Issuer:        cfg.Name,
		},
	}, logger)

	quizSvc := quiz.NewService(
		questionSvc,
		catalog,
		quiz.NewRedisSessionStore(redisClient, cfg.Quiz.SessionTTL),
		resultRepo,
		quiz.ServiceOptions{
			DefaultCount: cfg.Quiz.DefaultQuestionCount,
			MaxCount:     cfg.Quiz.MaxQuestionCount,
			HistoryLimit: cfg.Quiz.HistoryLimit,
		},
		logger,
	)

	apiServer := server.NewHTTPServer(cfg, logger, server.Handlers{
		Auth:    auth.NewHTTPHandlers(authSvc, logger),
		Catalog: curriculum.NewHTTPHandler(catalog),
		Quiz:    quiz.NewHTTPHandler(quizSvc, logger),
	}, server.Options{
		Validator: authSvc,
		Dependencies: []server.Dependency{
			{Name: "postgres", Ping: pool.Ping},
			{Name: "redis", Ping: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }},
		},
		Registerer: prometheus.DefaultRegisterer,
	})

	return &Application{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		redis:  redisClient,
		http:   apiServer,
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		a.close()
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.close()
	a.logger.Info().Msg("shutdown complete")
	return nil
}

func (a *Application) close() {
	a.pool.Close()
	if err := a.redis.Close(); err != nil {
		a.logger.Error().Err(err).Msg("redis shutdown error")
	}
}
