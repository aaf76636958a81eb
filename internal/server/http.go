package server

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/eduquiz/internal/auth"
	"github.com/gokatarajesh/eduquiz/internal/config"
	"github.com/gokatarajesh/eduquiz/internal/curriculum"
	"github.com/gokatarajesh/eduquiz/internal/logging"
	"github.com/gokatarajesh/eduquiz/internal/quiz"
	httperrors "github.com/gokatarajesh/eduquiz/pkg/http/errors"
)

// Dependency is an upstream checked by /v1/ping.
type Dependency struct {
	Name string
	Ping func(ctx context.Context) error
}

// Handlers groups the feature handlers mounted on the API. Nil groups are
// skipped.
type Handlers struct {
	Auth    *auth.HTTPHandlers
	Catalog *curriculum.HTTPHandler
	Quiz    *quiz.HTTPHandler
}

// Options configures NewHTTPServer.
type Options struct {
	Validator    auth.TokenValidator
	Dependencies []Dependency
	Registerer   prometheus.Registerer
	Gatherer     prometheus.Gatherer
}

// NewHTTPServer wires every route and the shared middleware chain.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, h Handlers, opts Options) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		httperrors.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	mux.HandleFunc("GET /v1/ping", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		for _, dep := range opts.Dependencies {
			if err := dep.Ping(ctx); err != nil {
				logging.FromContext(ctx).Error().Err(err).Str("dependency", dep.Name).Msg("dependency ping failed")
				httperrors.RespondErrorWithDetails(w, http.StatusBadGateway, httperrors.ErrCodeUpstreamError,
					"upstream error", map[string]any{"dependency": dep.Name})
				return
			}
		}
		httperrors.RespondJSON(w, http.StatusOK, map[string]bool{"pong": true})
	})

	protected := func(fn http.HandlerFunc) http.Handler {
		var next http.Handler = auth.RequireAuth(fn)
		if opts.Validator != nil {
			next = auth.AuthMiddleware(opts.Validator, logger)(next)
		}
		return next
	}

	if h.Auth != nil {
		mux.HandleFunc("POST /v1/auth/register", h.Auth.Register)
		mux.HandleFunc("POST /v1/auth/login", h.Auth.Login)
		mux.HandleFunc("POST /v1/auth/refresh", h.Auth.RefreshToken)
		mux.Handle("GET /v1/users/me", protected(h.Auth.GetMe))
	}

	if h.Catalog != nil {
		mux.HandleFunc("GET /v1/catalog", h.Catalog.Grades)
		mux.HandleFunc("GET /v1/catalog/{grade}/subjects", h.Catalog.Subjects)
		mux.HandleFunc("GET /v1/study-materials", h.Catalog.StudyMaterials)
	}

	if h.Quiz != nil {
		mux.Handle("POST /v1/quizzes", protected(h.Quiz.Start))
		mux.Handle("GET /v1/quizzes/{id}", protected(h.Quiz.Get))
		mux.Handle("POST /v1/quizzes/{id}/answers", protected(h.Quiz.Answer))
		mux.Handle("GET /v1/results", protected(h.Quiz.History))
	}

	// recoverer sits inside requestLogger so a panic is logged with the
	// request id and counted as a 500.
	var handler http.Handler = corsMiddleware(cfg.CORS)(mux)
	handler = recoverer(handler)
	handler = requestLogger(logger, newHTTPMetrics(opts.Registerer))(handler)

	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
