package provider

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/eduquiz/internal/question"
)

// LoggingCompleter records latency and outcome of every provider call.
type LoggingCompleter struct {
	inner  question.Completer
	logger zerolog.Logger
}

// WithLogging wraps c so each call is logged.
func WithLogging(c question.Completer, logger zerolog.Logger) *LoggingCompleter {
	return &LoggingCompleter{
		inner:  c,
		logger: logger.With().Str("component", "ai_provider").Str("provider", c.Name()).Logger(),
	}
}

func (l *LoggingCompleter) Name() string { return l.inner.Name() }

func (l *LoggingCompleter) Complete(ctx context.Context, req question.CompletionRequest) (string, error) {
	start := time.Now()
	text, err := l.inner.Complete(ctx, req)
	event := l.logger.Debug()
	if err != nil {
		event = l.logger.Warn().Err(err)
	}
	event.Dur("latency", time.Since(start)).
		Int("prompt_chars", len(req.Prompt)).
		Int("completion_chars", len(text)).
		Msg("provider call")
	return text, err
}
