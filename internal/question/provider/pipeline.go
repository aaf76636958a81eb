package provider

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/eduquiz/internal/config"
	"github.com/gokatarajesh/eduquiz/internal/question"
)

// NewQuestionService assembles the generation pipeline from cfg. Without a
// usable credential no provider client is built and every set comes from the
// fallback generator.
func NewQuestionService(ctx context.Context, cfg config.AI, metrics *question.Metrics, logger zerolog.Logger) (*question.Service, error) {
	rng := question.NewUnseededRandom()
	if cfg.Seed != 0 {
		rng = question.NewRandom(cfg.Seed)
	}

	var fetcher *question.BatchFetcher
	if question.HasCredential(cfg.APIKey) {
		completer, err := New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		fetcher = question.NewBatchFetcher(WithLogging(completer, logger), rng, question.FetcherOptions{
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Metrics:     metrics,
		}, logger)
		logger.Info().Str("provider", completer.Name()).Int("batch_size", cfg.BatchSize).Msg("live question generation enabled")
	} else {
		logger.Warn().Str("provider", cfg.Provider).Msg("no AI credential configured; using fallback questions")
	}

	return question.NewService(fetcher, question.NewFallbackGenerator(rng), question.ServiceOptions{
		Credential: cfg.APIKey,
		BatchSize:  cfg.BatchSize,
		Metrics:    metrics,
	}, logger), nil
}
