package question

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultBatchSize is the number of questions requested per provider call.
const DefaultBatchSize = 1

// ServiceOptions configures the orchestrator.
type ServiceOptions struct {
	// Credential is the provider key. Missing or placeholder keys put the
	// service in fallback mode without any network call.
	Credential string
	BatchSize  int
	Metrics    *Metrics
}

// Service produces question sets. It prefers the live provider and degrades
// to locally generated questions; Generate never fails.
type Service struct {
	fetcher    *BatchFetcher
	fallback   *FallbackGenerator
	credential string
	batchSize  int
	metrics    *Metrics
	logger     zerolog.Logger
}

// NewService wires the orchestrator. fetcher may be nil, which is the same as
// having no credential.
func NewService(fetcher *BatchFetcher, fallback *FallbackGenerator, opts ServiceOptions, logger zerolog.Logger) *Service {
	if fallback == nil {
		fallback = NewFallbackGenerator(nil)
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	return &Service{
		fetcher:    fetcher,
		fallback:   fallback,
		credential: opts.Credential,
		batchSize:  opts.BatchSize,
		metrics:    opts.Metrics,
		logger:     logger.With().Str("component", "question_service").Logger(),
	}
}

// Live reports whether Generate will try the provider first.
func (s *Service) Live() bool {
	return s.fetcher != nil && HasCredential(s.credential)
}

// Generate returns req.Count questions (DefaultCount when unset). When every
// batch succeeds the set comes from the provider, possibly short because
// invalid items were dropped. Any batch failure discards the whole live
// attempt and the set is built by the fallback generator instead.
func (s *Service) Generate(ctx context.Context, req GenerationRequest) []Question {
	start := time.Now()
	req.Count = req.count()
	log := s.logger.With().
		Str("grade", req.Grade).
		Str("subject", req.Subject).
		Str("topic", req.Topic).
		Int("count", req.Count).
		Logger()

	if !s.Live() {
		log.Debug().Msg("no provider credential, using fallback questions")
		return s.fallbackSet(req, start)
	}

	questions, err := s.fetchAll(ctx, req)
	if err != nil {
		log.Warn().Err(err).Msg("live generation failed, using fallback questions")
		return s.fallbackSet(req, start)
	}

	s.metrics.observeGeneration(modeLive, time.Since(start))
	log.Info().Int("received", len(questions)).Dur("elapsed", time.Since(start)).Msg("generated live questions")
	return questions
}

func (s *Service) fallbackSet(req GenerationRequest, start time.Time) []Question {
	questions := s.fallback.GenerateN(req)
	s.metrics.observeGeneration(modeFallback, time.Since(start))
	return questions
}

// fetchAll runs one batch per chunk of batchSize concurrently and joins the
// results in batch order. The first failure cancels the remaining batches.
func (s *Service) fetchAll(ctx context.Context, req GenerationRequest) ([]Question, error) {
	sizes := BatchSizes(req.Count, s.batchSize)
	results := make([][]Question, len(sizes))

	g, gctx := errgroup.WithContext(ctx)
	for i, size := range sizes {
		g.Go(func() error {
			qs, err := s.fetcher.FetchBatch(gctx, req, size)
			// Batches cut short by a cancelled gctx are not provider outcomes.
			if !(errors.Is(err, context.Canceled) && gctx.Err() != nil) {
				s.metrics.observeBatch(err)
			}
			if err != nil {
				return fmt.Errorf("batch %d of %d: %w", i+1, len(sizes), err)
			}
			results[i] = qs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Question, 0, req.Count)
	for _, qs := range results {
		out = append(out, qs...)
	}
	return out, nil
}

// BatchSizes splits count into chunks of at most batchSize; only the last
// chunk may be smaller.
func BatchSizes(count, batchSize int) []int {
	if count <= 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	sizes := make([]int, 0, (count+batchSize-1)/batchSize)
	for remaining := count; remaining > 0; remaining -= batchSize {
		sizes = append(sizes, min(batchSize, remaining))
	}
	return sizes
}
