package question

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// CompletionRequest is one chat-completion call: a system instruction plus a
// single user prompt.
type CompletionRequest struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Completer sends a prompt to an LLM provider and returns the raw completion
// text. Failures should be reported as *ProviderError; other errors are
// wrapped into one by the fetcher.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Name() string
}

// Default sampling parameters for batch calls.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 2048
)

// FetcherOptions tunes the provider call made for each batch.
type FetcherOptions struct {
	Temperature float64
	MaxTokens   int
	Metrics     *Metrics
}

// BatchFetcher turns one prompt/completion round trip into a list of
// accepted questions.
type BatchFetcher struct {
	completer   Completer
	rng         *Random
	temperature float64
	maxTokens   int
	metrics     *Metrics
	logger      zerolog.Logger
}

func NewBatchFetcher(completer Completer, rng *Random, opts FetcherOptions, logger zerolog.Logger) *BatchFetcher {
	if rng == nil {
		rng = NewUnseededRandom()
	}
	if opts.Temperature <= 0 {
		opts.Temperature = DefaultTemperature
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultMaxTokens
	}
	return &BatchFetcher{
		completer:   completer,
		rng:         rng,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
		metrics:     opts.Metrics,
		logger:      logger.With().Str("component", "batch_fetcher").Str("provider", completer.Name()).Logger(),
	}
}

// FetchBatch asks the provider for batchSize questions and returns between 1
// and batchSize of them. Items failing validation are dropped; a batch with
// no survivors is a *NoValidQuestionsError.
func (f *BatchFetcher) FetchBatch(ctx context.Context, req GenerationRequest, batchSize int) ([]Question, error) {
	prompt := BuildPrompt(req, batchSize, f.rng.Token())

	raw, err := f.completer.Complete(ctx, CompletionRequest{
		System:      SystemInstruction,
		Prompt:      prompt,
		Temperature: f.temperature,
		MaxTokens:   f.maxTokens,
	})
	if err != nil {
		var perr *ProviderError
		if !errors.As(err, &perr) {
			err = &ProviderError{Provider: f.completer.Name(), Err: err}
		}
		return nil, err
	}

	accepted, received, err := ParseQuestions(raw)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			f.logger.Debug().Str("raw", perr.Raw).Str("repaired", perr.Repaired).Msg("completion did not parse")
		}
		return nil, err
	}

	if dropped := received - len(accepted); dropped > 0 {
		f.metrics.addDropped(dropped)
		f.logger.Debug().Int("received", received).Int("dropped", dropped).Msg("dropped invalid questions")
	}
	if len(accepted) == 0 {
		return nil, &NoValidQuestionsError{Received: received}
	}
	if len(accepted) > batchSize {
		accepted = accepted[:batchSize]
	}
	return accepted, nil
}
