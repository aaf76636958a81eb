package question

import (
	"errors"
	"fmt"
)

// ErrEmptyCompletion is wrapped in a ProviderError when the provider answered
// successfully but the envelope carried no completion text.
var ErrEmptyCompletion = errors.New("response has no completion text")

// ProviderError reports a failed provider call: transport failure, non-success
// status or an envelope without completion text.
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// ParseError reports completion text that did not parse as a JSON array even
// after repair. Raw and Repaired are kept for diagnostics.
type ParseError struct {
	Raw      string
	Repaired string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse completion: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NoValidQuestionsError reports a batch in which every parsed item failed the
// acceptance gate.
type NoValidQuestionsError struct {
	Received int
}

func (e *NoValidQuestionsError) Error() string {
	return fmt.Sprintf("no valid questions in batch (%d received)", e.Received)
}

// errorKind labels an error for metrics.
func errorKind(err error) string {
	var (
		perr *ProviderError
		xerr *ParseError
		verr *NoValidQuestionsError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &perr):
		return "provider_error"
	case errors.As(err, &xerr):
		return "parse_error"
	case errors.As(err, &verr):
		return "no_valid_questions"
	default:
		return "other"
	}
}
