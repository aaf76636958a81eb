package quiz

import "math"

// ScoringConfig holds the grading thresholds, in whole percent.
type ScoringConfig struct {
	PassPercent      int // default: 50
	ExcellentPercent int // default: 80
}

// DefaultScoringConfig returns production defaults.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		PassPercent:      50,
		ExcellentPercent: 80,
	}
}

const (
	MessageExcellent = "Excellent work!"
	MessageGood      = "Good effort!"
	MessagePractice  = "Keep practicing!"
)

// Engine grades finished attempts.
type Engine struct {
	config ScoringConfig
}

// NewEngine creates a scoring engine with the provided config.
func NewEngine(config ScoringConfig) *Engine {
	return &Engine{config: config}
}

// Percentage rounds score/total to the nearest whole percent. An empty quiz
// scores 0.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}

// Summarize grades an attempt.
func (e *Engine) Summarize(score, total int) Summary {
	pct := Percentage(score, total)

	msg := MessageGood
	switch {
	case pct >= e.config.ExcellentPercent:
		msg = MessageExcellent
	case pct < e.config.PassPercent:
		msg = MessagePractice
	}

	return Summary{
		Score:      score,
		Total:      total,
		Percentage: pct,
		Passed:     pct >= e.config.PassPercent,
		Message:    msg,
	}
}
