package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gokatarajesh/eduquiz/internal/db/queries"
)

type resultStore interface {
	CreateQuizResult(ctx context.Context, arg queries.CreateQuizResultParams) (queries.QuizResult, error)
	ListQuizResultsByUser(ctx context.Context, arg queries.ListQuizResultsByUserParams) ([]queries.QuizResult, error)
}

// QuizResult is one finished quiz attempt.
type QuizResult struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Grade          string
	Subject        string
	Topic          string
	Score          int
	TotalQuestions int
	TakenAt        time.Time
}

// ResultRepository stores finished quiz attempts.
type ResultRepository struct {
	store resultStore
}

// NewResultRepository wraps Queries for quiz results.
func NewResultRepository(store resultStore) *ResultRepository {
	return &ResultRepository{store: store}
}

// Create records a result. A zero TakenAt lets the database stamp it.
func (r *ResultRepository) Create(ctx context.Context, res QuizResult) (QuizResult, error) {
	row, err := r.store.CreateQuizResult(ctx, queries.CreateQuizResultParams{
		UserID:         toPGUUID(res.UserID),
		Grade:          res.Grade,
		Subject:        res.Subject,
		Topic:          res.Topic,
		Score:          int32(res.Score),
		TotalQuestions: int32(res.TotalQuestions),
		TakenAt:        toPGTime(res.TakenAt),
	})
	if err != nil {
		return QuizResult{}, fmt.Errorf("create quiz result: %w", mapError(err))
	}
	return resultFromRow(row), nil
}

// ListByUser returns up to limit results for a user, newest first.
func (r *ResultRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]QuizResult, error) {
	rows, err := r.store.ListQuizResultsByUser(ctx, queries.ListQuizResultsByUserParams{
		UserID: toPGUUID(userID),
		Limit:  int32(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("list quiz results: %w", mapError(err))
	}

	out := make([]QuizResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, resultFromRow(row))
	}
	return out, nil
}

func resultFromRow(row queries.QuizResult) QuizResult {
	return QuizResult{
		ID:             fromPGUUID(row.ResultID),
		UserID:         fromPGUUID(row.UserID),
		Grade:          row.Grade,
		Subject:        row.Subject,
		Topic:          row.Topic,
		Score:          int(row.Score),
		TotalQuestions: int(row.TotalQuestions),
		TakenAt:        row.TakenAt.Time,
	}
}
