package queries

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createQuizResult = `
INSERT INTO quiz_results (user_id, grade, subject, topic, score, total_questions, taken_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING result_id, user_id, grade, subject, topic, score, total_questions, taken_at
`

type CreateQuizResultParams struct {
	UserID         pgtype.UUID
	Grade          string
	Subject        string
	Topic          string
	Score          int32
	TotalQuestions int32
	TakenAt        pgtype.Timestamptz
}

func (q *Queries) CreateQuizResult(ctx context.Context, arg CreateQuizResultParams) (QuizResult, error) {
	row := q.db.QueryRow(ctx, createQuizResult,
		arg.UserID, arg.Grade, arg.Subject, arg.Topic, arg.Score, arg.TotalQuestions, arg.TakenAt)
	var i QuizResult
	err := row.Scan(&i.ResultID, &i.UserID, &i.Grade, &i.Subject, &i.Topic, &i.Score, &i.TotalQuestions, &i.TakenAt)
	return i, err
}

const listQuizResultsByUser = `
SELECT result_id, user_id, grade, subject, topic, score, total_questions, taken_at
FROM quiz_results
WHERE user_id = $1
ORDER BY taken_at DESC
LIMIT $2
`

type ListQuizResultsByUserParams struct {
	UserID pgtype.UUID
	Limit  int32
}

func (q *Queries) ListQuizResultsByUser(ctx context.Context, arg ListQuizResultsByUserParams) ([]QuizResult, error) {
	rows, err := q.db.Query(ctx, listQuizResultsByUser, arg.UserID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []QuizResult
	for rows.Next() {
		var i QuizResult
		if err := rows.Scan(&i.ResultID, &i.UserID, &i.Grade, &i.Subject, &i.Topic, &i.Score, &i.TotalQuestions, &i.TakenAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
