package queries

import "github.com/jackc/pgx/v5/pgtype"

type User struct {
	UserID       pgtype.UUID
	Email        string
	DisplayName  string
	PasswordHash string
	CreatedAt    pgtype.Timestamptz
}

type QuizResult struct {
	ResultID       pgtype.UUID
	UserID         pgtype.UUID
	Grade          string
	Subject        string
	Topic          string
	Score          int32
	TotalQuestions int32
	TakenAt        pgtype.Timestamptz
}
