package queries

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createUser = `
INSERT INTO users (email, display_name, password_hash)
VALUES ($1, $2, $3)
RETURNING user_id, email, display_name, password_hash, created_at
`

type CreateUserParams struct {
	Email        string
	DisplayName  string
	PasswordHash string
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRow(ctx, createUser, arg.Email, arg.DisplayName, arg.PasswordHash)
	var i User
	err := row.Scan(&i.UserID, &i.Email, &i.DisplayName, &i.PasswordHash, &i.CreatedAt)
	return i, err
}

const getUserByEmail = `
SELECT user_id, email, display_name, password_hash, created_at
FROM users
WHERE lower(email) = lower($1)
`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.db.QueryRow(ctx, getUserByEmail, email)
	var i User
	err := row.Scan(&i.UserID, &i.Email, &i.DisplayName, &i.PasswordHash, &i.CreatedAt)
	return i, err
}

const getUserByID = `
SELECT user_id, email, display_name, password_hash, created_at
FROM users
WHERE user_id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, userID pgtype.UUID) (User, error) {
	row := q.db.QueryRow(ctx, getUserByID, userID)
	var i User
	err := row.Scan(&i.UserID, &i.Email, &i.DisplayName, &i.PasswordHash, &i.CreatedAt)
	return i, err
}
