package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/gokatarajesh/eduquiz/internal/db/queries"
)

type userStore interface {
	CreateUser(ctx context.Context, arg queries.CreateUserParams) (queries.User, error)
	GetUserByEmail(ctx context.Context, email string) (queries.User, error)
	GetUserByID(ctx context.Context, userID pgtype.UUID) (queries.User, error)
}

// User is an account row.
type User struct {
	ID           uuid.UUID
	Email        string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
}

// UserRepository exposes typed DB operations required by auth flows.
type UserRepository struct {
	store userStore
}

// NewUserRepository wraps Queries for user-specific operations.
func NewUserRepository(store userStore) *UserRepository {
	return &UserRepository{store: store}
}

// Create inserts an account. Emails are stored lower-cased; a taken email
// yields ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, email, displayName, passwordHash string) (User, error) {
	row, err := r.store.CreateUser(ctx, queries.CreateUserParams{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		DisplayName:  displayName,
		PasswordHash: passwordHash,
	})
	if err != nil {
		return User{}, fmt.Errorf("create user: %w", mapError(err))
	}
	return userFromRow(row), nil
}

// GetByEmail fetches a user by email, case-insensitively.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	row, err := r.store.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return User{}, mapError(err)
	}
	return userFromRow(row), nil
}

// GetByID fetches a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, userID uuid.UUID) (User, error) {
	row, err := r.store.GetUserByID(ctx, toPGUUID(userID))
	if err != nil {
		return User{}, mapError(err)
	}
	return userFromRow(row), nil
}

func userFromRow(row queries.User) User {
	return User{
		ID:           fromPGUUID(row.UserID),
		Email:        row.Email,
		DisplayName:  row.DisplayName,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt.Time,
	}
}
