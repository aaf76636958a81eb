package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/eduquiz/internal/db/queries"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) CreateUser(ctx context.Context, arg queries.CreateUserParams) (queries.User, error) {
	args := m.Called(ctx, arg)
	return args.Get(0).(queries.User), args.Error(1)
}

func (m *mockUserStore) GetUserByEmail(ctx context.Context, email string) (queries.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(queries.User), args.Error(1)
}

func (m *mockUserStore) GetUserByID(ctx context.Context, userID pgtype.UUID) (queries.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(queries.User), args.Error(1)
}

func TestUserRepository_Create(t *testing.T) {
	store := new(mockUserStore)
	repo := NewUserRepository(store)

	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	params := queries.CreateUserParams{
		Email:        "student@example.com",
		DisplayName:  "Ada",
		PasswordHash: "hashed",
	}
	store.On("CreateUser", mock.Anything, params).Return(queries.User{
		UserID:       uuidFromByte(1),
		Email:        params.Email,
		DisplayName:  "Ada",
		PasswordHash: "hashed",
		CreatedAt:    pgtype.Timestamptz{Time: created, Valid: true},
	}, nil)

	got, err := repo.Create(context.Background(), "  Student@Example.com ", "Ada", "hashed")

	require.NoError(t, err)
	assert.Equal(t, idFromByte(1), got.ID)
	assert.Equal(t, "student@example.com", got.Email)
	assert.Equal(t, created, got.CreatedAt)
	store.AssertExpectations(t)
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	store := new(mockUserStore)
	repo := NewUserRepository(store)

	store.On("CreateUser", mock.Anything, mock.Anything).
		Return(queries.User{}, &pgconn.PgError{Code: "23505", Message: "duplicate key"})

	_, err := repo.Create(context.Background(), "a@b.c", "A", "h")

	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	store := new(mockUserStore)
	repo := NewUserRepository(store)

	store.On("GetUserByEmail", mock.Anything, "user@example.com").
		Return(queries.User{UserID: uuidFromByte(2), DisplayName: "Ace"}, nil)

	got, err := repo.GetByEmail(context.Background(), "user@example.com")

	require.NoError(t, err)
	assert.Equal(t, idFromByte(2), got.ID)
	assert.Equal(t, "Ace", got.DisplayName)
	store.AssertExpectations(t)
}

func TestUserRepository_GetByIDNotFound(t *testing.T) {
	store := new(mockUserStore)
	repo := NewUserRepository(store)

	store.On("GetUserByID", mock.Anything, uuidFromByte(3)).Return(queries.User{}, pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), idFromByte(3))

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMapErrorPassesThroughOtherErrors(t *testing.T) {
	cause := errors.New("connection refused")
	assert.Equal(t, cause, mapError(cause))
	assert.NoError(t, mapError(nil))
}
