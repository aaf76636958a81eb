package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/eduquiz/internal/auth/jwt"
	"github.com/gokatarajesh/eduquiz/internal/db/repository"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) Create(ctx context.Context, email, displayName, passwordHash string) (repository.User, error) {
	args := m.Called(ctx, email, displayName, passwordHash)
	return args.Get(0).(repository.User), args.Error(1)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (repository.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(repository.User), args.Error(1)
}

func (m *mockUserStore) GetByID(ctx context.Context, userID uuid.UUID) (repository.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(repository.User), args.Error(1)
}

var testTokenConfig = jwt.TokenConfig{
	AccessSecret:  []byte("test-access-secret"),
	RefreshSecret: []byte("test-refresh-secret"),
	AccessTTL:     10 * time.Minute,
}

func newTestService(store UserStore) *Service {
	return NewService(store, ServiceOptions{TokenConfig: testTokenConfig}, zerolog.Nop())
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.NoError(t, VerifyPassword(hash, "secret1"))
	assert.ErrorIs(t, VerifyPassword(hash, "secret2"), ErrInvalidPassword)
}

func TestPasswordLengthLimits(t *testing.T) {
	_, err := HashPassword("12345")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}
	_, err = HashPassword(string(long))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestService_Register(t *testing.T) {
	store := new(mockUserStore)
	svc := newTestService(store)

	id := uuid.New()
	store.On("Create", mock.Anything, "ada@example.com", "Ada", mock.AnythingOfType("string")).
		Return(repository.User{ID: id, Email: "ada@example.com", DisplayName: "Ada"}, nil)

	user, tokens, err := svc.Register(context.Background(), RegisterRequest{
		Email:           "ada@example.com",
		Password:        "secret1",
		PasswordConfirm: "secret1",
		DisplayName:     " Ada ",
	})

	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.EqualValues(t, 600, tokens.ExpiresIn)

	claims, err := svc.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	store.AssertExpectations(t)
}

func TestService_RegisterValidation(t *testing.T) {
	cases := []struct {
		name string
		req  RegisterRequest
		want error
	}{
		{"missing email", RegisterRequest{Password: "secret1", PasswordConfirm: "secret1", DisplayName: "A"}, ErrEmailRequired},
		{"missing name", RegisterRequest{Email: "a@b.co", Password: "secret1", PasswordConfirm: "secret1"}, ErrDisplayNameRequired},
		{"mismatch", RegisterRequest{Email: "a@b.co", Password: "secret1", PasswordConfirm: "secret2", DisplayName: "A"}, ErrPasswordMismatch},
		{"short", RegisterRequest{Email: "a@b.co", Password: "abc", PasswordConfirm: "abc", DisplayName: "A"}, ErrPasswordTooShort},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := new(mockUserStore)
			_, _, err := newTestService(store).Register(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.want)
			store.AssertNotCalled(t, "Create")
		})
	}
}

func TestService_RegisterEmailTaken(t *testing.T) {
	store := new(mockUserStore)
	store.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(repository.User{}, repository.ErrDuplicate)

	_, _, err := newTestService(store).Register(context.Background(), RegisterRequest{
		Email: "ada@example.com", Password: "secret1", PasswordConfirm: "secret1", DisplayName: "Ada",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestService_Login(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	store := new(mockUserStore)
	id := uuid.New()
	store.On("GetByEmail", mock.Anything, "ada@example.com").
		Return(repository.User{ID: id, Email: "ada@example.com", DisplayName: "Ada", PasswordHash: hash}, nil)
	store.On("GetByEmail", mock.Anything, "nobody@example.com").
		Return(repository.User{}, repository.ErrNotFound)

	svc := newTestService(store)

	user, tokens, err := svc.Login(context.Background(), LoginRequest{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.NotEmpty(t, tokens.RefreshToken)

	_, _, err = svc.Login(context.Background(), LoginRequest{Email: "ada@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_LoginStoreFailure(t *testing.T) {
	store := new(mockUserStore)
	store.On("GetByEmail", mock.Anything, mock.Anything).Return(repository.User{}, errors.New("db down"))

	_, _, err := newTestService(store).Login(context.Background(), LoginRequest{Email: "a@b.co", Password: "secret1"})

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_RefreshToken(t *testing.T) {
	store := new(mockUserStore)
	id := uuid.New()
	store.On("GetByID", mock.Anything, id).Return(repository.User{ID: id, Email: "ada@example.com", DisplayName: "Ada"}, nil)

	svc := newTestService(store)
	refresh, err := svc.tokenMgr.GenerateRefreshToken(jwt.User{ID: id, Email: "ada@example.com", DisplayName: "Ada"})
	require.NoError(t, err)

	tokens, err := svc.RefreshToken(context.Background(), refresh)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)

	_, err = svc.RefreshToken(context.Background(), tokens.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestService_MeNotFound(t *testing.T) {
	store := new(mockUserStore)
	store.On("GetByID", mock.Anything, mock.Anything).Return(repository.User{}, repository.ErrNotFound)

	_, err := newTestService(store).Me(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrUserNotFound)
}
