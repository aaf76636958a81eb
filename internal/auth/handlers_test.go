package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/eduquiz/internal/auth/jwt"
	"github.com/gokatarajesh/eduquiz/internal/db/repository"
	httperrors "github.com/gokatarajesh/eduquiz/pkg/http/errors"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httperrors.ErrorResponse {
	t.Helper()
	var body httperrors.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestRegisterHandler(t *testing.T) {
	store := new(mockUserStore)
	id := uuid.New()
	store.On("Create", mock.Anything, "ada@example.com", "Ada", mock.Anything).
		Return(repository.User{ID: id, Email: "ada@example.com", DisplayName: "Ada"}, nil)
	h := NewHTTPHandlers(newTestService(store), zerolog.Nop())

	body := `{"email":"ada@example.com","password":"secret1","password_confirm":"secret1","display_name":"Ada"}`
	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/v1/auth/register", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		User         User   `json:"user"`
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    int64  `json:"expires_in"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, id, resp.User.ID)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
}

func TestRegisterHandlerMismatch(t *testing.T) {
	h := NewHTTPHandlers(newTestService(new(mockUserStore)), zerolog.Nop())

	body := `{"email":"ada@example.com","password":"secret1","password_confirm":"secret2","display_name":"Ada"}`
	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/v1/auth/register", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, httperrors.ErrCodePasswordMismatch, resp.Error)
	assert.Equal(t, "password_confirm", resp.Field)
}

func TestLoginHandlerRejectsBadCredentials(t *testing.T) {
	store := new(mockUserStore)
	store.On("GetByEmail", mock.Anything, "ada@example.com").Return(repository.User{}, repository.ErrNotFound)
	h := NewHTTPHandlers(newTestService(store), zerolog.Nop())

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(`{"email":"ada@example.com","password":"secret1"}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, httperrors.ErrCodeLoginFailed, decodeError(t, rec).Error)
}

func TestAuthMiddlewareAndMe(t *testing.T) {
	store := new(mockUserStore)
	id := uuid.New()
	store.On("GetByID", mock.Anything, id).Return(repository.User{ID: id, Email: "ada@example.com", DisplayName: "Ada"}, nil)
	svc := newTestService(store)
	h := NewHTTPHandlers(svc, zerolog.Nop())

	handler := AuthMiddleware(svc, zerolog.Nop())(RequireAuth(http.HandlerFunc(h.GetMe)))

	token, err := svc.tokenMgr.GenerateAccessToken(jwt.User{ID: id, Email: "ada@example.com", DisplayName: "Ada"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var user User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&user))
	assert.Equal(t, "Ada", user.DisplayName)
}

func TestAuthMiddlewareRejections(t *testing.T) {
	svc := newTestService(new(mockUserStore))
	handler := AuthMiddleware(svc, zerolog.Nop())(RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	cases := map[string]struct {
		header string
		code   string
	}{
		"missing":    {"", httperrors.ErrCodeAuthenticationRequired},
		"not bearer": {"Basic abc", httperrors.ErrCodeInvalidToken},
		"garbage":    {"Bearer garbage", httperrors.ErrCodeInvalidToken},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/results", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tc.code, decodeError(t, rec).Error)
		})
	}
}
