package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	httperrors "github.com/gokatarajesh/eduquiz/pkg/http/errors"
)

// HTTPHandlers provides REST endpoints for authentication.
type HTTPHandlers struct {
	authSvc *Service
	logger  zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for auth endpoints.
func NewHTTPHandlers(authSvc *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		authSvc: authSvc,
		logger:  logger,
	}
}

type sessionResponse struct {
	User *User `json:"user"`
	*TokenPair
}

// Register handles POST /v1/auth/register
func (h *HTTPHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	user, tokens, err := h.authSvc.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailRequired):
			httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, err.Error(), "email")
		case errors.Is(err, ErrDisplayNameRequired):
			httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, err.Error(), "display_name")
		case errors.Is(err, ErrPasswordMismatch):
			httperrors.RespondValidationError(w, httperrors.ErrCodePasswordMismatch, err.Error(), "password_confirm")
		case errors.Is(err, ErrPasswordTooShort), errors.Is(err, ErrPasswordTooLong):
			httperrors.RespondValidationError(w, httperrors.ErrCodePasswordTooShort, err.Error(), "password")
		case errors.Is(err, ErrEmailTaken):
			httperrors.RespondConflict(w, httperrors.ErrCodeEmailTaken, err.Error())
		default:
			h.logger.Error().Err(err).Msg("registration failed")
			httperrors.RespondBadRequest(w, httperrors.ErrCodeRegistrationFailed, err.Error())
		}
		return
	}

	httperrors.RespondJSON(w, http.StatusCreated, sessionResponse{User: user, TokenPair: tokens})
}

// Login handles POST /v1/auth/login
func (h *HTTPHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	user, tokens, err := h.authSvc.Login(r.Context(), req)
	if err != nil {
		if !errors.Is(err, ErrInvalidCredentials) {
			h.logger.Error().Err(err).Msg("login failed")
			httperrors.RespondInternalError(w, "Login failed")
			return
		}
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeLoginFailed, err.Error())
		return
	}

	httperrors.RespondJSON(w, http.StatusOK, sessionResponse{User: user, TokenPair: tokens})
}

// RefreshToken handles POST /v1/auth/refresh
func (h *HTTPHandlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "refresh_token is required")
		return
	}

	tokens, err := h.authSvc.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeRefreshFailed, "Invalid or expired refresh token")
		return
	}

	httperrors.RespondJSON(w, http.StatusOK, tokens)
}

// GetMe handles GET /v1/users/me
func (h *HTTPHandlers) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
		return
	}

	user, err := h.authSvc.Me(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, err.Error())
			return
		}
		h.logger.Error().Err(err).Msg("load current user failed")
		httperrors.RespondInternalError(w, "Failed to load user")
		return
	}

	httperrors.RespondJSON(w, http.StatusOK, user)
}
