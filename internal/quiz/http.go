package quiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/eduquiz/internal/auth"
	"github.com/gokatarajesh/eduquiz/internal/curriculum"
	httperrors "github.com/gokatarajesh/eduquiz/pkg/http/errors"
)

// HTTPHandler exposes quiz sessions over REST. Routes must sit behind
// auth.AuthMiddleware.
type HTTPHandler struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandler creates the quiz handlers.
func NewHTTPHandler(svc *Service, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{svc: svc, logger: logger}
}

// Start handles POST /v1/quizzes
func (h *HTTPHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.user(w, r)
	if !ok {
		return
	}

	var req StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	view, err := h.svc.Start(r.Context(), userID, req)
	if err != nil {
		h.respondServiceError(w, err, httperrors.ErrCodeQuizStartFailed)
		return
	}
	httperrors.RespondJSON(w, http.StatusCreated, view)
}

// Get handles GET /v1/quizzes/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.user(w, r)
	if !ok {
		return
	}
	sessionID, ok := sessionIDFromPath(w, r)
	if !ok {
		return
	}

	view, err := h.svc.Get(r.Context(), userID, sessionID)
	if err != nil {
		h.respondServiceError(w, err, httperrors.ErrCodeInternalError)
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, view)
}

// Answer handles POST /v1/quizzes/{id}/answers
func (h *HTTPHandler) Answer(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.user(w, r)
	if !ok {
		return
	}
	sessionID, ok := sessionIDFromPath(w, r)
	if !ok {
		return
	}

	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}
	if req.Selected == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "selected is required", "selected")
		return
	}

	res, err := h.svc.Answer(r.Context(), userID, sessionID, req)
	if err != nil {
		h.respondServiceError(w, err, httperrors.ErrCodeInternalError)
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, res)
}

// History handles GET /v1/results
func (h *HTTPHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.user(w, r)
	if !ok {
		return
	}

	results, err := h.svc.History(r.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID.String()).Msg("load history failed")
		httperrors.RespondInternalError(w, "Failed to load results")
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (h *HTTPHandler) user(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "Authentication required")
	}
	return userID, ok
}

func sessionIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidQuizID, "Invalid quiz id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *HTTPHandler) respondServiceError(w http.ResponseWriter, err error, fallbackCode string) {
	switch {
	case errors.Is(err, curriculum.ErrUnknownGrade):
		httperrors.RespondValidationError(w, httperrors.ErrCodeUnknownGrade, err.Error(), "grade")
	case errors.Is(err, curriculum.ErrUnknownSubject):
		httperrors.RespondValidationError(w, httperrors.ErrCodeUnknownSubject, err.Error(), "subject")
	case errors.Is(err, curriculum.ErrUnknownTopic):
		httperrors.RespondValidationError(w, httperrors.ErrCodeUnknownTopic, err.Error(), "topic")
	case errors.Is(err, ErrSessionNotFound):
		httperrors.RespondNotFound(w, httperrors.ErrCodeQuizNotFound, err.Error())
	case errors.Is(err, ErrForbidden):
		httperrors.RespondForbidden(w, httperrors.ErrCodeForbidden, err.Error())
	case errors.Is(err, ErrInvalidOption):
		httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidOption, err.Error(), "selected")
	case errors.Is(err, ErrQuizFinished):
		httperrors.RespondConflict(w, httperrors.ErrCodeQuizFinished, err.Error())
	case errors.Is(err, ErrOutOfOrder):
		httperrors.RespondConflict(w, httperrors.ErrCodeAnswerOutOfOrder, err.Error())
	case errors.Is(err, ErrSessionBusy):
		httperrors.RespondConflict(w, httperrors.ErrCodeConflict, err.Error())
	default:
		h.logger.Error().Err(err).Msg("quiz request failed")
		httperrors.RespondError(w, http.StatusInternalServerError, fallbackCode, "Quiz request failed")
	}
}
