package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondValidationError(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondValidationError(rec, ErrCodeUnknownTopic, "unknown topic", "topic")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, ErrorResponse{Error: "unknown_topic", Message: "unknown topic", Field: "topic"}, body)
}

func TestRespondErrorOmitsEmptyFields(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondConflict(rec, ErrCodeQuizFinished, "quiz already finished")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"quiz_finished","message":"quiz already finished"}`, rec.Body.String())
}

func TestRespondErrorWithDetails(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondErrorWithDetails(rec, http.StatusBadGateway, ErrCodeUpstreamError, "ping failed", map[string]any{"dependency": "redis"})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"upstream_error","message":"ping failed","details":{"dependency":"redis"}}`, rec.Body.String())
}
