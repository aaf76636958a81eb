package quiz

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

	"github.com/gokatarajesh/eduquiz/internal/auth"
	"github.com/gokatarajesh/eduquiz/internal/auth/jwt"
	"github.com/gokatarajesh/eduquiz/internal/db/repository"
	httperrors "github.com/gokatarajesh/eduquiz/pkg/http/errors"
)

func newTestMux(f *fixture) *http.ServeMux {
	h := NewHTTPHandler(f.svc, zerolog.Nop())
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/quizzes", h.Start)
	mux.HandleFunc("GET /v1/quizzes/{id}", h.Get)
	mux.HandleFunc("POST /v1/quizzes/{id}/answers", h.Answer)
	mux.HandleFunc("GET /v1/results", h.History)
	return mux
}

func do(t *testing.T, mux http.Handler, user uuid.UUID, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if user != uuid.Nil {
		req = req.WithContext(auth.WithClaims(req.Context(), &jwt.Claims{UserID: user}))
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) httperrors.ErrorResponse {
	t.Helper()
	var body httperrors.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestHTTPQuizLifecycle(t *testing.T) {
	f := newFixture(t)
	f.results.On("Create", mock.Anything, mock.Anything).Return(repository.QuizResult{}, nil)
	mux := newTestMux(f)

	rec := do(t, mux, alice, http.MethodPost, "/v1/quizzes", `{"grade":"Grade 7","subject":"Math","topic":"Geometry","count":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "b is right")

	var view SessionView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	assert.Equal(t, 1, view.Total)

	rec = do(t, mux, alice, http.MethodGet, "/v1/quizzes/"+view.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, mux, alice, http.MethodPost, "/v1/quizzes/"+view.ID.String()+"/answers", `{"selected":"b","question_index":0}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res AnswerResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.True(t, res.Correct)
	assert.True(t, res.Finished)
	require.NotNil(t, res.Summary)
	assert.Equal(t, 100, res.Summary.Percentage)

	rec = do(t, mux, alice, http.MethodPost, "/v1/quizzes/"+view.ID.String()+"/answers", `{"selected":"b"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, httperrors.ErrCodeQuizFinished, errorCode(t, rec).Error)
}

func TestHTTPStartErrors(t *testing.T) {
	f := newFixture(t)
	mux := newTestMux(f)

	rec := do(t, mux, uuid.Nil, http.MethodPost, "/v1/quizzes", `{}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, mux, alice, http.MethodPost, "/v1/quizzes", `{"grade":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, mux, alice, http.MethodPost, "/v1/quizzes", `{"grade":"Grade 7","subject":"Art","topic":"Color"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := errorCode(t, rec)
	assert.Equal(t, httperrors.ErrCodeUnknownSubject, body.Error)
	assert.Equal(t, "subject", body.Field)
}

func TestHTTPSessionErrors(t *testing.T) {
	f := newFixture(t)
	mux := newTestMux(f)

	rec := do(t, mux, alice, http.MethodGet, "/v1/quizzes/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, httperrors.ErrCodeInvalidQuizID, errorCode(t, rec).Error)

	rec = do(t, mux, alice, http.MethodGet, "/v1/quizzes/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, mux, alice, http.MethodPost, "/v1/quizzes", `{"grade":"Grade 7","subject":"Math","topic":"Geometry"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var view SessionView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))

	rec = do(t, mux, bob, http.MethodGet, "/v1/quizzes/"+view.ID.String(), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, mux, alice, http.MethodPost, "/v1/quizzes/"+view.ID.String()+"/answers", `{"selected":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, mux, alice, http.MethodPost, "/v1/quizzes/"+view.ID.String()+"/answers", `{"selected":"zzz"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, httperrors.ErrCodeInvalidOption, errorCode(t, rec).Error)
}

func TestHTTPHistory(t *testing.T) {
	f := newFixture(t)
	f.results.On("ListByUser", mock.Anything, alice, 50).Return([]repository.QuizResult{
		{ID: uuid.New(), Grade: "Grade 5", Subject: "Science", Topic: "Earth & Space", Score: 4, TotalQuestions: 5},
	}, nil)

	rec := do(t, newTestMux(f), alice, http.MethodGet, "/v1/results", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Results []Result `json:"results"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Results, 1)
	assert.Equal(t, 80, body.Results[0].Percentage)
	assert.Equal(t, MessageExcellent, body.Results[0].Message)
}
