package quiz

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/gokatarajesh/eduquiz/internal/question"
)

var (
	ErrSessionNotFound = errors.New("quiz session not found")
	ErrQuizFinished    = errors.New("quiz already finished")
	ErrInvalidOption   = errors.New("selected answer is not one of the options")
	ErrForbidden       = errors.New("quiz session belongs to another user")
	ErrOutOfOrder      = errors.New("answer does not target the current question")
	ErrSessionBusy     = errors.New("quiz session is being updated")
)

// Session is the server-side state of one quiz attempt. It holds the answer
// key, so it never leaves the server as-is.
type Session struct {
	ID         uuid.UUID           `json:"id"`
	UserID     uuid.UUID           `json:"user_id"`
	Grade      string              `json:"grade"`
	Subject    string              `json:"subject"`
	Topic      string              `json:"topic"`
	Questions  []question.Question `json:"questions"`
	Answers    []AnswerRecord      `json:"answers"`
	Score      int                 `json:"score"`
	StartedAt  time.Time           `json:"started_at"`
	FinishedAt *time.Time          `json:"finished_at,omitempty"`
}

// AnswerRecord is one submitted answer.
type AnswerRecord struct {
	Index      int       `json:"index"`
	Selected   string    `json:"selected"`
	Correct    bool      `json:"correct"`
	AnsweredAt time.Time `json:"answered_at"`
}

// Current is the index of the next unanswered question.
func (s *Session) Current() int {
	return len(s.Answers)
}

// Finished reports whether every question has been answered.
func (s *Session) Finished() bool {
	return len(s.Answers) >= len(s.Questions)
}

// Source is "ai" when every question came from the model, "fallback" otherwise.
func (s *Session) Source() string {
	for _, q := range s.Questions {
		if q.Source != question.SourceAI {
			return question.SourceFallback
		}
	}
	return question.SourceAI
}

// StartRequest selects what to quiz on.
type StartRequest struct {
	Grade   string `json:"grade"`
	Subject string `json:"subject"`
	Topic   string `json:"topic"`
	Count   int    `json:"count"`
}

// AnswerRequest submits an answer for the current question. QuestionIndex is
// optional; when set it must equal the current index.
type AnswerRequest struct {
	Selected      string `json:"selected"`
	QuestionIndex *int   `json:"question_index,omitempty"`
}

// QuestionView is a question as shown to the student.
type QuestionView struct {
	Index    int      `json:"index"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// SessionView is the client-facing projection of a Session.
type SessionView struct {
	ID       uuid.UUID     `json:"id"`
	Grade    string        `json:"grade"`
	Subject  string        `json:"subject"`
	Topic    string        `json:"topic"`
	Source   string        `json:"source"`
	Total    int           `json:"total"`
	Answered int           `json:"answered"`
	Score    int           `json:"score"`
	Current  *QuestionView `json:"current,omitempty"`
	Finished bool          `json:"finished"`
	Summary  *Summary      `json:"summary,omitempty"`
}

// AnswerResult is the feedback for one submitted answer.
type AnswerResult struct {
	Correct       bool          `json:"correct"`
	CorrectAnswer string        `json:"correct_answer"`
	Explanation   string        `json:"explanation,omitempty"`
	Score         int           `json:"score"`
	Finished      bool          `json:"finished"`
	Next          *QuestionView `json:"next,omitempty"`
	Summary       *Summary      `json:"summary,omitempty"`
}

// Summary describes a finished attempt.
type Summary struct {
	Score      int    `json:"score"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
	Passed     bool   `json:"passed"`
	Message    string `json:"message"`
}

// Result is one entry of a student's history.
type Result struct {
	ID      uuid.UUID `json:"id"`
	Grade   string    `json:"grade"`
	Subject string    `json:"subject"`
	Topic   string    `json:"topic"`
	TakenAt time.Time `json:"taken_at"`
	Summary
}

func (s *Session) view(summary *Summary) *SessionView {
	v := &SessionView{
		ID:       s.ID,
		Grade:    s.Grade,
		Subject:  s.Subject,
		Topic:    s.Topic,
		Source:   s.Source(),
		Total:    len(s.Questions),
		Answered: len(s.Answers),
		Score:    s.Score,
		Finished: s.Finished(),
		Summary:  summary,
	}
	if !v.Finished {
		v.Current = s.questionView(s.Current())
	}
	return v
}

func (s *Session) questionView(i int) *QuestionView {
	if i < 0 || i >= len(s.Questions) {
		return nil
	}
	q := s.Questions[i]
	return &QuestionView{
		Index:    i,
		Question: q.Text,
		Options:  append([]string(nil), q.Options...),
	}
}
