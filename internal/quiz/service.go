// Package quiz runs quiz attempts: it draws questions from the generation
// pipeline, holds the attempt in a session store, grades answers in order
// and records finished attempts.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/eduquiz/internal/db/repository"
	"github.com/gokatarajesh/eduquiz/internal/question"
)

// Generator produces questions. *question.Service never fails, so neither
// does Start once the request is valid.
type Generator interface {
	Generate(ctx context.Context, req question.GenerationRequest) []question.Question
}

// Catalog validates a grade/subject/topic selection.
type Catalog interface {
	Validate(grade, subject, topic string) error
}

// ResultStore persists finished attempts.
type ResultStore interface {
	Create(ctx context.Context, res repository.QuizResult) (repository.QuizResult, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]repository.QuizResult, error)
}

// ServiceOptions tunes question counts and history size.
type ServiceOptions struct {
	DefaultCount int
	MaxCount     int
	HistoryLimit int
	Scoring      ScoringConfig
}

// Service coordinates quiz attempts.
type Service struct {
	generator Generator
	catalog   Catalog
	sessions  SessionStore
	results   ResultStore
	engine    *Engine
	opts      ServiceOptions
	logger    zerolog.Logger
	now       func() time.Time
}

// NewService wires a quiz service. Zero options fall back to 5 questions by
// default, at most 20, and 50 history entries.
func NewService(generator Generator, catalog Catalog, sessions SessionStore, results ResultStore, opts ServiceOptions, logger zerolog.Logger) *Service {
	if opts.DefaultCount <= 0 {
		opts.DefaultCount = question.DefaultCount
	}
	if opts.MaxCount <= 0 {
		opts.MaxCount = 20
	}
	if opts.DefaultCount > opts.MaxCount {
		opts.DefaultCount = opts.MaxCount
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = 50
	}
	if opts.Scoring == (ScoringConfig{}) {
		opts.Scoring = DefaultScoringConfig()
	}
	return &Service{
		generator: generator,
		catalog:   catalog,
		sessions:  sessions,
		results:   results,
		engine:    NewEngine(opts.Scoring),
		opts:      opts,
		logger:    logger.With().Str("component", "quiz").Logger(),
		now:       time.Now,
	}
}

func (s *Service) clampCount(n int) int {
	switch {
	case n <= 0:
		return s.opts.DefaultCount
	case n > s.opts.MaxCount:
		return s.opts.MaxCount
	default:
		return n
	}
}

// Start validates the selection, generates questions and opens a session.
func (s *Service) Start(ctx context.Context, userID uuid.UUID, req StartRequest) (*SessionView, error) {
	if err := s.catalog.Validate(req.Grade, req.Subject, req.Topic); err != nil {
		return nil, err
	}

	count := s.clampCount(req.Count)
	questions := s.generator.Generate(ctx, question.GenerationRequest{
		Grade:   req.Grade,
		Subject: req.Subject,
		Topic:   req.Topic,
		Count:   count,
	})
	if len(questions) == 0 {
		return nil, fmt.Errorf("generate questions: empty set for %s/%s/%s", req.Grade, req.Subject, req.Topic)
	}

	sess := &Session{
		ID:        uuid.New(),
		UserID:    userID,
		Grade:     req.Grade,
		Subject:   req.Subject,
		Topic:     req.Topic,
		Questions: questions,
		Answers:   make([]AnswerRecord, 0, len(questions)),
		StartedAt: s.now().UTC(),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("session_id", sess.ID.String()).
		Str("user_id", userID.String()).
		Str("grade", req.Grade).
		Str("subject", req.Subject).
		Str("topic", req.Topic).
		Int("questions", len(questions)).
		Str("source", sess.Source()).
		Msg("quiz started")

	return sess.view(nil), nil
}

// Get returns the caller's view of a session.
func (s *Service) Get(ctx context.Context, userID, sessionID uuid.UUID) (*SessionView, error) {
	sess, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	var summary *Summary
	if sess.Finished() {
		sum := s.engine.Summarize(sess.Score, len(sess.Questions))
		summary = &sum
	}
	return sess.view(summary), nil
}

// Answer grades the current question. The last answer finishes the quiz and
// records the result; a failure to record is logged and does not fail the
// answer.
func (s *Service) Answer(ctx context.Context, userID, sessionID uuid.UUID, req AnswerRequest) (*AnswerResult, error) {
	unlock, err := s.sessions.Lock(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	sess, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Finished() {
		return nil, ErrQuizFinished
	}

	idx := sess.Current()
	if req.QuestionIndex != nil && *req.QuestionIndex != idx {
		return nil, ErrOutOfOrder
	}

	q := sess.Questions[idx]
	if !slices.Contains(q.Options, req.Selected) {
		return nil, ErrInvalidOption
	}

	correct := req.Selected == q.Answer
	if correct {
		sess.Score++
	}
	now := s.now().UTC()
	sess.Answers = append(sess.Answers, AnswerRecord{
		Index:      idx,
		Selected:   req.Selected,
		Correct:    correct,
		AnsweredAt: now,
	})

	res := &AnswerResult{
		Correct:       correct,
		CorrectAnswer: q.Answer,
		Explanation:   q.Explanation,
		Score:         sess.Score,
		Finished:      sess.Finished(),
	}
	if res.Finished {
		sess.FinishedAt = &now
		sum := s.engine.Summarize(sess.Score, len(sess.Questions))
		res.Summary = &sum
	} else {
		res.Next = sess.questionView(sess.Current())
	}

	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	if res.Finished {
		s.record(ctx, sess, res.Summary)
	}
	return res, nil
}

func (s *Service) record(ctx context.Context, sess *Session, sum *Summary) {
	log := s.logger.With().
		Str("session_id", sess.ID.String()).
		Str("user_id", sess.UserID.String()).
		Int("score", sum.Score).
		Int("total", sum.Total).
		Logger()

	if s.results == nil {
		log.Info().Msg("quiz finished")
		return
	}
	_, err := s.results.Create(ctx, repository.QuizResult{
		UserID:         sess.UserID,
		Grade:          sess.Grade,
		Subject:        sess.Subject,
		Topic:          sess.Topic,
		Score:          sum.Score,
		TotalQuestions: sum.Total,
		TakenAt:        *sess.FinishedAt,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to record quiz result")
		return
	}
	log.Info().Int("percentage", sum.Percentage).Msg("quiz finished")
}

// History lists the caller's finished attempts, newest first.
func (s *Service) History(ctx context.Context, userID uuid.UUID) ([]Result, error) {
	if s.results == nil {
		return []Result{}, nil
	}
	rows, err := s.results.ListByUser(ctx, userID, s.opts.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	out := make([]Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, Result{
			ID:      row.ID,
			Grade:   row.Grade,
			Subject: row.Subject,
			Topic:   row.Topic,
			TakenAt: row.TakenAt,
			Summary: s.engine.Summarize(row.Score, row.TotalQuestions),
		})
	}
	return out, nil
}

func (s *Service) load(ctx context.Context, userID, sessionID uuid.UUID) (*Session, error) {
	sess, err := s.sessions.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sess.UserID != userID {
		return nil, ErrForbidden
	}
	return sess, nil
}
