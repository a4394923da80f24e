package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/FabledTyromancer/Professorlocke/internal/dex"
	"github.com/FabledTyromancer/Professorlocke/internal/names"
	"github.com/FabledTyromancer/Professorlocke/internal/quiz"
	"github.com/FabledTyromancer/Professorlocke/internal/store"
	"github.com/FabledTyromancer/Professorlocke/internal/units"
)

var (
	errNameRequired   = errors.New("pokemon name is required")
	errAnswerRequired = errors.New("answer is required")
)

// The actions below are shared by the HTTP handlers and the WebSocket
// channel. Each takes the session lock for its whole duration.

func (a *API) createSession(ctx context.Context) (*quizSession, error) {
	pool, groups, err := a.catalog.Get()
	if err != nil {
		return nil, err
	}
	prefs, err := a.store.Preferences(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading preferences: %w", err)
	}

	q := quiz.NewSession(pool, groups,
		quiz.WithTolerance(a.tol),
		quiz.WithUnits(units.FromMetric(prefs.UseMetric)),
		quiz.WithRandomizer(a.newRand()),
	)
	s := a.sessions.Create(q)
	a.logger.Info("session created", "session_id", s.id, "units", q.Units().String())
	return s, nil
}

func (a *API) state(s *quizSession) QuizStateResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return stateView(s)
}

func (a *API) start(s *quizSession, name string) (QuizStateResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return QuizStateResponse{}, errNameRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.quiz.Start(name); err != nil {
		return QuizStateResponse{}, err
	}
	s.recorded = false

	e, _ := s.quiz.Entity()
	a.logger.Info("quiz started", "session_id", s.id, "pokemon", e.Name, "questions", s.quiz.Len())
	a.broker.Publish(s.id, Event{Type: EventStarted})
	return stateView(s), nil
}

func (a *API) answer(ctx context.Context, s *quizSession, raw string) (AnswerResponse, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return AnswerResponse{}, errAnswerRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.quiz.Current()
	if !ok {
		return AnswerResponse{}, quiz.ErrNoQuiz
	}
	v, err := s.quiz.Submit(raw)
	if err != nil {
		return AnswerResponse{}, err
	}
	a.broker.Publish(s.id, Event{
		Type:    EventAnswered,
		Index:   s.quiz.Index(),
		Verdict: v.String(),
		Score:   s.quiz.Score(),
	})

	if g, ok := s.quiz.Grade(); ok && !s.recorded {
		s.recorded = true
		a.finish(ctx, s, g)
	}

	return AnswerResponse{
		Verdict:  v.String(),
		Points:   v.Points(),
		Feedback: quiz.Feedback(v, q),
		Quiz:     stateView(s),
	}, nil
}

// finish records a completed quiz. A storage failure is logged and does
// not affect the answer that completed the quiz.
func (a *API) finish(ctx context.Context, s *quizSession, g quiz.Grade) {
	e, _ := s.quiz.Entity()
	_, err := a.store.RecordResult(ctx, store.Result{
		SessionID: s.id,
		Pokemon:   e.Name,
		Score:     g.Score,
		Total:     g.Total,
		Percent:   g.Percent,
		Passed:    g.Passed,
	})
	if err != nil {
		a.logger.Error("recording result", "session_id", s.id, "error", err)
	}
	a.logger.Info("quiz complete", "session_id", s.id, "pokemon", names.Display(e.Name),
		"score", g.Score, "percent", g.Percent, "passed", g.Passed)

	percent := g.Percent
	a.broker.Publish(s.id, Event{Type: EventComplete, Index: s.quiz.Index(), Score: g.Score, Percent: &percent})
}

func (a *API) move(s *quizSession, step int) QuizStateResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	if step < 0 {
		s.quiz.Prev()
	} else {
		s.quiz.Next()
	}
	a.broker.Publish(s.id, Event{Type: EventMoved, Index: s.quiz.Index(), Score: s.quiz.Score()})
	return stateView(s)
}

// setUnits switches the session's display units and saves the choice as
// the default for new sessions.
func (a *API) setUnits(ctx context.Context, s *quizSession, metric bool) (QuizStateResponse, error) {
	if err := a.store.SavePreferences(ctx, store.Preferences{UseMetric: metric}); err != nil {
		return QuizStateResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sys := units.FromMetric(metric)
	s.quiz.SetUnits(sys)
	a.broker.Publish(s.id, Event{Type: EventUnits, Index: s.quiz.Index(), Score: s.quiz.Score(), Units: sys.String()})
	return stateView(s), nil
}

// statusFor maps an action error to an HTTP status and client message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, errNameRequired), errors.Is(err, errAnswerRequired),
		errors.Is(err, errMetricRequired), errors.Is(err, errUnknownCommand):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, quiz.ErrEntityNotFound):
		return http.StatusNotFound, "pokemon not found"
	case errors.Is(err, quiz.ErrNoQuiz):
		return http.StatusConflict, "no quiz in progress"
	case errors.Is(err, quiz.ErrAlreadyAnswered):
		return http.StatusConflict, "question already answered"
	case errors.Is(err, dex.ErrNotReady):
		return http.StatusServiceUnavailable, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
