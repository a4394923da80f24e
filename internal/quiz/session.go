package quiz

import (
	"errors"
	"fmt"
	"math"

	"github.com/FabledTyromancer/Professorlocke/internal/dex"
	"github.com/FabledTyromancer/Professorlocke/internal/units"
)

var (
	ErrEntityNotFound  = errors.New("pokemon not found")
	ErrNoQuiz          = errors.New("no quiz in progress")
	ErrAlreadyAnswered = errors.New("question already answered")
)

// PassPercent is the final grade needed to pass a quiz.
const PassPercent = 75

type State int

const (
	StateIdle State = iota
	StateInProgress
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateInProgress:
		return "in_progress"
	case StateComplete:
		return "complete"
	default:
		return "idle"
	}
}

// Nav reports which navigation moves are available.
type Nav struct {
	CanPrev bool
	CanNext bool
}

// Grade is the final result of a completed quiz.
type Grade struct {
	Score   float64
	Total   int
	Percent int
	Passed  bool
}

type Option func(*Session)

func WithTolerance(t Tolerance) Option   { return func(s *Session) { s.tol = t } }
func WithUnits(sys units.System) Option  { return func(s *Session) { s.units = sys } }
func WithRandomizer(r Randomizer) Option { return func(s *Session) { s.rng = r } }

// Session drives one quiz at a time over a fixed pool. It is not safe for
// concurrent use.
type Session struct {
	pool   *dex.Pool
	groups dex.GroupTable
	tol    Tolerance
	units  units.System
	rng    Randomizer

	entity    *dex.Entity
	questions []Question
	index     int
	answers   map[int]string
	verdicts  map[int]Verdict
	score     float64
}

func NewSession(pool *dex.Pool, groups dex.GroupTable, opts ...Option) *Session {
	s := &Session{
		pool:   pool,
		groups: groups,
		tol:    DefaultTolerance(),
		units:  units.Metric,
	}
	for _, o := range opts {
		o(s)
	}
	if s.rng == nil {
		s.rng = NewRandomizer()
	}
	return s
}

// Start resolves name and begins a fresh quiz for it. When nothing matches,
// any previous quiz is discarded and the session is left idle.
func (s *Session) Start(name string) ([]Question, error) {
	e, err := s.pool.Resolve(name)
	if err != nil {
		s.reset()
		return nil, fmt.Errorf("%w: %q", ErrEntityNotFound, name)
	}

	s.reset()
	s.entity = &e
	s.questions = Generate(e, s.groups, s.pool, s.units, s.rng)
	return s.Questions(), nil
}

func (s *Session) reset() {
	s.entity = nil
	s.questions = nil
	s.index = 0
	s.answers = make(map[int]string)
	s.verdicts = make(map[int]Verdict)
	s.score = 0
}

func (s *Session) State() State {
	switch {
	case s.entity == nil:
		return StateIdle
	case len(s.answers) == len(s.questions):
		return StateComplete
	default:
		return StateInProgress
	}
}

// Entity returns the Pokémon being quizzed.
func (s *Session) Entity() (dex.Entity, bool) {
	if s.entity == nil {
		return dex.Entity{}, false
	}
	return *s.entity, true
}

func (s *Session) Questions() []Question {
	return append([]Question(nil), s.questions...)
}

func (s *Session) Index() int { return s.index }

// Current returns the question at the current index.
func (s *Session) Current() (Question, bool) {
	if s.entity == nil || len(s.questions) == 0 {
		return Question{}, false
	}
	return s.questions[s.index], true
}

// Submit grades raw against the current question. Every question accepts
// exactly one submission, whatever its verdict.
func (s *Session) Submit(raw string) (Verdict, error) {
	q, ok := s.Current()
	if !ok {
		return Verdict{}, ErrNoQuiz
	}
	if _, done := s.answers[s.index]; done {
		return Verdict{}, fmt.Errorf("%w: question %d", ErrAlreadyAnswered, s.index+1)
	}

	v := Check(raw, q, *s.entity, s.tol)
	s.answers[s.index] = raw
	s.verdicts[s.index] = v
	s.score += v.Points()
	return v, nil
}

// Answer returns what was submitted for question i, if anything.
func (s *Session) Answer(i int) (string, Verdict, bool) {
	raw, ok := s.answers[i]
	if !ok {
		return "", Verdict{}, false
	}
	return raw, s.verdicts[i], true
}

func (s *Session) Answered(i int) bool {
	_, ok := s.answers[i]
	return ok
}

func (s *Session) Prev() Nav {
	if s.index > 0 {
		s.index--
	}
	return s.Nav()
}

func (s *Session) Next() Nav {
	if s.index < len(s.questions)-1 {
		s.index++
	}
	return s.Nav()
}

func (s *Session) Nav() Nav {
	return Nav{
		CanPrev: s.index > 0,
		CanNext: s.index < len(s.questions)-1,
	}
}

// SetUnits switches the display unit system. Height and weight questions
// of a running quiz are reformatted in place; position, submitted answers
// and awarded points are kept as they were.
func (s *Session) SetUnits(sys units.System) {
	s.units = sys
	if s.entity != nil {
		s.questions = Reformat(s.questions, *s.entity, sys)
	}
}

func (s *Session) Units() units.System { return s.units }

func (s *Session) IsComplete() bool { return s.State() == StateComplete }

func (s *Session) Score() float64 { return s.score }

// Total is the number of questions answered so far.
func (s *Session) Total() int { return len(s.answers) }

// Len is the number of questions in the current quiz.
func (s *Session) Len() int { return len(s.questions) }

// Grade returns the final grade once every question is answered.
func (s *Session) Grade() (Grade, bool) {
	if !s.IsComplete() {
		return Grade{}, false
	}
	total := s.Total()
	percent := 0
	if total > 0 {
		percent = int(math.Round(s.score / float64(total) * 100))
	}
	return Grade{
		Score:   s.score,
		Total:   total,
		Percent: percent,
		Passed:  percent >= PassPercent,
	}, true
}
