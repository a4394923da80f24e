package server

import (
	"github.com/FabledTyromancer/Professorlocke/internal/names"
	"github.com/FabledTyromancer/Professorlocke/internal/quiz"
)

type QuestionView struct {
	Number   int      `json:"number"`
	Kind     string   `json:"kind"`
	Field    string   `json:"field"`
	Prompt   string   `json:"prompt"`
	Notes    []string `json:"notes,omitempty"`
	Answered bool     `json:"answered"`
	Answer   string   `json:"answer,omitempty"`
	Verdict  string   `json:"verdict,omitempty"`
	Feedback string   `json:"feedback,omitempty"`
}

type GradeView struct {
	Score     float64 `json:"score"`
	Total     int     `json:"total"`
	Percent   int     `json:"percent"`
	Passed    bool    `json:"passed"`
	Message   string  `json:"message"`
	SpriteURL string  `json:"spriteUrl,omitempty"`
	Grayscale bool    `json:"grayscale"`
}

// QuizStateResponse is everything a front end needs to draw the quiz.
type QuizStateResponse struct {
	SessionID string        `json:"sessionId"`
	State     string        `json:"state"`
	Pokemon   string        `json:"pokemon,omitempty"`
	Units     string        `json:"units"`
	Index     int           `json:"index"`
	Questions int           `json:"questions"`
	Answered  int           `json:"answered"`
	Score     float64       `json:"score"`
	CanPrev   bool          `json:"canPrev"`
	CanNext   bool          `json:"canNext"`
	Question  *QuestionView `json:"question,omitempty"`
	Grade     *GradeView    `json:"grade,omitempty"`
}

type AnswerResponse struct {
	Verdict  string            `json:"verdict"`
	Points   float64           `json:"points"`
	Feedback string            `json:"feedback"`
	Quiz     QuizStateResponse `json:"quiz"`
}

type CreateSessionResponse struct {
	SessionID string `json:"sessionId"`
	Units     string `json:"units"`
}

type StartQuizRequest struct {
	Pokemon string `json:"pokemon"`
}

type AnswerRequest struct {
	Answer string `json:"answer"`
}

type UnitsRequest struct {
	Metric bool `json:"metric"`
}

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// stateView renders s. The caller holds s.mu.
func stateView(s *quizSession) QuizStateResponse {
	q := s.quiz
	nav := q.Nav()
	resp := QuizStateResponse{
		SessionID: s.id,
		State:     q.State().String(),
		Units:     q.Units().String(),
		Index:     q.Index(),
		Questions: q.Len(),
		Answered:  q.Total(),
		Score:     q.Score(),
		CanPrev:   nav.CanPrev,
		CanNext:   nav.CanNext,
	}

	e, ok := q.Entity()
	if !ok {
		return resp
	}
	resp.Pokemon = names.Display(e.Name)

	if cur, ok := q.Current(); ok {
		view := &QuestionView{
			Number: q.Index() + 1,
			Kind:   string(cur.Kind),
			Field:  string(cur.Field),
			Prompt: cur.Prompt,
			Notes:  cur.Notes,
		}
		if raw, v, ok := q.Answer(q.Index()); ok {
			view.Answered = true
			view.Answer = raw
			view.Verdict = v.String()
			view.Feedback = quiz.Feedback(v, cur)
		}
		resp.Question = view
	}

	if g, ok := q.Grade(); ok {
		resp.Grade = &GradeView{
			Score:     g.Score,
			Total:     g.Total,
			Percent:   g.Percent,
			Passed:    g.Passed,
			Message:   quiz.GradeMessage(g),
			SpriteURL: e.SpriteURL,
			Grayscale: !g.Passed,
		}
	}
	return resp
}
