package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/FabledTyromancer/Professorlocke/internal/store"
)

// HealthResponse documents the /healthz body: one status per dependency.
type HealthResponse map[string]struct {
	Status string `json:"status"`
}

type sessionPath struct {
	SessionID string `path:"sessionID" format:"uuid"`
}

type startQuizInput struct {
	SessionID string `path:"sessionID" format:"uuid"`
	Pokemon   string `json:"pokemon"`
}

type answerInput struct {
	SessionID string `path:"sessionID" format:"uuid"`
	Answer    string `json:"answer"`
}

type unitsInput struct {
	SessionID string `path:"sessionID" format:"uuid"`
	Metric    bool   `json:"metric"`
}

type resultsQuery struct {
	Limit int `query:"limit" minimum:"1" maximum:"100"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Professorlocke API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Pokédex quiz: start a quiz for a Pokémon, answer its questions and get graded.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Reports the database, the Pokédex cache and, when configured, Redis.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /api/sessions
	createSession, _ := r.NewOperationContext(http.MethodPost, "/api/sessions")
	createSession.SetSummary("Create session")
	createSession.SetDescription("Creates a quiz session using the saved unit preference.")
	createSession.AddRespStructure(CreateSessionResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	createSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(createSession)

	// DELETE /api/sessions/{sessionID}
	deleteSession, _ := r.NewOperationContext(http.MethodDelete, "/api/sessions/{sessionID}")
	deleteSession.SetSummary("End session")
	deleteSession.AddReqStructure(sessionPath{})
	deleteSession.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	deleteSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(deleteSession)

	// GET /api/sessions/{sessionID}/quiz
	getQuiz, _ := r.NewOperationContext(http.MethodGet, "/api/sessions/{sessionID}/quiz")
	getQuiz.SetSummary("Quiz state")
	getQuiz.SetDescription("Returns the current question, navigation, score and, once complete, the grade.")
	getQuiz.AddReqStructure(sessionPath{})
	getQuiz.AddRespStructure(QuizStateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getQuiz.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getQuiz)

	// POST /api/sessions/{sessionID}/quiz
	startQuiz, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{sessionID}/quiz")
	startQuiz.SetSummary("Start quiz")
	startQuiz.SetDescription("Starts a new quiz for the named Pokémon, discarding any quiz in progress.")
	startQuiz.AddReqStructure(startQuizInput{})
	startQuiz.AddRespStructure(QuizStateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	startQuiz.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	startQuiz.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(startQuiz)

	// POST /api/sessions/{sessionID}/quiz/answer
	postAnswer, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{sessionID}/quiz/answer")
	postAnswer.SetSummary("Submit answer")
	postAnswer.SetDescription("Grades an answer to the current question. Each question accepts one answer.")
	postAnswer.AddReqStructure(answerInput{})
	postAnswer.AddRespStructure(AnswerResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postAnswer)

	for _, nav := range []struct{ path, summary string }{
		{"/api/sessions/{sessionID}/quiz/prev", "Previous question"},
		{"/api/sessions/{sessionID}/quiz/next", "Next question"},
	} {
		op, _ := r.NewOperationContext(http.MethodPost, nav.path)
		op.SetSummary(nav.summary)
		op.SetDescription("Moves within the quiz. Stays put at either end.")
		op.AddReqStructure(sessionPath{})
		op.AddRespStructure(QuizStateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
		_ = r.AddOperation(op)
	}

	// PUT /api/sessions/{sessionID}/units
	putUnits, _ := r.NewOperationContext(http.MethodPut, "/api/sessions/{sessionID}/units")
	putUnits.SetSummary("Set units")
	putUnits.SetDescription("Switches height and weight between metric and imperial and saves the preference.")
	putUnits.AddReqStructure(unitsInput{})
	putUnits.AddRespStructure(QuizStateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(putUnits)

	// GET /api/sessions/{sessionID}/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/sessions/{sessionID}/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events for the session: started, answered, moved, units, complete.")
	getEvents.AddReqStructure(sessionPath{})
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// GET /api/sessions/{sessionID}/ws
	getWS, _ := r.NewOperationContext(http.MethodGet, "/api/sessions/{sessionID}/ws")
	getWS.SetSummary("WebSocket quiz channel")
	getWS.SetDescription("JSON commands (state, start, answer, prev, next, units), one reply per command.")
	getWS.AddReqStructure(sessionPath{})
	getWS.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getWS)

	// GET /api/results
	getResults, _ := r.NewOperationContext(http.MethodGet, "/api/results")
	getResults.SetSummary("Recent results")
	getResults.SetDescription("Finished quizzes, newest first.")
	getResults.AddReqStructure(resultsQuery{})
	getResults.AddRespStructure([]store.Result{}, openapi.WithHTTPStatus(http.StatusOK))
	getResults.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(getResults)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
