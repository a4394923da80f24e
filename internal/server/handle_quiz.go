package server

import (
	"net/http"
	"strconv"
)

func (a *API) writeActionError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	if status == http.StatusInternalServerError {
		a.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	writeError(w, status, msg)
}

func (a *API) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	s, err := a.createSession(r.Context())
	if err != nil {
		a.writeActionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, CreateSessionResponse{
		SessionID: s.id,
		Units:     a.state(s).Units,
	})
}

func (a *API) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r)
	a.sessions.Delete(s.id)
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleQuizState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.state(sessionFrom(r)))
}

func (a *API) handleStartQuiz(w http.ResponseWriter, r *http.Request) {
	var req StartQuizRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := a.start(sessionFrom(r), req.Pokemon)
	if err != nil {
		a.writeActionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := a.answer(r.Context(), sessionFrom(r), req.Answer)
	if err != nil {
		a.writeActionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) handleMove(step int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, a.move(sessionFrom(r), step))
	}
}

func (a *API) handleUnits(w http.ResponseWriter, r *http.Request) {
	var req UnitsRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := a.setUnits(r.Context(), sessionFrom(r), req.Metric)
	if err != nil {
		a.writeActionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

const (
	defaultResultsLimit = 20
	maxResultsLimit     = 100
)

func (a *API) handleResults(w http.ResponseWriter, r *http.Request) {
	limit := defaultResultsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxResultsLimit)
	}

	results, err := a.store.ListResults(r.Context(), limit)
	if err != nil {
		a.writeActionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}
