package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/FabledTyromancer/Professorlocke/internal/quiz"
)

// API serves the quiz over HTTP, SSE and WebSocket.
type API struct {
	logger   *slog.Logger
	catalog  Catalog
	store    Store
	sessions *Registry
	broker   *Broker
	tol      quiz.Tolerance
	newRand  func() quiz.Randomizer
	origins  []string
	wsHosts  []string
}

type Option func(*API)

func WithTolerance(t quiz.Tolerance) Option { return func(a *API) { a.tol = t } }

// WithAllowedOrigins enables CORS for a front end served from another origin.
func WithAllowedOrigins(origins []string) Option { return func(a *API) { a.origins = origins } }

// WithRandomizer sets the random source factory used for new sessions.
func WithRandomizer(f func() quiz.Randomizer) Option { return func(a *API) { a.newRand = f } }

func NewAPI(logger *slog.Logger, catalog Catalog, store Store, opts ...Option) *API {
	a := &API{
		logger:   logger,
		catalog:  catalog,
		store:    store,
		sessions: NewRegistry(),
		broker:   NewBroker(),
		tol:      quiz.DefaultTolerance(),
		newRand:  quiz.NewRandomizer,
	}
	for _, o := range opts {
		o(a)
	}
	a.wsHosts = originHosts(a.origins)
	return a
}

func (a *API) Routes() chi.Router {
	r := chi.NewRouter()
	if len(a.origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: a.origins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
			ExposedHeaders: []string{"Content-Length"},
			MaxAge:         300,
		}))
	}

	r.Post("/sessions", a.handleCreateSession)
	r.Route("/sessions/{sessionID}", func(r chi.Router) {
		r.Use(a.sessionMiddleware)
		r.Delete("/", a.handleDeleteSession)
		r.Get("/quiz", a.handleQuizState)
		r.Post("/quiz", a.handleStartQuiz)
		r.Post("/quiz/answer", a.handleAnswer)
		r.Post("/quiz/prev", a.handleMove(-1))
		r.Post("/quiz/next", a.handleMove(1))
		r.Put("/units", a.handleUnits)
		r.Get("/events", a.handleEvents)
		r.Get("/ws", a.handleWS)
	})
	r.Get("/results", a.handleResults)

	return r
}

// PruneLoop drops idle sessions every interval until ctx is done.
func (a *API) PruneLoop(ctx context.Context, interval, maxIdle time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if n := a.sessions.Prune(maxIdle); n > 0 {
				a.logger.Info("pruned idle sessions", "removed", n, "remaining", a.sessions.Len())
			}
		}
	}
}

type ctxKey int

const ctxKeySession ctxKey = iota

func (a *API) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := a.sessions.Get(chi.URLParam(r, "sessionID"))
		if !ok {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		ctx := context.WithValue(r.Context(), ctxKeySession, s)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFrom(r *http.Request) *quizSession {
	return r.Context().Value(ctxKeySession).(*quizSession)
}
