package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/FabledTyromancer/Professorlocke/internal/quiz"
)

// quizSession is one client's quiz. mu serializes HTTP and WebSocket
// commands against the same session.
type quizSession struct {
	id string

	mu       sync.Mutex
	quiz     *quiz.Session
	recorded bool
	lastSeen time.Time
}

// Registry holds the live sessions.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*quizSession
	now      func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*quizSession),
		now:      time.Now,
	}
}

// Create registers a new session around q and returns it.
func (r *Registry) Create(q *quiz.Session) *quizSession {
	s := &quizSession{
		id:       uuid.NewString(),
		quiz:     q,
		lastSeen: r.now(),
	}
	r.mu.Lock()
	r.sessions[s.id] = s
	r.mu.Unlock()
	return s
}

func (r *Registry) Get(id string) (*quizSession, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if ok {
		s.mu.Lock()
		s.lastSeen = r.now()
		s.mu.Unlock()
	}
	return s, ok
}

func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	return ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Prune drops sessions idle for longer than maxIdle and returns how many
// were removed.
func (r *Registry) Prune(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		s.mu.Lock()
		idle := s.lastSeen.Before(cutoff)
		s.mu.Unlock()
		if idle {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}
