package server

import (
	"encoding/json"
	"sync"
)

// Event types published on a session's stream.
const (
	EventStarted  = "started"
	EventAnswered = "answered"
	EventMoved    = "moved"
	EventUnits    = "units"
	EventComplete = "complete"
)

// Event is the payload pushed to a session's SSE subscribers.
type Event struct {
	Type    string  `json:"type"`
	Index   int     `json:"index"`
	Verdict string  `json:"verdict,omitempty"`
	Score   float64 `json:"score"`
	Units   string  `json:"units,omitempty"`
	Percent *int    `json:"percent,omitempty"`
}

// Broker is an in-process pub/sub keyed by session ID.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded events for the
// session.
func (b *Broker) Subscribe(sessionID string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[sessionID] == nil {
		b.subs[sessionID] = make(map[chan []byte]struct{})
	}
	b.subs[sessionID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broker) Unsubscribe(sessionID string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[sessionID], ch)
	if len(b.subs[sessionID]) == 0 {
		delete(b.subs, sessionID)
	}
	b.mu.Unlock()
}

// Publish sends ev to every subscriber of the session. Slow subscribers
// miss events rather than block the quiz.
func (b *Broker) Publish(sessionID string, ev Event) {
	data, _ := json.Marshal(ev)
	b.mu.RLock()
	for ch := range b.subs[sessionID] {
		select {
		case ch <- data:
		default:
		}
	}
	b.mu.RUnlock()
}

// Subscribers reports how many streams are open for the session.
func (b *Broker) Subscribers(sessionID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[sessionID])
}
