package feedsim

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/medalwatch/podium/pkg/logger"
)

// Server holds the growing event list and serves it as the results
// document.
type Server struct {
	mu       sync.Mutex
	events   []Event
	requests int
}

// NewServer creates a server pre-loaded with the given events.
func NewServer(initial []Event) *Server {
	return &Server{events: initial}
}

// Append adds an event to the served document.
func (s *Server) Append(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// EventCount reports how many events the document currently carries.
func (s *Server) EventCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

// RequestCount reports how many document requests have been served.
func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// HandleResults serves the full results document.
func (s *Server) HandleResults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Copy under the lock; rendering and encoding happen outside it.
	s.mu.Lock()
	s.requests++
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(renderDocument(events)); err != nil {
		logger.Get().Error(r.Context(), "failed to encode results document", logger.Error(err))
	}
}

// Register wires the simulator routes into the mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/", s.HandleResults)
}
