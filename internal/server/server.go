// Package server exposes the record services over HTTP.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/raphaelgruber/wellkeep/internal/metrics"
	"github.com/raphaelgruber/wellkeep/internal/models"
	"github.com/raphaelgruber/wellkeep/internal/service"
)

// Config holds the HTTP surface configuration.
type Config struct {
	// BasePath prefixes every route, e.g. "/api/v1".
	BasePath string
	// AuthToken is the bearer token required on every route except health.
	AuthToken string
}

// Server routes HTTP requests to the record services.
type Server struct {
	cfg       Config
	moods     *service.Moods
	reminders *service.Reminders
	memories  *service.Memories
	metrics   *metrics.Collector
	logger    *slog.Logger
	handler   http.Handler
}

// New creates the server and builds its routes. The collector is optional.
func New(
	cfg Config,
	moods *service.Moods,
	reminders *service.Reminders,
	memories *service.Memories,
	collector *metrics.Collector,
	logger *slog.Logger,
) *Server {
	cfg.BasePath = strings.TrimSuffix(cfg.BasePath, "/")

	s := &Server{
		cfg:       cfg,
		moods:     moods,
		reminders: reminders,
		memories:  memories,
		metrics:   collector,
		logger:    logger,
	}

	mux := http.NewServeMux()
	base := cfg.BasePath

	mux.HandleFunc("GET "+base+"/health", s.handleHealth)

	mux.Handle("POST "+base+"/moods", s.auth(s.handleCreateMood))
	mux.Handle("GET "+base+"/moods", s.auth(s.handleListMoods))

	mux.Handle("POST "+base+"/reminders", s.auth(s.handleCreateReminder))
	mux.Handle("GET "+base+"/reminders", s.auth(s.handleListReminders))
	mux.Handle("PUT "+base+"/reminders/{id}", s.auth(s.handleUpdateReminder))
	mux.Handle("DELETE "+base+"/reminders/{id}", s.auth(s.handleDeleteReminder))

	mux.Handle("POST "+base+"/memories", s.auth(s.handleCreateMemory))
	mux.Handle("GET "+base+"/memories", s.auth(s.handleListMemories))
	mux.Handle("DELETE "+base+"/memories/{id}", s.auth(s.handleDeleteMemory))

	mux.Handle("GET "+base+"/stats", s.auth(s.handleStats))

	s.handler = s.logging(mux)
	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.ok(w, map[string]any{"status": "ok"})
}

func (s *Server) handleCreateMood(w http.ResponseWriter, r *http.Request) {
	var input models.Mood
	if !s.decode(w, r, &input) {
		return
	}
	key, err := s.moods.Create(r.Context(), input)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, map[string]any{"moodId": key})
}

func (s *Server) handleListMoods(w http.ResponseWriter, r *http.Request) {
	moods, err := s.moods.List(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, map[string]any{"moods": moods})
}

func (s *Server) handleCreateReminder(w http.ResponseWriter, r *http.Request) {
	var input models.ReminderInput
	if !s.decode(w, r, &input) {
		return
	}
	key, err := s.reminders.Create(r.Context(), input)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, map[string]any{"reminderId": key})
}

func (s *Server) handleListReminders(w http.ResponseWriter, r *http.Request) {
	reminders, err := s.reminders.List(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, map[string]any{"reminders": reminders})
}

func (s *Server) handleUpdateReminder(w http.ResponseWriter, r *http.Request) {
	var patch map[string]any
	if !s.decode(w, r, &patch) {
		return
	}
	if err := s.reminders.Update(r.Context(), r.PathValue("id"), patch); err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, nil)
}

func (s *Server) handleDeleteReminder(w http.ResponseWriter, r *http.Request) {
	if err := s.reminders.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, nil)
}

func (s *Server) handleCreateMemory(w http.ResponseWriter, r *http.Request) {
	var input models.MemoryInput
	if !s.decode(w, r, &input) {
		return
	}
	key, err := s.memories.Create(r.Context(), input)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, map[string]any{"memoryId": key})
}

func (s *Server) handleListMemories(w http.ResponseWriter, r *http.Request) {
	memories, err := s.memories.List(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, map[string]any{"memories": memories})
}

func (s *Server) handleDeleteMemory(w http.ResponseWriter, r *http.Request) {
	if err := s.memories.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.fail(w, err)
		return
	}
	s.ok(w, nil)
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	if s.metrics == nil {
		s.ok(w, map[string]any{"stats": metrics.Snapshot{}})
		return
	}
	s.ok(w, map[string]any{"stats": s.metrics.Snapshot()})
}

// decode reads the request body into dst, responding with a validation
// failure on malformed JSON.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.failStatus(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
