package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/raphaelgruber/wellkeep/internal/service"
)

// ok writes the success envelope, merging extra payload fields into it.
func (s *Server) ok(w http.ResponseWriter, extra map[string]any) {
	body := map[string]any{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	s.write(w, http.StatusOK, body)
}

// fail maps a service error to its HTTP status and writes the error envelope.
// Internal failure details are logged, not exposed.
func (s *Server) fail(w http.ResponseWriter, err error) {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		s.failStatus(w, http.StatusBadRequest, vErr.Message)
		return
	}
	if errors.Is(err, service.ErrNotFound) {
		s.failStatus(w, http.StatusNotFound, "not found")
		return
	}

	var uErr *service.UploadError
	if errors.As(err, &uErr) {
		s.logger.Error("photo upload failed", "error", err)
		s.failStatus(w, http.StatusInternalServerError, "photo upload failed")
		return
	}

	var sErr *service.StorageError
	if errors.As(err, &sErr) {
		s.logger.Error("storage failure", "error", err)
		s.failStatus(w, http.StatusInternalServerError, sErr.Error())
		return
	}

	s.logger.Error("request failed", "error", err)
	s.failStatus(w, http.StatusInternalServerError, "internal error")
}

func (s *Server) failStatus(w http.ResponseWriter, status int, message string) {
	s.write(w, status, map[string]any{"success": false, "error": message})
}

func (s *Server) write(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("writing response failed", "error", err)
	}
}
