/* handlers.go
 * Contains the HTTP handlers for the scoring API. Every handler delegates to api.API and maps its errors to status
 * codes in respondAPIError.
 */

package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"livescore/api/api"
	"livescore/api/rules"
	"livescore/api/shared"
	"livescore/api/store"
	"livescore/logging"

	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

// HealthCheck reports that the server is up
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "livescore",
	})
}

// GetSports lists the sports that can be scored
func (s *Server) GetSports(w http.ResponseWriter, r *http.Request) {
	sports := s.api.Sports()
	resp := sportsResponse{Sports: make([]string, len(sports))}
	for i, sport := range sports {
		resp.Sports[i] = string(sport)
	}
	respondJSON(w, http.StatusOK, resp)
}

// CreateMatch creates a match from a shared.Match body and returns its first view
func (s *Server) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var match shared.Match
	if err := decodeBody(w, r, &match); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	sport, err := shared.ParseSport(string(match.Sport))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	match.Sport = sport

	view, err := s.api.CreateMatch(r.Context(), match)
	if err != nil {
		s.respondAPIError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, view)
}

// GetMatch returns the current view of a match
func (s *Server) GetMatch(w http.ResponseWriter, r *http.Request) {
	view, err := s.api.Snapshot(r.Context(), chi.URLParam(r, "matchID"))
	if err != nil {
		s.respondAPIError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// DeleteMatch removes a match and its records
func (s *Server) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	if err := s.api.DeleteMatch(r.Context(), chi.URLParam(r, "matchID")); err != nil {
		s.respondAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ApplyAction applies a shared.Action body to a match. No-op actions still answer 200 with changed=false.
func (s *Server) ApplyAction(w http.ResponseWriter, r *http.Request) {
	var action shared.Action
	if err := decodeBody(w, r, &action); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if action.Type == "" {
		respondError(w, http.StatusBadRequest, "action type is required")
		return
	}

	view, err := s.api.Apply(r.Context(), chi.URLParam(r, "matchID"), action)
	if err != nil {
		s.respondAPIError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// Undo reverts the last change of a match
func (s *Server) Undo(w http.ResponseWriter, r *http.Request) {
	view, err := s.api.Undo(r.Context(), chi.URLParam(r, "matchID"))
	if err != nil {
		s.respondAPIError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// GetResult returns the archived result of a completed match
func (s *Server) GetResult(w http.ResponseWriter, r *http.Request) {
	result, err := s.api.Result(r.Context(), chi.URLParam(r, "matchID"))
	if err != nil {
		s.respondAPIError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// statusFor maps api errors onto HTTP status codes
func statusFor(err error) int {
	var notFound *store.MatchNotFoundError
	var unsupported *rules.UnsupportedSportError
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &unsupported), errors.Is(err, api.ErrInvalidMatch):
		return http.StatusBadRequest
	case errors.Is(err, api.ErrResultNotReady):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (s *Server) respondAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logging.Error(s.logger, "request failed", err,
			logging.FieldPath, r.URL.Path,
			logging.FieldMatchID, chi.URLParam(r, "matchID"),
		)
		respondError(w, status, "internal error")
		return
	}
	respondError(w, status, err.Error())
}

func decodeBody(w http.ResponseWriter, r *http.Request, out interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}
