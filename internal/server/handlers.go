package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/akshara/internal/models"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var q models.SearchQuery
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	q.Options = models.DefaultRankOptions()
	requestID := uuid.NewString()
	w.Header().Set("X-Request-ID", requestID)
	s.logger.Debug("search request", zap.String("request_id", requestID), zap.String("query", q.Query), zap.Ints("acs", q.ACs))

	response, err := s.engine.Search(r.Context(), &q, nil)
	if err != nil {
		s.logger.Error("search failed", zap.String("request_id", requestID), zap.Error(err))
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if response == nil {
		// Cancellation: return promptly with no result.
		s.respondError(w, http.StatusRequestTimeout, "request cancelled")
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
