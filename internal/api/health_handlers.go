package api

import (
	"net/http"

	"github.com/wortflash/wortflash/internal/logger"
)

// handleHealth is a liveness probe - always returns 200 OK while the
// process is running.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleReady is a readiness probe. Statistics persistence is optional,
// so a missing database degrades the answer rather than failing it.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if s.DB == nil {
		log.Debug("readiness check: running without persistence")
		respondJSON(w, r, http.StatusOK, map[string]any{"status": "ok", "persistence": "disabled"})
		return
	}
	if err := s.DB.PingContext(r.Context()); err != nil {
		log.Warn("readiness check failed - database: %v", err)
		respondJSON(w, r, http.StatusServiceUnavailable, map[string]any{"status": "degraded", "persistence": "unavailable"})
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"status": "ok", "persistence": "ok"})
}
