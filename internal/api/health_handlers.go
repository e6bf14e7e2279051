package api

import (
	"net/http"

	"github.com/vytor/theoryflash/internal/logger"
)

// handleHealth is the liveness probe; it answers as long as the process runs.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady is the readiness probe; it fails while the database is unreachable.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if s.DB != nil {
		if err := s.DB.PingContext(r.Context()); err != nil {
			log.Warn("readiness check failed - database: %v", err)
			writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "database unavailable"})
			return
		}
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ready"})
}
