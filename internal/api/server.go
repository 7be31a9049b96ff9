package api

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wortflash/wortflash/internal/services"
)

// Server wires the drill service into the HTTP surface. DB may be nil
// when persistence is unavailable; the readiness probe reports that.
type Server struct {
	DrillService services.DrillService
	DB           *sql.DB
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Post("/round", s.handleStartRound)
		r.Get("/round", s.handleRound)
		r.Post("/round/answer", s.handleAnswer)
		r.Post("/round/continue", s.handleContinue)
		r.Get("/stats", s.handleStats)
	})

	return r
}
