package api

import (
	"net/http"

	"github.com/wortflash/wortflash/internal/logger"
)

type startRoundRequest struct {
	Target int `json:"target"`
}

type answerRequest struct {
	Option string `json:"option"`
}

func (s *Server) handleStartRound(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req startRoundRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	snap, err := s.DrillService.StartRound(r.Context(), req.Target)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("round %s started with target %d", snap.RoundID, snap.Target)
	respondJSON(w, r, http.StatusCreated, snap)
}

func (s *Server) handleRound(w http.ResponseWriter, r *http.Request) {
	snap, err := s.DrillService.Snapshot(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, snap)
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	outcome, err := s.DrillService.Answer(r.Context(), req.Option)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if outcome == nil {
		// Submission ignored while a previous one was in flight.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, r, http.StatusOK, outcome)
}

func (s *Server) handleContinue(w http.ResponseWriter, r *http.Request) {
	snap, err := s.DrillService.Continue(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, snap)
}
