package api

import (
	"net/http"
	"strconv"

	"github.com/focuslearner/backend/internal/errors"
	"github.com/focuslearner/backend/internal/services"
)

func taxonomyIDParam(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewValidationError("taxonomy_id", "must be a positive integer")
	}
	return id, nil
}

func (s *Server) handleLoopState(w http.ResponseWriter, r *http.Request) {
	taxonomyID, err := taxonomyIDParam(r.URL.Query().Get("taxonomy_id"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	state, err := s.LoopService.GetState(r.Context(), userFromContext(r.Context()), taxonomyID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, state)
}

type advanceRequest struct {
	TaxonomyID int64   `json:"taxonomy_id"`
	Success    bool    `json:"success"`
	Score      float64 `json:"score"`
	Question   string  `json:"question,omitempty"`
	Answer     string  `json:"answer,omitempty"`
}

func (s *Server) handleLoopAdvance(w http.ResponseWriter, r *http.Request) {
	var req advanceRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}
	if req.TaxonomyID <= 0 {
		handleError(w, r, errors.NewValidationError("taxonomy_id", "must be a positive integer"))
		return
	}
	if req.Score < 0 || req.Score > 100 {
		handleError(w, r, errors.NewValidationError("score", "must be between 0 and 100"))
		return
	}

	var attempt *services.AttemptContext
	if req.Question != "" || req.Answer != "" {
		attempt = &services.AttemptContext{
			Question:      req.Question,
			LearnerAnswer: req.Answer,
		}
	}

	result, err := s.LoopService.Advance(r.Context(), userFromContext(r.Context()), req.TaxonomyID, req.Success, req.Score, attempt)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}

type remediationRequest struct {
	TaxonomyID int64 `json:"taxonomy_id"`
}

func (s *Server) handleRemediationComplete(w http.ResponseWriter, r *http.Request) {
	var req remediationRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}
	if req.TaxonomyID <= 0 {
		handleError(w, r, errors.NewValidationError("taxonomy_id", "must be a positive integer"))
		return
	}

	state, moved, err := s.LoopService.CompleteRemediation(r.Context(), userFromContext(r.Context()), req.TaxonomyID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"state": state,
		"moved": moved,
	})
}
