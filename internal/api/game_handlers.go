package api

import (
	"net/http"
	"strconv"

	"github.com/focuslearner/backend/internal/errors"
	"github.com/focuslearner/backend/internal/models"
)

type generateRequest struct {
	Subject      string `json:"subject"`
	Topic        string `json:"topic"`
	ActivityType string `json:"activity_type"`
}

func (s *Server) handleGenerateActivity(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	created, err := s.ActivityService.CreateActivity(r.Context(), userFromContext(r.Context()), req.Subject, req.Topic, req.ActivityType)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, created)
}

type submitRequest struct {
	ChallengeID     string `json:"challenge_id"`
	Answer          string `json:"answer"`
	FocusViolations int    `json:"focus_violations"`
}

func (s *Server) handleSubmitActivity(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	resp, err := s.ActivityService.SubmitActivity(r.Context(), userFromContext(r.Context()), req.ChallengeID, req.Answer, req.FocusViolations)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleMastery(w http.ResponseWriter, r *http.Request) {
	subject := r.URL.Query().Get("subject")
	topic := r.URL.Query().Get("topic")
	userID := userFromContext(r.Context())

	// Without a topic the query is a per-subject (or full) listing.
	if topic == "" {
		records, err := s.MasteryService.List(r.Context(), userID, subject)
		if err != nil {
			handleError(w, r, err)
			return
		}
		respondJSON(w, r, http.StatusOK, records)
		return
	}

	record, err := s.MasteryService.Get(r.Context(), userID, subject, topic)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, record)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := s.ProgressService.List(r.Context(), userFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, progress)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := intQuery(r, "limit", 10)
	entries, err := s.ProgressService.Leaderboard(r.Context(), r.URL.Query().Get("subject"), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, entries)
}

func (s *Server) handleActivityHistory(w http.ResponseWriter, r *http.Request) {
	filter := models.ActivityFilter{
		UserID:       userFromContext(r.Context()),
		ActivityType: r.URL.Query().Get("type"),
		ChallengeID:  r.URL.Query().Get("challenge_id"),
		Limit:        intQuery(r, "limit", 50),
		Offset:       intQuery(r, "offset", 0),
	}

	results, err := s.ActivityService.History(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, results)
}

func intQuery(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
