package api

import (
	"net/http"

	"github.com/focuslearner/backend/internal/errors"
)

func (s *Server) handleContentVideos(w http.ResponseWriter, r *http.Request) {
	items, err := s.ContentService.Videos(r.Context(), r.URL.Query().Get("subject"), intQuery(r, "limit", 20))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, items)
}

type refreshRequest struct {
	Subject string `json:"subject"`
}

func (s *Server) handleContentRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	if err := s.ContentService.Refresh(r.Context(), req.Subject); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusAccepted, map[string]string{"status": "queued"})
}
