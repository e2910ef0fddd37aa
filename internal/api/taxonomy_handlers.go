package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/focuslearner/backend/internal/errors"
)

func (s *Server) handleTaxonomyList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.TaxonomyService.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, entries)
}

func (s *Server) handleTaxonomyGet(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		handleError(w, r, errors.NewValidationError("id", "must be a positive integer"))
		return
	}

	entry, err := s.TaxonomyService.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, entry)
}
