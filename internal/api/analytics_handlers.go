package api

import "net/http"

func (s *Server) handleHealthSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.HealthService.Summary(r.Context(), userFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, summary)
}
