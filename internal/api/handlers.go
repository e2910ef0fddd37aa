package api

import (
	"encoding/json"
	"net/http"

	"github.com/focuslearner/backend/internal/logger"
	"github.com/focuslearner/backend/internal/services"
)

// Server holds the service interfaces behind the HTTP surface.
type Server struct {
	LoopService     services.LoopService
	ActivityService services.ActivityService
	MasteryService  services.MasteryService
	HealthService   services.HealthService
	TaxonomyService services.TaxonomyService
	ProgressService services.ProgressService
	ContentService  services.ContentService
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
