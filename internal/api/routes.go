package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/api/health", s.handleLiveness)

	r.Group(func(r chi.Router) {
		r.Use(userMiddleware)

		r.Get("/api/loop/state", s.handleLoopState)
		r.Post("/api/loop/advance", s.handleLoopAdvance)
		r.Post("/api/loop/remediation/complete", s.handleRemediationComplete)

		r.Post("/api/game/activity/generate", s.handleGenerateActivity)
		r.Post("/api/game/activity/submit", s.handleSubmitActivity)
		r.Get("/api/game/activity/history", s.handleActivityHistory)
		r.Get("/api/game/mastery", s.handleMastery)
		r.Get("/api/game/progress", s.handleProgress)
		r.Get("/api/game/leaderboard", s.handleLeaderboard)

		r.Get("/api/analytics/health", s.handleHealthSummary)

		r.Get("/api/taxonomy", s.handleTaxonomyList)
		r.Get("/api/taxonomy/{id}", s.handleTaxonomyGet)

		r.Get("/api/content/videos", s.handleContentVideos)
		r.Post("/api/content/refresh", s.handleContentRefresh)
	})

	return r
}
