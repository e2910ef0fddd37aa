package services

import (
	"context"
	"time"

	"github.com/focuslearner/backend/internal/db"
	"github.com/focuslearner/backend/internal/errors"
	"github.com/focuslearner/backend/internal/health"
	"github.com/focuslearner/backend/internal/logger"
	"github.com/focuslearner/backend/internal/models"
)

// recentWindow is the consistency lookback.
const recentWindow = 7 * 24 * time.Hour

// violationSample is how many recent attempts feed the focus score.
const violationSample = 50

// HealthService aggregates per-user signals into the learning health summary.
type HealthService interface {
	Summary(ctx context.Context, userID int64) (*models.HealthSummary, error)
}

type healthService struct {
	db *db.DB
}

// NewHealthService creates a new HealthService.
func NewHealthService(database *db.DB) HealthService {
	return &healthService{db: database}
}

func (s *healthService) Summary(ctx context.Context, userID int64) (*models.HealthSummary, error) {
	log := logger.FromContext(ctx)
	log.Debug("computing health summary: user_id=%d", userID)

	attempts, err := s.db.CountActivitiesSince(ctx, userID, time.Now().Add(-recentWindow))
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	violations, err := s.db.RecentFocusViolations(ctx, userID, violationSample)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	states, err := s.db.ListProgressionStates(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	records, err := s.db.ListProficiencies(ctx, userID, "")
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	scores := make([]float64, 0, len(records))
	for _, r := range records {
		scores = append(scores, r.Proficiency)
	}

	summary := health.Compute(health.Inputs{
		RecentAttempts:    attempts,
		RecentViolations:  violations,
		LoopStates:        states,
		ProficiencyScores: scores,
	})

	log.Debug("health computed: overall=%.1f", summary.OverallHealth)
	return &summary, nil
}
