package services

import (
	"context"

	"github.com/focuslearner/backend/internal/db"
	"github.com/focuslearner/backend/internal/errors"
	"github.com/focuslearner/backend/internal/models"
)

// ProgressService reads the XP rollups and the leaderboard.
type ProgressService interface {
	List(ctx context.Context, userID int64) ([]models.GameProgress, error)
	Leaderboard(ctx context.Context, subject string, limit int) ([]models.LeaderboardEntry, error)
}

type progressService struct {
	db *db.DB
}

// NewProgressService creates a new ProgressService.
func NewProgressService(database *db.DB) ProgressService {
	return &progressService{db: database}
}

func (s *progressService) List(ctx context.Context, userID int64) ([]models.GameProgress, error) {
	progress, err := s.db.ListGameProgress(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return progress, nil
}

func (s *progressService) Leaderboard(ctx context.Context, subject string, limit int) ([]models.LeaderboardEntry, error) {
	entries, err := s.db.Leaderboard(ctx, subject, limit)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return entries, nil
}
