package services

import (
	"context"

	"github.com/focuslearner/backend/internal/db"
	"github.com/focuslearner/backend/internal/errors"
	"github.com/focuslearner/backend/internal/logger"
	"github.com/focuslearner/backend/internal/models"
)

// MasteryService reads the proficiency tracker.
type MasteryService interface {
	Get(ctx context.Context, userID int64, subject, topic string) (*models.ProficiencyRecord, error)
	List(ctx context.Context, userID int64, subject string) ([]models.ProficiencyRecord, error)
}

type masteryService struct {
	db *db.DB
}

// NewMasteryService creates a new MasteryService.
func NewMasteryService(database *db.DB) MasteryService {
	return &masteryService{db: database}
}

// Get returns the record for the triple, or a NOT_STARTED zero record when
// the user has never attempted the topic.
func (s *masteryService) Get(ctx context.Context, userID int64, subject, topic string) (*models.ProficiencyRecord, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting mastery: user_id=%d, subject=%s, topic=%s", userID, subject, topic)

	if subject == "" {
		return nil, errors.NewValidationError("subject", "must not be empty")
	}
	if topic == "" {
		return nil, errors.NewValidationError("topic", "must not be empty")
	}

	record, err := s.db.GetProficiency(ctx, userID, subject, topic)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if record == nil {
		return &models.ProficiencyRecord{
			UserID:  userID,
			Subject: subject,
			Topic:   topic,
			State:   models.MasteryNotStarted,
		}, nil
	}
	return record, nil
}

func (s *masteryService) List(ctx context.Context, userID int64, subject string) ([]models.ProficiencyRecord, error) {
	records, err := s.db.ListProficiencies(ctx, userID, subject)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return records, nil
}
