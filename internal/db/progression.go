package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/focuslearner/backend/internal/logger"
	"github.com/focuslearner/backend/internal/models"
)

// GetOrCreateProgressionState returns the loop position for the pair,
// creating the UNDERSTAND/0 row on first touch. The conflict clause makes
// concurrent first touches converge on a single row.
func (db *DB) GetOrCreateProgressionState(ctx context.Context, userID, taxonomyID int64) (*models.ProgressionState, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("getting progression state: user_id=%d, taxonomy_id=%d", userID, taxonomyID)

	_, err := db.ExecContext(ctx, `
INSERT INTO progression_states (user_id, taxonomy_id)
VALUES (?, ?)
ON CONFLICT (user_id, taxonomy_id) DO NOTHING
`, userID, taxonomyID)
	if err != nil {
		log.Error("failed to ensure progression state: %v", err)
		return nil, err
	}
	return db.getProgressionState(ctx, userID, taxonomyID)
}

func (db *DB) getProgressionState(ctx context.Context, userID, taxonomyID int64) (*models.ProgressionState, error) {
	var s models.ProgressionState
	var stage string
	var feedback sql.NullString
	err := db.QueryRowContext(ctx, `
SELECT id, user_id, taxonomy_id, stage, attempts, last_feedback, last_updated
FROM progression_states
WHERE user_id = ? AND taxonomy_id = ?
`, userID, taxonomyID).Scan(&s.ID, &s.UserID, &s.TaxonomyID, &stage, &s.Attempts, &feedback, &s.LastUpdated)
	if err != nil {
		db.log.Error("failed to get progression state: %v", err)
		return nil, err
	}
	s.Stage, err = models.ParseStage(stage)
	if err != nil {
		return nil, fmt.Errorf("progression state %d: %w", s.ID, err)
	}
	if feedback.Valid && feedback.String != "" {
		var fb models.LoopFeedback
		if err := json.Unmarshal([]byte(feedback.String), &fb); err != nil {
			return nil, fmt.Errorf("progression state %d: decode feedback: %w", s.ID, err)
		}
		s.LastFeedback = &fb
	}
	return &s, nil
}

// UpdateProgressionState persists stage, attempts and feedback after a loop
// transition. A nil LastFeedback clears the stored analysis.
func (db *DB) UpdateProgressionState(ctx context.Context, s models.ProgressionState) error {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("updating progression state: id=%d, stage=%s, attempts=%d", s.ID, s.Stage, s.Attempts)

	var feedback any
	if s.LastFeedback != nil {
		raw, err := json.Marshal(s.LastFeedback)
		if err != nil {
			return err
		}
		feedback = string(raw)
	}
	_, err := db.ExecContext(ctx, `
UPDATE progression_states
SET stage = ?, attempts = ?, last_feedback = ?, last_updated = CURRENT_TIMESTAMP
WHERE id = ?
`, string(s.Stage), s.Attempts, feedback, s.ID)
	if err != nil {
		log.Error("failed to update progression state: %v", err)
	}
	return err
}

// ListProgressionStates returns every loop row for the user.
func (db *DB) ListProgressionStates(ctx context.Context, userID int64) ([]models.ProgressionState, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("listing progression states: user_id=%d", userID)

	rows, err := db.QueryContext(ctx, `
SELECT id, user_id, taxonomy_id, stage, attempts, last_feedback, last_updated
FROM progression_states
WHERE user_id = ?
ORDER BY last_updated DESC
`, userID)
	if err != nil {
		log.Error("failed to query progression states: %v", err)
		return nil, err
	}
	defer rows.Close()

	var states []models.ProgressionState
	for rows.Next() {
		var s models.ProgressionState
		var stage string
		var feedback sql.NullString
		if err := rows.Scan(&s.ID, &s.UserID, &s.TaxonomyID, &stage, &s.Attempts, &feedback, &s.LastUpdated); err != nil {
			log.Error("failed to scan progression row: %v", err)
			return nil, err
		}
		s.Stage, err = models.ParseStage(stage)
		if err != nil {
			return nil, err
		}
		if feedback.Valid && feedback.String != "" {
			var fb models.LoopFeedback
			if err := json.Unmarshal([]byte(feedback.String), &fb); err != nil {
				return nil, err
			}
			s.LastFeedback = &fb
		}
		states = append(states, s)
	}
	return states, rows.Err()
}
