package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/focuslearner/backend/internal/logger"
	"github.com/focuslearner/backend/internal/models"
)

func (db *DB) InsertChallenge(ctx context.Context, c models.Challenge) error {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("inserting challenge: id=%s, type=%s, topic=%s", c.ID, c.ActivityType, c.Topic)

	_, err := db.ExecContext(ctx, `
INSERT INTO challenges (id, user_id, subject, topic, activity_type, taxonomy_id, payload, secret)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, c.ID, c.UserID, c.Subject, c.Topic, c.ActivityType, c.TaxonomyID, c.Payload, c.Secret)
	if err != nil {
		log.Error("failed to insert challenge: %v", err)
	}
	return err
}

func (db *DB) GetChallenge(ctx context.Context, id string) (*models.Challenge, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("getting challenge: id=%s", id)

	var c models.Challenge
	err := db.QueryRowContext(ctx, `
SELECT id, user_id, subject, topic, activity_type, taxonomy_id, payload, secret, created_at
FROM challenges
WHERE id = ?
`, id).Scan(&c.ID, &c.UserID, &c.Subject, &c.Topic, &c.ActivityType, &c.TaxonomyID, &c.Payload, &c.Secret, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("challenge not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get challenge: %v", err)
		return nil, err
	}
	return &c, nil
}
