package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/focuslearner/backend/internal/logger"
	"github.com/focuslearner/backend/internal/models"
)

// GetProficiency returns the record for the (user, subject, topic) triple, or
// nil when the user has never attempted the topic.
func (db *DB) GetProficiency(ctx context.Context, userID int64, subject, topic string) (*models.ProficiencyRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("getting proficiency: user_id=%d, subject=%s, topic=%s", userID, subject, topic)

	r, err := scanProficiency(db.QueryRowContext(ctx, `
SELECT id, user_id, subject, topic, state, proficiency, total_attempts, success_rate, last_activity_at
FROM proficiency_records
WHERE user_id = ? AND subject = ? AND topic = ?
`, userID, subject, topic))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get proficiency: %v", err)
		return nil, err
	}
	return r, nil
}

// ListProficiencies returns every proficiency record for the user, optionally
// restricted to one subject.
func (db *DB) ListProficiencies(ctx context.Context, userID int64, subject string) ([]models.ProficiencyRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("listing proficiencies: user_id=%d, subject=%s", userID, subject)

	query := sqlBuilder.Select(
		"id", "user_id", "subject", "topic", "state", "proficiency",
		"total_attempts", "success_rate", "last_activity_at",
	).From("proficiency_records").Where(squirrel.Eq{"user_id": userID})
	if subject != "" {
		query = query.Where(squirrel.Eq{"subject": subject})
	}
	query = query.OrderBy("subject", "topic")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query proficiencies: %v", err)
		return nil, err
	}
	defer rows.Close()

	var records []models.ProficiencyRecord
	for rows.Next() {
		r, err := scanProficiency(rows)
		if err != nil {
			log.Error("failed to scan proficiency row: %v", err)
			return nil, err
		}
		records = append(records, *r)
	}
	return records, rows.Err()
}

func scanProficiency(row interface{ Scan(...any) error }) (*models.ProficiencyRecord, error) {
	var r models.ProficiencyRecord
	var state string
	if err := row.Scan(&r.ID, &r.UserID, &r.Subject, &r.Topic, &state, &r.Proficiency,
		&r.TotalAttempts, &r.SuccessRate, &r.LastActivityAt); err != nil {
		return nil, err
	}
	var err error
	r.State, err = models.ParseMasteryState(state)
	if err != nil {
		return nil, fmt.Errorf("proficiency record %d: %w", r.ID, err)
	}
	return &r, nil
}
