package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/focuslearner/backend/internal/logger"
	"github.com/focuslearner/backend/internal/models"
)

func scanTaxonomyEntry(row interface{ Scan(...any) error }) (*models.TaxonomyEntry, error) {
	var e models.TaxonomyEntry
	var outcomes string
	if err := row.Scan(&e.ID, &e.Subject, &e.Topic, &e.SubTopic, &e.Difficulty, &outcomes, &e.CreatedAt); err != nil {
		return nil, err
	}
	if outcomes != "" {
		if err := json.Unmarshal([]byte(outcomes), &e.RequiredOutcomes); err != nil {
			return nil, err
		}
	}
	return &e, nil
}

func (db *DB) ListTaxonomy(ctx context.Context) ([]models.TaxonomyEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("listing taxonomy entries")

	rows, err := db.QueryContext(ctx, `
SELECT id, subject, topic, sub_topic, difficulty, required_outcomes, created_at
FROM taxonomy_entries
ORDER BY subject, topic
`)
	if err != nil {
		log.Error("failed to query taxonomy: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []models.TaxonomyEntry
	for rows.Next() {
		e, err := scanTaxonomyEntry(rows)
		if err != nil {
			log.Error("failed to scan taxonomy row: %v", err)
			return nil, err
		}
		entries = append(entries, *e)
	}
	log.Debug("found %d taxonomy entries", len(entries))
	return entries, rows.Err()
}

func (db *DB) GetTaxonomyEntry(ctx context.Context, id int64) (*models.TaxonomyEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("getting taxonomy entry: id=%d", id)

	e, err := scanTaxonomyEntry(db.QueryRowContext(ctx, `
SELECT id, subject, topic, sub_topic, difficulty, required_outcomes, created_at
FROM taxonomy_entries
WHERE id = ?
`, id))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("taxonomy entry not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get taxonomy entry: %v", err)
		return nil, err
	}
	return e, nil
}

func (db *DB) FindTaxonomyEntry(ctx context.Context, subject, topic string) (*models.TaxonomyEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("finding taxonomy entry: subject=%s, topic=%s", subject, topic)

	e, err := scanTaxonomyEntry(db.QueryRowContext(ctx, `
SELECT id, subject, topic, sub_topic, difficulty, required_outcomes, created_at
FROM taxonomy_entries
WHERE subject = ? AND topic = ?
`, subject, topic))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to find taxonomy entry: %v", err)
		return nil, err
	}
	return e, nil
}

func (db *DB) InsertTaxonomyEntry(ctx context.Context, e models.TaxonomyEntry) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("inserting taxonomy entry: subject=%s, topic=%s", e.Subject, e.Topic)

	outcomes, err := json.Marshal(e.RequiredOutcomes)
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, `
INSERT INTO taxonomy_entries (subject, topic, sub_topic, difficulty, required_outcomes)
VALUES (?, ?, ?, ?, ?)
`, e.Subject, e.Topic, e.SubTopic, e.Difficulty, string(outcomes))
	if err != nil {
		log.Error("failed to insert taxonomy entry: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}
