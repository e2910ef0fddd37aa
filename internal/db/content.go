package db

import (
	"context"
	"database/sql"

	"github.com/focuslearner/backend/internal/logger"
	"github.com/focuslearner/backend/internal/models"
)

// UpsertContentItems stores discovered videos, refreshing rows already cached
// for the same source id.
func (db *DB) UpsertContentItems(ctx context.Context, items []models.ContentItem) error {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("upserting %d content items", len(items))

	return tx(ctx, db, func(txn *sql.Tx) error {
		for _, item := range items {
			_, err := txn.ExecContext(ctx, `
INSERT INTO content_items (title, description, source, source_id, url, subject, is_approved, is_filtered, filter_reason)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (source, source_id) DO UPDATE SET
    title = excluded.title,
    description = excluded.description,
    subject = excluded.subject,
    is_approved = excluded.is_approved,
    is_filtered = excluded.is_filtered,
    filter_reason = excluded.filter_reason
`, item.Title, item.Description, item.Source, item.SourceID, item.URL, item.Subject,
				item.IsApproved, item.IsFiltered, item.FilterReason)
			if err != nil {
				log.Error("failed to upsert content item %s: %v", item.SourceID, err)
				return err
			}
		}
		return nil
	})
}

// ListContentItems returns approved cached videos for the subject, newest
// first.
func (db *DB) ListContentItems(ctx context.Context, subject string, limit int) ([]models.ContentItem, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("listing content items: subject=%s", subject)

	if limit <= 0 {
		limit = 20
	}
	rows, err := db.QueryContext(ctx, `
SELECT id, title, description, source, source_id, url, subject, is_approved, is_filtered, filter_reason, created_at
FROM content_items
WHERE subject = ? AND is_approved = 1
ORDER BY created_at DESC, id DESC
LIMIT ?
`, subject, limit)
	if err != nil {
		log.Error("failed to query content items: %v", err)
		return nil, err
	}
	defer rows.Close()

	var items []models.ContentItem
	for rows.Next() {
		var item models.ContentItem
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.Source, &item.SourceID,
			&item.URL, &item.Subject, &item.IsApproved, &item.IsFiltered, &item.FilterReason, &item.CreatedAt); err != nil {
			log.Error("failed to scan content row: %v", err)
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
