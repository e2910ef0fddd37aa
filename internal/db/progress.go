package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/focuslearner/backend/internal/logger"
	"github.com/focuslearner/backend/internal/models"
)

// GetGameProgress returns the XP rollup for the (user, subject) pair, or nil
// when the user has not earned XP in the subject yet.
func (db *DB) GetGameProgress(ctx context.Context, userID int64, subject string) (*models.GameProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("getting game progress: user_id=%d, subject=%s", userID, subject)

	var p models.GameProgress
	err := db.QueryRowContext(ctx, `
SELECT id, user_id, subject, total_xp, level, completed_at, created_at
FROM game_progress
WHERE user_id = ? AND subject = ?
`, userID, subject).Scan(&p.ID, &p.UserID, &p.Subject, &p.TotalXP, &p.Level, &p.CompletedAt, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get game progress: %v", err)
		return nil, err
	}
	return &p, nil
}

// ListGameProgress returns every subject rollup for the user.
func (db *DB) ListGameProgress(ctx context.Context, userID int64) ([]models.GameProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("listing game progress: user_id=%d", userID)

	rows, err := db.QueryContext(ctx, `
SELECT id, user_id, subject, total_xp, level, completed_at, created_at
FROM game_progress
WHERE user_id = ?
ORDER BY total_xp DESC
`, userID)
	if err != nil {
		log.Error("failed to query game progress: %v", err)
		return nil, err
	}
	defer rows.Close()

	var progress []models.GameProgress
	for rows.Next() {
		var p models.GameProgress
		if err := rows.Scan(&p.ID, &p.UserID, &p.Subject, &p.TotalXP, &p.Level, &p.CompletedAt, &p.CreatedAt); err != nil {
			log.Error("failed to scan progress row: %v", err)
			return nil, err
		}
		progress = append(progress, p)
	}
	return progress, rows.Err()
}

// Leaderboard ranks users by XP, optionally within one subject. When subject
// is empty the per-subject rollups are summed per user.
func (db *DB) Leaderboard(ctx context.Context, subject string, limit int) ([]models.LeaderboardEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("building leaderboard: subject=%s, limit=%d", subject, limit)

	if limit <= 0 {
		limit = 10
	}

	query := sqlBuilder.Select().From("game_progress")
	if subject != "" {
		query = query.
			Columns("user_id", "subject", "total_xp", "level").
			Where(squirrel.Eq{"subject": subject}).
			OrderBy("total_xp DESC", "user_id")
	} else {
		query = query.
			Columns("user_id", "'' AS subject", "SUM(total_xp) AS total_xp", "MAX(level) AS level").
			GroupBy("user_id").
			OrderBy("total_xp DESC", "user_id")
	}
	query = query.Limit(uint64(limit))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build leaderboard query: %v", err)
		return nil, err
	}

	rows, err := db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query leaderboard: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Subject, &e.TotalXP, &e.Level); err != nil {
			log.Error("failed to scan leaderboard row: %v", err)
			return nil, err
		}
		entries = append(entries, e)
	}
	log.Debug("leaderboard has %d entries", len(entries))
	return entries, rows.Err()
}
