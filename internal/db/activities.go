package db

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/focuslearner/backend/internal/logger"
	"github.com/focuslearner/backend/internal/models"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// ListActivityResults returns the attempt history matching the filter, newest
// first.
func (db *DB) ListActivityResults(ctx context.Context, filter models.ActivityFilter) ([]models.ActivityResult, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("listing activity results: user_id=%d, type=%s, challenge_id=%s",
		filter.UserID, filter.ActivityType, filter.ChallengeID)

	query := sqlBuilder.Select(
		"id", "user_id", "challenge_id", "activity_type", "user_answer",
		"is_correct", "score", "xp_earned", "feedback", "focus_violations", "created_at",
	).From("activity_results")

	if filter.UserID != 0 {
		query = query.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.ChallengeID != "" {
		query = query.Where(squirrel.Eq{"challenge_id": filter.ChallengeID})
	}
	if filter.ActivityType != "" {
		query = query.Where(squirrel.Eq{"activity_type": filter.ActivityType})
	}
	if filter.Since != nil {
		query = query.Where(squirrel.GtOrEq{"created_at": filter.Since.UTC()})
	}

	query = query.OrderBy("created_at DESC", "id DESC")
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build activity query: %v", err)
		return nil, err
	}

	rows, err := db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query activity results: %v", err)
		return nil, err
	}
	defer rows.Close()

	var results []models.ActivityResult
	for rows.Next() {
		var r models.ActivityResult
		if err := rows.Scan(&r.ID, &r.UserID, &r.ChallengeID, &r.ActivityType, &r.UserAnswer,
			&r.IsCorrect, &r.Score, &r.XPEarned, &r.Feedback, &r.FocusViolations, &r.CreatedAt); err != nil {
			log.Error("failed to scan activity row: %v", err)
			return nil, err
		}
		results = append(results, r)
	}
	log.Debug("found %d activity results", len(results))
	return results, rows.Err()
}

// CountActivitiesSince counts a user's attempts newer than the cutoff.
func (db *DB) CountActivitiesSince(ctx context.Context, userID int64, since time.Time) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("db")

	var count int
	err := db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM activity_results
WHERE user_id = ? AND created_at >= ?
`, userID, since.UTC()).Scan(&count)
	if err != nil {
		log.Error("failed to count activities: %v", err)
		return 0, err
	}
	return count, nil
}

// RecentFocusViolations returns the focus violation counts of the user's most
// recent attempts, newest first.
func (db *DB) RecentFocusViolations(ctx context.Context, userID int64, limit int) ([]int, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	if limit <= 0 {
		limit = 10
	}

	rows, err := db.QueryContext(ctx, `
SELECT focus_violations FROM activity_results
WHERE user_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ?
`, userID, limit)
	if err != nil {
		log.Error("failed to query focus violations: %v", err)
		return nil, err
	}
	defer rows.Close()

	var violations []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		violations = append(violations, v)
	}
	return violations, rows.Err()
}
