package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/focuslearner/backend/internal/grading"
	"github.com/focuslearner/backend/internal/logger"
	"github.com/focuslearner/backend/internal/mastery"
	"github.com/focuslearner/backend/internal/models"
)

// SubmitOutcome is everything a graded submission changed, written in one
// transaction.
type SubmitOutcome struct {
	Result      models.ActivityResult
	Proficiency models.ProficiencyRecord
	Progress    models.GameProgress
}

// SubmitActivity records a graded attempt atomically: the audit row, the
// proficiency update and the XP rollup either all land or none do. The
// proficiency and progress rows are created lazily on first submission.
func (db *DB) SubmitActivity(ctx context.Context, result models.ActivityResult, subject, topic string) (*SubmitOutcome, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("submitting activity: user_id=%d, challenge_id=%s, correct=%t, xp=%d",
		result.UserID, result.ChallengeID, result.IsCorrect, result.XPEarned)

	var out SubmitOutcome
	err := tx(ctx, db, func(txn *sql.Tx) error {
		now := time.Now().UTC()

		res, err := txn.ExecContext(ctx, `
INSERT INTO activity_results (user_id, challenge_id, activity_type, user_answer, is_correct, score, xp_earned, feedback, focus_violations, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, result.UserID, result.ChallengeID, result.ActivityType, result.UserAnswer,
			result.IsCorrect, result.Score, result.XPEarned, result.Feedback, result.FocusViolations, now)
		if err != nil {
			return err
		}
		result.ID, err = res.LastInsertId()
		if err != nil {
			return err
		}
		result.CreatedAt = now
		out.Result = result

		record, err := proficiencyForUpdate(ctx, txn, result.UserID, subject, topic)
		if err != nil {
			return err
		}
		updated := mastery.Apply(record, result.IsCorrect, grading.Weight(result.ActivityType))
		if err := upsertProficiency(ctx, txn, updated); err != nil {
			return err
		}
		out.Proficiency = updated

		progress, err := progressForUpdate(ctx, txn, result.UserID, subject)
		if err != nil {
			return err
		}
		progress.TotalXP += result.XPEarned
		progress.Level = grading.Level(progress.TotalXP)
		if err := upsertProgress(ctx, txn, &progress); err != nil {
			return err
		}
		out.Progress = progress

		return nil
	})
	if err != nil {
		log.Error("failed to submit activity: %v", err)
		return nil, err
	}
	log.Debug("activity submitted: result_id=%d, proficiency=%.1f, total_xp=%d",
		out.Result.ID, out.Proficiency.Proficiency, out.Progress.TotalXP)
	return &out, nil
}

func proficiencyForUpdate(ctx context.Context, txn *sql.Tx, userID int64, subject, topic string) (models.ProficiencyRecord, error) {
	r, err := scanProficiency(txn.QueryRowContext(ctx, `
SELECT id, user_id, subject, topic, state, proficiency, total_attempts, success_rate, last_activity_at
FROM proficiency_records
WHERE user_id = ? AND subject = ? AND topic = ?
`, userID, subject, topic))
	if errors.Is(err, sql.ErrNoRows) {
		return models.ProficiencyRecord{
			UserID:  userID,
			Subject: subject,
			Topic:   topic,
			State:   models.MasteryNotStarted,
		}, nil
	}
	if err != nil {
		return models.ProficiencyRecord{}, err
	}
	return *r, nil
}

func upsertProficiency(ctx context.Context, txn *sql.Tx, r models.ProficiencyRecord) error {
	_, err := txn.ExecContext(ctx, `
INSERT INTO proficiency_records (user_id, subject, topic, state, proficiency, total_attempts, success_rate, last_activity_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (user_id, subject, topic) DO UPDATE SET
    state = excluded.state,
    proficiency = excluded.proficiency,
    total_attempts = excluded.total_attempts,
    success_rate = excluded.success_rate,
    last_activity_at = excluded.last_activity_at
`, r.UserID, r.Subject, r.Topic, string(r.State), r.Proficiency, r.TotalAttempts, r.SuccessRate, r.LastActivityAt.UTC())
	return err
}

func progressForUpdate(ctx context.Context, txn *sql.Tx, userID int64, subject string) (models.GameProgress, error) {
	var p models.GameProgress
	err := txn.QueryRowContext(ctx, `
SELECT id, user_id, subject, total_xp, level, completed_at, created_at
FROM game_progress
WHERE user_id = ? AND subject = ?
`, userID, subject).Scan(&p.ID, &p.UserID, &p.Subject, &p.TotalXP, &p.Level, &p.CompletedAt, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.GameProgress{UserID: userID, Subject: subject, Level: 1}, nil
	}
	return p, err
}

func upsertProgress(ctx context.Context, txn *sql.Tx, p *models.GameProgress) error {
	_, err := txn.ExecContext(ctx, `
INSERT INTO game_progress (user_id, subject, total_xp, level)
VALUES (?, ?, ?, ?)
ON CONFLICT (user_id, subject) DO UPDATE SET
    total_xp = excluded.total_xp,
    level = excluded.level
`, p.UserID, p.Subject, p.TotalXP, p.Level)
	return err
}
