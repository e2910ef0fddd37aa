package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/focuslearner/backend/internal/db"
	"github.com/focuslearner/backend/internal/errors"
	"github.com/focuslearner/backend/internal/generator"
	"github.com/focuslearner/backend/internal/grading"
	"github.com/focuslearner/backend/internal/logger"
	"github.com/focuslearner/backend/internal/models"
)

// CreatedActivity is the learner-visible result of generating a challenge:
// the sanitized payload plus the challenge handle to submit against.
type CreatedActivity struct {
	ChallengeID string         `json:"challenge_id"`
	Subject     string         `json:"subject"`
	Topic       string         `json:"topic"`
	Type        string         `json:"type"`
	Payload     map[string]any `json:"payload"`
}

// SubmitResponse is everything one graded submission produced.
type SubmitResponse struct {
	Correct     bool                     `json:"correct"`
	Score       float64                  `json:"score"`
	XPEarned    int                      `json:"xp_earned"`
	Feedback    string                   `json:"feedback"`
	Proficiency models.ProficiencyRecord `json:"proficiency"`
	Progress    models.GameProgress      `json:"progress"`
	Loop        *AdvanceResult           `json:"loop,omitempty"`
}

// ActivityService owns the challenge lifecycle: generation with secret
// extraction, grading and the atomic submission write.
type ActivityService interface {
	CreateActivity(ctx context.Context, userID int64, subject, topic, activityType string) (*CreatedActivity, error)
	SubmitActivity(ctx context.Context, userID int64, challengeID, answer string, focusViolations int) (*SubmitResponse, error)
	History(ctx context.Context, filter models.ActivityFilter) ([]models.ActivityResult, error)
}

type activityService struct {
	db              *db.DB
	provider        generator.Provider
	loop            LoopService
	providerTimeout time.Duration
}

// NewActivityService creates a new ActivityService.
func NewActivityService(database *db.DB, provider generator.Provider, loopSvc LoopService, providerTimeout time.Duration) ActivityService {
	return &activityService{
		db:              database,
		provider:        provider,
		loop:            loopSvc,
		providerTimeout: providerTimeout,
	}
}

// storedSecret is the persisted form of the extracted expected answer.
type storedSecret struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

func (s *activityService) CreateActivity(ctx context.Context, userID int64, subject, topic, activityType string) (*CreatedActivity, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating activity: user_id=%d, subject=%s, topic=%s, type=%s",
		userID, subject, topic, activityType)

	if subject == "" {
		return nil, errors.NewValidationError("subject", "must not be empty")
	}
	if topic == "" {
		return nil, errors.NewValidationError("topic", "must not be empty")
	}
	if activityType == "" {
		return nil, errors.NewValidationError("activity_type", "must not be empty")
	}

	genCtx, cancel := context.WithTimeout(ctx, s.providerTimeout)
	defer cancel()
	activity, err := s.provider.Generate(genCtx, subject, topic, activityType)
	if err != nil {
		log.Error("content generation failed: %v", err)
		return nil, errors.NewExternalError("content generator", err)
	}

	secret, payload := generator.Split(activity)
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	secretJSON, err := json.Marshal(storedSecret{Kind: secret.Kind.String(), Value: secret.Value})
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	challenge := models.Challenge{
		ID:           uuid.NewString(),
		UserID:       userID,
		Subject:      subject,
		Topic:        topic,
		ActivityType: activityType,
		Payload:      string(payloadJSON),
		Secret:       string(secretJSON),
	}

	// Link the challenge to the loop when the topic is in the taxonomy.
	entry, err := s.db.FindTaxonomyEntry(ctx, subject, topic)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if entry != nil {
		challenge.TaxonomyID = &entry.ID
	}

	if err := s.db.InsertChallenge(ctx, challenge); err != nil {
		return nil, errors.NewInternalError(err)
	}

	log.Info("activity created: challenge_id=%s, type=%s, secret_kind=%s",
		challenge.ID, activityType, secret.Kind)
	return &CreatedActivity{
		ChallengeID: challenge.ID,
		Subject:     subject,
		Topic:       topic,
		Type:        activityType,
		Payload:     payload,
	}, nil
}

func (s *activityService) SubmitActivity(ctx context.Context, userID int64, challengeID, answer string, focusViolations int) (*SubmitResponse, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting activity: user_id=%d, challenge_id=%s", userID, challengeID)

	if challengeID == "" {
		return nil, errors.NewValidationError("challenge_id", "must not be empty")
	}
	if focusViolations < 0 {
		return nil, errors.NewValidationError("focus_violations", "must not be negative")
	}

	challenge, err := s.db.GetChallenge(ctx, challengeID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if challenge == nil || challenge.UserID != userID {
		return nil, errors.NewNotFoundError("challenge", challengeID)
	}

	var secret storedSecret
	if err := json.Unmarshal([]byte(challenge.Secret), &secret); err != nil {
		return nil, errors.NewInternalError(err)
	}

	graded := grading.Grade(challenge.ActivityType, secret.Value, answer)
	xp := grading.XP(challenge.ActivityType, graded.Score)

	out, err := s.db.SubmitActivity(ctx, models.ActivityResult{
		UserID:          userID,
		ChallengeID:     challenge.ID,
		ActivityType:    challenge.ActivityType,
		UserAnswer:      answer,
		IsCorrect:       graded.Correct,
		Score:           graded.Score,
		XPEarned:        xp,
		Feedback:        graded.Feedback,
		FocusViolations: focusViolations,
	}, challenge.Subject, challenge.Topic)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	resp := &SubmitResponse{
		Correct:     graded.Correct,
		Score:       graded.Score,
		XPEarned:    xp,
		Feedback:    graded.Feedback,
		Proficiency: out.Proficiency,
		Progress:    out.Progress,
	}

	// Drive the loop when the challenge belongs to a taxonomy entry. The
	// gate works on percentages.
	if challenge.TaxonomyID != nil {
		advance, err := s.loop.Advance(ctx, userID, *challenge.TaxonomyID, graded.Correct, graded.Score*100, &AttemptContext{
			Question:       questionFromPayload(challenge.Payload),
			LearnerAnswer:  answer,
			ExpectedAnswer: secret.Value,
			Subject:        challenge.Subject,
		})
		if err != nil {
			log.Error("loop advance after submission failed: %v", err)
			return nil, err
		}
		resp.Loop = advance
		resp.Feedback = advance.Feedback
	}

	log.Info("activity submitted: challenge_id=%s, correct=%t, xp=%d", challenge.ID, graded.Correct, xp)
	return resp, nil
}

func (s *activityService) History(ctx context.Context, filter models.ActivityFilter) ([]models.ActivityResult, error) {
	results, err := s.db.ListActivityResults(ctx, filter)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return results, nil
}

func questionFromPayload(payload string) string {
	var fields map[string]any
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return ""
	}
	for _, key := range []string{"question", "prompt", "scenario", "problem"} {
		if q, ok := fields[key].(string); ok {
			return q
		}
	}
	return ""
}
