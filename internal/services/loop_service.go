package services

import (
	"context"
	"time"

	"github.com/focuslearner/backend/internal/db"
	"github.com/focuslearner/backend/internal/errors"
	"github.com/focuslearner/backend/internal/generator"
	"github.com/focuslearner/backend/internal/logger"
	"github.com/focuslearner/backend/internal/loop"
	"github.com/focuslearner/backend/internal/models"
)

// AttemptContext carries what the misconception analysis needs to look at a
// failed attempt.
type AttemptContext struct {
	Question       string
	LearnerAnswer  string
	ExpectedAnswer string
	Subject        string
}

// AdvanceResult is the outcome of one loop transition as shown to the
// learner.
type AdvanceResult struct {
	State    models.ProgressionState `json:"state"`
	Success  bool                    `json:"success"`
	Feedback string                  `json:"feedback"`
}

// LoopService drives the pedagogical loop per (user, taxonomy entry).
type LoopService interface {
	GetState(ctx context.Context, userID, taxonomyID int64) (*models.ProgressionState, error)
	Advance(ctx context.Context, userID, taxonomyID int64, success bool, score float64, attempt *AttemptContext) (*AdvanceResult, error)
	CompleteRemediation(ctx context.Context, userID, taxonomyID int64) (*models.ProgressionState, bool, error)
}

type loopService struct {
	db              *db.DB
	provider        generator.Provider
	fallback        generator.Provider
	providerTimeout time.Duration
}

// NewLoopService creates a new LoopService. Misconception analyses go through
// the provider, bounded by the timeout, and fall back to deterministic static
// content.
func NewLoopService(database *db.DB, provider generator.Provider, providerTimeout time.Duration) LoopService {
	return &loopService{
		db:              database,
		provider:        provider,
		fallback:        generator.NewStatic(),
		providerTimeout: providerTimeout,
	}
}

func (s *loopService) GetState(ctx context.Context, userID, taxonomyID int64) (*models.ProgressionState, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting loop state: user_id=%d, taxonomy_id=%d", userID, taxonomyID)

	entry, err := s.db.GetTaxonomyEntry(ctx, taxonomyID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if entry == nil {
		return nil, errors.NewNotFoundError("taxonomy entry", taxonomyID)
	}

	state, err := s.db.GetOrCreateProgressionState(ctx, userID, taxonomyID)
	if err != nil {
		log.Error("failed to load loop state: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return state, nil
}

func (s *loopService) Advance(ctx context.Context, userID, taxonomyID int64, success bool, score float64, attempt *AttemptContext) (*AdvanceResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("advancing loop: user_id=%d, taxonomy_id=%d, success=%t, score=%.1f",
		userID, taxonomyID, success, score)

	state, err := s.GetState(ctx, userID, taxonomyID)
	if err != nil {
		return nil, err
	}

	d := loop.Advance(*state, success, score)

	state.Stage = d.Stage
	state.Attempts = d.Attempts
	feedback := d.Feedback

	if d.ClearFeedback {
		state.LastFeedback = nil
	}
	if d.Analyze && attempt != nil {
		if attempt.Subject == "" {
			if entry, err := s.db.GetTaxonomyEntry(ctx, taxonomyID); err == nil && entry != nil {
				attempt.Subject = entry.Subject
			}
		}
		analysis := s.analyze(ctx, *attempt)
		state.LastFeedback = &models.LoopFeedback{
			Analysis:         analysis.Analysis,
			RemediationFocus: analysis.RemediationFocus,
		}
		feedback = d.FeedbackPrefix + analysis.Analysis + " Focus on: " + analysis.RemediationFocus
	}

	if err := s.db.UpdateProgressionState(ctx, *state); err != nil {
		log.Error("failed to persist loop transition: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("loop advanced: user_id=%d, taxonomy_id=%d, stage=%s, attempts=%d",
		userID, taxonomyID, state.Stage, state.Attempts)
	return &AdvanceResult{State: *state, Success: d.Success, Feedback: feedback}, nil
}

// analyze never fails: a provider error degrades to the static analysis.
func (s *loopService) analyze(ctx context.Context, attempt AttemptContext) generator.Misconception {
	log := logger.FromContext(ctx)

	ctx, cancel := context.WithTimeout(ctx, s.providerTimeout)
	defer cancel()

	m, err := s.provider.AnalyzeMisconception(ctx, attempt.Question, attempt.LearnerAnswer, attempt.ExpectedAnswer, attempt.Subject)
	if err == nil {
		return m
	}
	log.Warn("misconception analysis failed, using static fallback: %v", err)

	m, err = s.fallback.AnalyzeMisconception(context.WithoutCancel(ctx), attempt.Question, attempt.LearnerAnswer, attempt.ExpectedAnswer, attempt.Subject)
	if err != nil {
		// Static analysis cannot fail; guard anyway.
		return generator.Misconception{
			Analysis:         "We could not pinpoint the misunderstanding this time.",
			RemediationFocus: attempt.Subject,
		}
	}
	return m
}

func (s *loopService) CompleteRemediation(ctx context.Context, userID, taxonomyID int64) (*models.ProgressionState, bool, error) {
	log := logger.FromContext(ctx)
	log.Debug("completing remediation: user_id=%d, taxonomy_id=%d", userID, taxonomyID)

	state, err := s.GetState(ctx, userID, taxonomyID)
	if err != nil {
		return nil, false, err
	}

	next, ok := loop.CompleteRemediation(state.Stage)
	if !ok {
		return state, false, nil
	}

	state.Stage = next
	if err := s.db.UpdateProgressionState(ctx, *state); err != nil {
		log.Error("failed to persist remediation completion: %v", err)
		return nil, false, errors.NewInternalError(err)
	}
	return state, true, nil
}
