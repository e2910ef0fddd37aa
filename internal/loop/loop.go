package loop

import (
	"fmt"

	"github.com/focuslearner/backend/internal/models"
)

// MasteryThreshold is the minimum score (0-100) an APPLY-stage attempt must
// reach to count as a success, regardless of the caller-supplied flag.
const MasteryThreshold = 80.0

// Decision is the outcome of advancing the loop: the next stage, the attempt
// counter, the gated success flag and the feedback to show when no richer
// misconception analysis is available.
type Decision struct {
	Stage    models.Stage
	Attempts int
	// Success is the caller's flag after the mastery gate has been applied.
	Success bool
	// FeedbackPrefix is non-empty when the mastery gate fired. It is prepended
	// to whatever feedback text ends up being shown.
	FeedbackPrefix string
	// Feedback is the full fallback feedback, prefix included.
	Feedback string
	// Analyze reports that a misconception analysis should be attempted for
	// this failure. The analysis replaces Feedback when it succeeds.
	Analyze bool
	// ClearFeedback reports that any stored feedback should be discarded.
	ClearFeedback bool
}

// Advance computes the next loop position from an attempt outcome. It is
// pure: persistence and the misconception-analysis call are the caller's job.
//
// Transitions:
//   - UNDERSTAND -> success -> APPLY
//   - APPLY      -> success (score >= threshold) -> MASTERED
//   - APPLY      -> failure -> REMEDIATE
//   - REMEDIATE  -> success -> MASTERED, failure -> REMEDIATE
func Advance(state models.ProgressionState, success bool, score float64) Decision {
	d := Decision{
		Stage:    state.Stage,
		Attempts: state.Attempts,
		Success:  success,
	}

	if state.Stage == models.StageApply {
		d.Attempts++
	}

	// Strict mastery gate: a technically correct answer below the threshold
	// does not count as mastery.
	if state.Stage == models.StageApply && score < MasteryThreshold {
		d.Success = false
		d.FeedbackPrefix = fmt.Sprintf("Score %.0f%% is below mastery threshold (%.0f%%). ", score, MasteryThreshold)
	}

	if d.Success {
		d.ClearFeedback = true
		switch state.Stage {
		case models.StageUnderstand:
			d.Stage = models.StageApply
			d.Feedback = "Lecture complete! Time to apply what you learned."
		case models.StageApply:
			d.Stage = models.StageMastered
			d.Feedback = "Topic Mastered! You're ready for the next concept."
		case models.StageRemediate:
			d.Stage = models.StageMastered
			d.Feedback = "Great recovery! Topic Mastered."
		case models.StageMastered:
			// Terminal. A fresh taxonomy entry starts a new cycle.
		}
		return d
	}

	switch state.Stage {
	case models.StageApply, models.StageRemediate:
		d.Stage = models.StageRemediate
		d.Analyze = true
		d.Feedback = d.FeedbackPrefix + "Let's review. Watch this key segment before trying again."
	case models.StageUnderstand, models.StageMastered:
		// Failing at UNDERSTAND is not a modeled transition: the stage has no
		// graded activities, so this path should not occur under normal use.
		d.Feedback = "Keep going."
	}
	return d
}

// CompleteRemediation reports whether a REMEDIATE state may return to APPLY.
func CompleteRemediation(stage models.Stage) (models.Stage, bool) {
	if stage == models.StageRemediate {
		return models.StageApply, true
	}
	return stage, false
}
