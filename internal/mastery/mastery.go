package mastery

import (
	"time"

	"github.com/focuslearner/backend/internal/models"
)

// Scoring constants. Gains scale with the activity's mastery weight; losses
// are flat: a mistake costs the same however rigorous the activity was.
const (
	GainPerSuccess = 15.0
	LossPerFailure = 5.0
)

// Classification thresholds on the 0-100 proficiency score.
const (
	MasteredThreshold   = 80.0
	InProgressThreshold = 30.0
)

// Apply folds one graded attempt into a proficiency record. The score stays
// clamped to [0,100] and the state is recomputed from the score every time.
func Apply(r models.ProficiencyRecord, correct bool, weight float64) models.ProficiencyRecord {
	prevAttempts := float64(r.TotalAttempts)
	r.TotalAttempts++

	if correct {
		r.Proficiency += GainPerSuccess * weight
		if r.Proficiency > 100 {
			r.Proficiency = 100
		}
		r.SuccessRate = (r.SuccessRate*prevAttempts + 1) / float64(r.TotalAttempts)
	} else {
		r.Proficiency -= LossPerFailure
		if r.Proficiency < 0 {
			r.Proficiency = 0
		}
		r.SuccessRate = (r.SuccessRate * prevAttempts) / float64(r.TotalAttempts)
	}

	r.State = Classify(r.Proficiency)
	r.LastActivityAt = time.Now()
	return r
}

// Classify maps a proficiency score to its mastery state. This is the only
// place classification is computed.
func Classify(score float64) models.MasteryState {
	switch {
	case score >= MasteredThreshold:
		return models.MasteryMastered
	case score >= InProgressThreshold:
		return models.MasteryInProgress
	default:
		return models.MasteryNeedsReview
	}
}
