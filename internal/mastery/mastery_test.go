package mastery_test

import (
	"testing"

	"github.com/focuslearner/backend/internal/mastery"
	"github.com/focuslearner/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func record(score float64, attempts int) models.ProficiencyRecord {
	return models.ProficiencyRecord{
		UserID:        1,
		Subject:       "CS",
		Topic:         "Algorithms",
		State:         mastery.Classify(score),
		Proficiency:   score,
		TotalAttempts: attempts,
	}
}

func TestApply_GainScalesWithWeight(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
		want   float64
	}{
		{name: "coding full weight", weight: 1.0, want: 15},
		{name: "lab weight", weight: 0.8, want: 12},
		{name: "crossword weight", weight: 0.3, want: 4.5},
		{name: "default weight", weight: 0.5, want: 7.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mastery.Apply(record(0, 0), true, tt.weight)
			assert.InDelta(t, tt.want, r.Proficiency, 1e-9)
			assert.Equal(t, 1, r.TotalAttempts)
		})
	}
}

func TestApply_LossIsFlat(t *testing.T) {
	// A mistake costs 5 points regardless of activity weight.
	for _, weight := range []float64{1.0, 0.8, 0.3, 0.5} {
		r := mastery.Apply(record(90, 10), false, weight)
		assert.InDelta(t, 85, r.Proficiency, 1e-9, "weight %v", weight)
	}
}

func TestApply_ScoreClamps(t *testing.T) {
	r := mastery.Apply(record(95, 20), true, 1.0)
	assert.Equal(t, 100.0, r.Proficiency, "gain caps at 100")

	r = mastery.Apply(record(3, 2), false, 1.0)
	assert.Equal(t, 0.0, r.Proficiency, "loss floors at 0")
}

func TestApply_MasteryLadder(t *testing.T) {
	// Six correct full-weight attempts: 15, 30, 45, 60, 75, 90. The
	// classification flips to MASTERED exactly at the attempt crossing 80.
	r := record(0, 0)
	wantScores := []float64{15, 30, 45, 60, 75, 90}
	for i, want := range wantScores {
		r = mastery.Apply(r, true, 1.0)
		assert.InDelta(t, want, r.Proficiency, 1e-9, "attempt %d", i+1)
		if want >= 80 {
			assert.Equal(t, models.MasteryMastered, r.State, "attempt %d", i+1)
		} else {
			assert.NotEqual(t, models.MasteryMastered, r.State, "attempt %d", i+1)
		}
	}
	assert.Equal(t, 6, r.TotalAttempts)
}

func TestApply_LossAroundMasteredBoundary(t *testing.T) {
	r := mastery.Apply(record(90, 10), false, 1.0)
	assert.InDelta(t, 85, r.Proficiency, 1e-9)
	assert.Equal(t, models.MasteryMastered, r.State, "still at or above 80")

	r = mastery.Apply(record(82, 10), false, 1.0)
	assert.InDelta(t, 77, r.Proficiency, 1e-9)
	assert.Equal(t, models.MasteryInProgress, r.State, "dropped below 80")
}

func TestApply_ClassificationMatchesScore(t *testing.T) {
	// Property: after any sequence of updates, re-deriving the state from the
	// score matches the stored state, and the score stays in [0,100].
	r := record(0, 0)
	pattern := []bool{true, true, false, true, false, false, true, true, true, false, true, true, true, true}
	weights := []float64{1.0, 0.8, 0.3, 0.5}
	for i, correct := range pattern {
		r = mastery.Apply(r, correct, weights[i%len(weights)])
		assert.GreaterOrEqual(t, r.Proficiency, 0.0)
		assert.LessOrEqual(t, r.Proficiency, 100.0)
		assert.Equal(t, mastery.Classify(r.Proficiency), r.State)
	}
	assert.Equal(t, len(pattern), r.TotalAttempts)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		score float64
		want  models.MasteryState
	}{
		{score: 0, want: models.MasteryNeedsReview},
		{score: 29.9, want: models.MasteryNeedsReview},
		{score: 30, want: models.MasteryInProgress},
		{score: 79.9, want: models.MasteryInProgress},
		{score: 80, want: models.MasteryMastered},
		{score: 100, want: models.MasteryMastered},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, mastery.Classify(tt.score), "score %v", tt.score)
	}
}

func TestApply_SuccessRateTracksAttempts(t *testing.T) {
	r := record(0, 0)
	r = mastery.Apply(r, true, 1.0)
	assert.InDelta(t, 1.0, r.SuccessRate, 1e-9)

	r = mastery.Apply(r, false, 1.0)
	assert.InDelta(t, 0.5, r.SuccessRate, 1e-9)

	r = mastery.Apply(r, false, 1.0)
	assert.InDelta(t, 1.0/3.0, r.SuccessRate, 1e-9)
}
