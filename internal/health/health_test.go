package health_test

import (
	"testing"

	"github.com/focuslearner/backend/internal/health"
	"github.com/focuslearner/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCompute_FreshUser(t *testing.T) {
	// Zero history: consistency 0, focus 100, resilience 80, stability 0.
	sum := health.Compute(health.Inputs{})

	assert.Equal(t, 0.0, sum.Metrics.Consistency)
	assert.Equal(t, 100.0, sum.Metrics.Focus)
	assert.Equal(t, 80.0, sum.Metrics.Resilience)
	assert.Equal(t, 0.0, sum.Metrics.Stability)
	assert.Equal(t, 45.0, sum.OverallHealth)
	assert.Len(t, sum.Insights, 2)
}

func TestConsistency(t *testing.T) {
	tests := []struct {
		attempts int
		want     float64
	}{
		{attempts: 0, want: 0},
		{attempts: 5, want: 25},
		{attempts: 10, want: 50},
		{attempts: 20, want: 100},
		{attempts: 40, want: 100}, // capped
	}

	for _, tt := range tests {
		sum := health.Compute(health.Inputs{RecentAttempts: tt.attempts})
		assert.Equal(t, tt.want, sum.Metrics.Consistency, "attempts=%d", tt.attempts)
	}
}

func TestFocus(t *testing.T) {
	tests := []struct {
		name       string
		violations []int
		want       float64
	}{
		{name: "no history defaults to 100", violations: nil, want: 100},
		{name: "clean history", violations: []int{0, 0, 0}, want: 100},
		{name: "one violation per attempt", violations: []int{1, 1, 1}, want: 90},
		{name: "mixed", violations: []int{0, 1, 2, 1}, want: 90},
		{name: "heavy violations floor at 0", violations: []int{20, 20}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum := health.Compute(health.Inputs{RecentViolations: tt.violations})
			assert.Equal(t, tt.want, sum.Metrics.Focus)
		})
	}
}

func TestResilience(t *testing.T) {
	mastered := func(attempts int) models.ProgressionState {
		return models.ProgressionState{Stage: models.StageMastered, Attempts: attempts}
	}
	stuck := func(attempts int) models.ProgressionState {
		return models.ProgressionState{Stage: models.StageRemediate, Attempts: attempts}
	}

	tests := []struct {
		name   string
		states []models.ProgressionState
		want   float64
	}{
		{name: "no loops defaults to 80", states: nil, want: 80},
		{name: "single easy mastery scores base", states: []models.ProgressionState{mastered(1)}, want: 70},
		{name: "persistent mastery rewarded", states: []models.ProgressionState{mastered(3)}, want: 75},
		{name: "brute force penalized", states: []models.ProgressionState{stuck(6)}, want: 67.5},
		{name: "mix", states: []models.ProgressionState{mastered(2), mastered(4), stuck(7)}, want: 77.5},
		{name: "capped at 100", states: []models.ProgressionState{
			mastered(2), mastered(2), mastered(2), mastered(2), mastered(2), mastered(2), mastered(2),
		}, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum := health.Compute(health.Inputs{LoopStates: tt.states})
			assert.Equal(t, tt.want, sum.Metrics.Resilience)
		})
	}
}

func TestStability(t *testing.T) {
	sum := health.Compute(health.Inputs{ProficiencyScores: []float64{90, 70, 50}})
	assert.Equal(t, 70.0, sum.Metrics.Stability)

	sum = health.Compute(health.Inputs{ProficiencyScores: nil})
	assert.Equal(t, 0.0, sum.Metrics.Stability)
}

func TestOverallIsUnweightedMean(t *testing.T) {
	sum := health.Compute(health.Inputs{
		RecentAttempts:    10,                // consistency 50
		RecentViolations:  []int{1, 1},       // focus 90
		LoopStates:        nil,               // resilience 80
		ProficiencyScores: []float64{60, 80}, // stability 70
	})

	assert.Equal(t, 72.5, sum.OverallHealth)
}

func TestInsightThresholds(t *testing.T) {
	sum := health.Compute(health.Inputs{
		RecentAttempts:   20,          // consistency 100
		RecentViolations: []int{0, 0}, // focus 100
	})
	assert.Equal(t, []string{"Keep your focus streak alive!", "Great consistency!"}, sum.Insights)

	sum = health.Compute(health.Inputs{
		RecentAttempts:   2,           // consistency 10
		RecentViolations: []int{3, 3}, // focus 70
	})
	assert.Equal(t, []string{"Try to minimize tab switching.", "Try to practice daily."}, sum.Insights)
}
