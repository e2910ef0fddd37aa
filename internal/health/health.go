package health

import (
	"math"

	"github.com/focuslearner/backend/internal/models"
)

// Tuning constants for the four sub-scores.
const (
	// WeeklyActivityTarget is the attempt count per 7 days worth a 100
	// consistency score.
	WeeklyActivityTarget = 20
	// ViolationPenalty is the focus-score cost of one average violation.
	ViolationPenalty = 10
	// ResilienceBase is the resilience score of a learner with loop history
	// but no persistence signal either way.
	ResilienceBase = 70
	// ResilienceStep scales the persistence total into score points.
	ResilienceStep = 5

	defaultFocus      = 100.0
	defaultResilience = 80.0
)

// Inputs is everything the aggregator reads. All of it is collected by the
// caller; Compute itself touches no storage.
type Inputs struct {
	// RecentAttempts is the number of activity results in the last 7 days.
	RecentAttempts int
	// RecentViolations holds the focus-violation counts of the most recent
	// results (newest first, at most 50).
	RecentViolations []int
	// LoopStates are all progression states of the user.
	LoopStates []models.ProgressionState
	// ProficiencyScores are the proficiency values of all the user's records.
	ProficiencyScores []float64
}

// Compute rolls per-user signals into the learning health summary: four
// sub-scores in [0,100] and their unweighted mean.
func Compute(in Inputs) models.HealthSummary {
	consistency := consistencyScore(in.RecentAttempts)
	focus := focusScore(in.RecentViolations)
	resilience := resilienceScore(in.LoopStates)
	stability := stabilityScore(in.ProficiencyScores)

	overall := (consistency + focus + resilience + stability) / 4

	return models.HealthSummary{
		OverallHealth: round1(overall),
		Metrics: models.HealthMetrics{
			Consistency: round1(consistency),
			Focus:       round1(focus),
			Resilience:  round1(resilience),
			Stability:   round1(stability),
		},
		Insights: insights(focus, consistency),
	}
}

// consistencyScore caps at the weekly activity target.
func consistencyScore(recentAttempts int) float64 {
	score := float64(recentAttempts) / WeeklyActivityTarget * 100
	return math.Min(100, score)
}

// focusScore charges ViolationPenalty points per average violation. A learner
// with no history starts at a full score.
func focusScore(violations []int) float64 {
	if len(violations) == 0 {
		return defaultFocus
	}
	total := 0
	for _, v := range violations {
		total += v
	}
	avg := float64(total) / float64(len(violations))
	return math.Max(0, 100-avg*ViolationPenalty)
}

// resilienceScore rewards loops that needed more than one attempt but still
// reached MASTERED, and penalizes brute-forcing past five attempts.
func resilienceScore(states []models.ProgressionState) float64 {
	if len(states) == 0 {
		return defaultResilience
	}
	total := 0.0
	for _, st := range states {
		if st.Attempts > 1 && st.Stage == models.StageMastered {
			total++
		} else if st.Attempts > 5 {
			total -= 0.5
		}
	}
	score := ResilienceBase + total*ResilienceStep
	return math.Min(100, math.Max(0, score))
}

// stabilityScore is the mean proficiency across started topics.
func stabilityScore(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	total := 0.0
	for _, s := range scores {
		total += s
	}
	return total / float64(len(scores))
}

// insights picks two canned advisory strings. Not part of the numeric
// contract.
func insights(focus, consistency float64) []string {
	focusMsg := "Try to minimize tab switching."
	if focus > 90 {
		focusMsg = "Keep your focus streak alive!"
	}
	consistencyMsg := "Try to practice daily."
	if consistency > 80 {
		consistencyMsg = "Great consistency!"
	}
	return []string{focusMsg, consistencyMsg}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
