package models

import (
	"fmt"
	"time"
)

// MasteryState classifies a proficiency score. It is always recomputed from
// the score, never set independently.
type MasteryState string

const (
	MasteryNotStarted  MasteryState = "NOT_STARTED"
	MasteryInProgress  MasteryState = "IN_PROGRESS"
	MasteryMastered    MasteryState = "MASTERED"
	MasteryNeedsReview MasteryState = "NEEDS_REVIEW"
)

// ParseMasteryState validates a persisted mastery state value.
func ParseMasteryState(s string) (MasteryState, error) {
	switch MasteryState(s) {
	case MasteryNotStarted, MasteryInProgress, MasteryMastered, MasteryNeedsReview:
		return MasteryState(s), nil
	}
	return "", fmt.Errorf("unknown mastery state %q", s)
}

// ProficiencyRecord is the rolling 0-100 competence measure per
// (user, subject, topic).
type ProficiencyRecord struct {
	ID             int64        `json:"-"`
	UserID         int64        `json:"user_id"`
	Subject        string       `json:"subject"`
	Topic          string       `json:"topic"`
	State          MasteryState `json:"state"`
	Proficiency    float64      `json:"proficiency"`
	TotalAttempts  int          `json:"total_attempts"`
	SuccessRate    float64      `json:"success_rate"`
	LastActivityAt time.Time    `json:"last_activity_at"`
}
