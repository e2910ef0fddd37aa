package models

import "time"

// ActivityResult is the append-only audit trail of every graded attempt.
// Rows are written exactly once and never edited.
type ActivityResult struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	ChallengeID     string    `json:"challenge_id"`
	ActivityType    string    `json:"activity_type"`
	UserAnswer      string    `json:"user_answer"`
	IsCorrect       bool      `json:"is_correct"`
	Score           float64   `json:"score"`
	XPEarned        int       `json:"xp_earned"`
	Feedback        string    `json:"feedback"`
	FocusViolations int       `json:"focus_violations"`
	CreatedAt       time.Time `json:"created_at"`
}

// ActivityFilter narrows activity history queries.
type ActivityFilter struct {
	UserID       int64
	ChallengeID  string
	ActivityType string
	Since        *time.Time
	Limit        int
	Offset       int
}
