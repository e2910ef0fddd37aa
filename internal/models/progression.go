package models

import (
	"fmt"
	"time"
)

// Stage is one step of the pedagogical loop. It is a closed type: every
// transition site switches exhaustively so a new stage cannot fall through
// silently.
type Stage string

const (
	StageUnderstand Stage = "UNDERSTAND"
	StageApply      Stage = "APPLY"
	StageRemediate  Stage = "REMEDIATE"
	StageMastered   Stage = "MASTERED"
)

// ParseStage validates a persisted stage value.
func ParseStage(s string) (Stage, error) {
	switch Stage(s) {
	case StageUnderstand, StageApply, StageRemediate, StageMastered:
		return Stage(s), nil
	}
	return "", fmt.Errorf("unknown stage %q", s)
}

// LoopFeedback is the structured misconception analysis stored after a
// failed attempt.
type LoopFeedback struct {
	Analysis         string `json:"analysis"`
	RemediationFocus string `json:"remediation_focus"`
}

// ProgressionState is the per-(user, taxonomy entry) loop position. Exactly
// one row exists per pair; it is created lazily at UNDERSTAND/0.
type ProgressionState struct {
	ID           int64         `json:"id"`
	UserID       int64         `json:"user_id"`
	TaxonomyID   int64         `json:"taxonomy_id"`
	Stage        Stage         `json:"stage"`
	Attempts     int           `json:"attempts"`
	LastFeedback *LoopFeedback `json:"last_feedback,omitempty"`
	LastUpdated  time.Time     `json:"last_updated"`
}
