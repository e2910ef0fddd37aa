package models

import "time"

// TaxonomyEntry is a catalog row driving challenge generation and mastery
// bucketing. Entries are seeded out of band and read-only to the engine.
type TaxonomyEntry struct {
	ID               int64     `json:"id"`
	Subject          string    `json:"subject"`
	Topic            string    `json:"topic"`
	SubTopic         string    `json:"sub_topic,omitempty"`
	Difficulty       string    `json:"difficulty"`
	RequiredOutcomes []string  `json:"required_outcomes"`
	CreatedAt        time.Time `json:"created_at"`
}

// Challenge is one generated activity instance. Payload is the learner-visible
// document; Secret is the expected answer and must never leave the backend.
type Challenge struct {
	ID           string    `json:"id"`
	UserID       int64     `json:"-"`
	Subject      string    `json:"subject"`
	Topic        string    `json:"topic"`
	ActivityType string    `json:"type"`
	TaxonomyID   *int64    `json:"taxonomy_id,omitempty"`
	Payload      string    `json:"-"`
	Secret       string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// GameProgress is the per-(user, subject) XP rollup behind the leaderboard.
// Derived display stat, not authoritative mastery.
type GameProgress struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Subject     string     `json:"subject"`
	TotalXP     int        `json:"total_xp"`
	Level       int        `json:"level"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// LeaderboardEntry is one row of the XP leaderboard.
type LeaderboardEntry struct {
	UserID  int64  `json:"user_id"`
	Subject string `json:"subject"`
	TotalXP int    `json:"xp"`
	Level   int    `json:"level"`
}

// ContentItem is a cached educational video discovered for a subject.
type ContentItem struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Source       string    `json:"source"`
	SourceID     string    `json:"source_id"`
	URL          string    `json:"url"`
	Subject      string    `json:"subject"`
	IsApproved   bool      `json:"is_approved"`
	IsFiltered   bool      `json:"is_filtered"`
	FilterReason string    `json:"filter_reason,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
