package models

// HealthMetrics are the four normalized learning-health sub-scores.
type HealthMetrics struct {
	Consistency float64 `json:"consistency"`
	Focus       float64 `json:"focus"`
	Resilience  float64 `json:"resilience"`
	Stability   float64 `json:"stability"`
}

// HealthSummary is the dashboard rollup: the sub-scores, their unweighted
// mean, and two advisory insight strings.
type HealthSummary struct {
	OverallHealth float64       `json:"overall_health"`
	Metrics       HealthMetrics `json:"metrics"`
	Insights      []string      `json:"insights"`
}
