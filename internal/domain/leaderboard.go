package domain

import "time"

// LeaderboardEntry is one model's standing on the benchmark. Rank is
// derived from overall accuracy at read time, not stored.
type LeaderboardEntry struct {
	ID           string `json:"id"`
	ModelName    string `json:"model_name"`
	ModelVersion string `json:"model_version,omitempty"`
	Organization string `json:"organization,omitempty"`

	OverallAccuracy    float64            `json:"overall_accuracy"`
	TotalExamples      int                `json:"total_examples"`
	CategoryAccuracy   map[string]float64 `json:"category_accuracy"`
	DifficultyAccuracy map[string]float64 `json:"difficulty_accuracy"`

	ReasoningQuality *float64 `json:"reasoning_quality,omitempty"`
	CalibrationError *float64 `json:"calibration_error,omitempty"`
	AvgLatencyMs     *float64 `json:"avg_latency_ms,omitempty"`

	SubmittedBy string    `json:"submitted_by,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`

	Rank int `json:"rank"`
}

// DisplayName prefixes the organization when one was given.
func (e *LeaderboardEntry) DisplayName() string {
	if e.Organization != "" {
		return e.Organization + "/" + e.ModelName
	}
	return e.ModelName
}
