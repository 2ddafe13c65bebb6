package domain

import (
	"fmt"
	"sort"
	"strings"
)

// GradedPrediction records the outcome of grading one model response
// against its reference answer. It is created by the metrics aggregator
// and never mutated afterwards.
type GradedPrediction struct {
	ProblemID       string   `json:"problem_id"`
	PredictedAnswer string   `json:"predicted_answer"`
	CorrectAnswer   string   `json:"correct_answer"`
	IsCorrect       bool     `json:"is_correct"`
	Category        string   `json:"category"`
	Difficulty      string   `json:"difficulty"`
	Reasoning       string   `json:"reasoning,omitempty"`
	Confidence      *float64 `json:"confidence,omitempty"`
	LatencyMs       *float64 `json:"latency_ms,omitempty"`
}

// AggregateResult is the flat, serializable view over a set of graded
// predictions. Accuracy maps only contain keys that were actually seen;
// ReasoningQuality and CalibrationError are nil when no prediction
// carried the underlying signal, which is distinct from a measured zero.
type AggregateResult struct {
	TotalExamples      int                `json:"total_examples"`
	OverallAccuracy    float64            `json:"overall_accuracy"`
	CategoryAccuracy   map[string]float64 `json:"category_accuracy"`
	DifficultyAccuracy map[string]float64 `json:"difficulty_accuracy"`
	ReasoningQuality   *float64           `json:"reasoning_quality,omitempty"`
	CalibrationError   *float64           `json:"calibration_error,omitempty"`
	CorrectCount       int                `json:"correct_count"`
}

// Summary renders the result as a plain-text report. The section order
// and number formats are a compatibility contract with the benchmark's
// CLI output.
func (r *AggregateResult) Summary() string {
	lines := []string{
		fmt.Sprintf("Total Examples: %d", r.TotalExamples),
		fmt.Sprintf("Overall Accuracy: %.1f%%", r.OverallAccuracy*100),
		"",
		"Accuracy by Category:",
	}

	for _, cat := range sortedKeys(r.CategoryAccuracy) {
		lines = append(lines, fmt.Sprintf("  %s: %.1f%%", cat, r.CategoryAccuracy[cat]*100))
	}

	lines = append(lines, "", "Accuracy by Difficulty:")
	for _, diff := range sortedKeys(r.DifficultyAccuracy) {
		lines = append(lines, fmt.Sprintf("  %s: %.1f%%", diff, r.DifficultyAccuracy[diff]*100))
	}

	if r.ReasoningQuality != nil {
		lines = append(lines, "", fmt.Sprintf("Reasoning Quality: %.2f/5.0", *r.ReasoningQuality))
	}

	if r.CalibrationError != nil {
		lines = append(lines, "", fmt.Sprintf("Calibration Error (ECE): %.3f", *r.CalibrationError))
	}

	return strings.Join(lines, "\n")
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
