// Package leaderboard validates benchmark submissions and turns run
// results into leaderboard entries.
package leaderboard

import (
	"fmt"
	"strings"

	"github.com/bdschi1/fin-reasoning-eval/internal/domain"
)

// Submission is a request to place a model on the leaderboard. Metrics
// normally come straight from a completed run's aggregate result.
type Submission struct {
	ModelName    string                  `json:"model_name"`
	ModelVersion string                  `json:"model_version,omitempty"`
	Organization string                  `json:"organization,omitempty"`
	Metrics      *domain.AggregateResult `json:"metrics"`
	AvgLatencyMs *float64                `json:"avg_latency_ms,omitempty"`
	SubmittedBy  string                  `json:"submitted_by,omitempty"`
	Notes        string                  `json:"notes,omitempty"`
}

// Validate checks the submission and returns every problem found, not
// just the first. An empty slice means the submission is acceptable.
func Validate(s *Submission) []string {
	var errs []string

	if strings.TrimSpace(s.ModelName) == "" {
		errs = append(errs, "missing required field: model_name")
	}

	if s.Metrics == nil {
		errs = append(errs, "missing required field: metrics")
		return errs
	}

	if s.Metrics.OverallAccuracy < 0 || s.Metrics.OverallAccuracy > 1 {
		errs = append(errs, fmt.Sprintf("invalid overall_accuracy: %g (must be 0-1)", s.Metrics.OverallAccuracy))
	}

	if s.Metrics.TotalExamples <= 0 {
		errs = append(errs, fmt.Sprintf("invalid total_examples: %d (must be > 0)", s.Metrics.TotalExamples))
	}

	return errs
}

// NewEntry converts a validated submission into a leaderboard entry.
func NewEntry(s *Submission) (*domain.LeaderboardEntry, error) {
	if errs := Validate(s); len(errs) > 0 {
		return nil, fmt.Errorf("invalid submission: %s", strings.Join(errs, "; "))
	}

	return &domain.LeaderboardEntry{
		ModelName:          s.ModelName,
		ModelVersion:       s.ModelVersion,
		Organization:       s.Organization,
		OverallAccuracy:    s.Metrics.OverallAccuracy,
		TotalExamples:      s.Metrics.TotalExamples,
		CategoryAccuracy:   s.Metrics.CategoryAccuracy,
		DifficultyAccuracy: s.Metrics.DifficultyAccuracy,
		ReasoningQuality:   s.Metrics.ReasoningQuality,
		CalibrationError:   s.Metrics.CalibrationError,
		AvgLatencyMs:       s.AvgLatencyMs,
		SubmittedBy:        s.SubmittedBy,
		Notes:              s.Notes,
	}, nil
}

// EntryFromRun builds a submission entry directly from a completed run.
func EntryFromRun(run *domain.EvaluationRun) (*domain.LeaderboardEntry, error) {
	if run.Result == nil {
		return nil, fmt.Errorf("run %s has no result", run.ID)
	}

	return NewEntry(&Submission{
		ModelName:    run.Model,
		ModelVersion: run.Provider,
		Metrics:      run.Result,
		AvgLatencyMs: run.AvgLatencyMs,
		Notes:        fmt.Sprintf("run %s", run.ID),
	})
}
