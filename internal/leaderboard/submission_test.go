package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdschi1/fin-reasoning-eval/internal/domain"
)

func validSubmission() *Submission {
	return &Submission{
		ModelName:    "gpt-4o-mini",
		ModelVersion: "2024-07",
		Metrics: &domain.AggregateResult{
			TotalExamples:      50,
			OverallAccuracy:    0.72,
			CategoryAccuracy:   map[string]float64{"earnings_surprise": 0.8},
			DifficultyAccuracy: map[string]float64{"medium": 0.7},
		},
	}
}

func TestValidateAccepts(t *testing.T) {
	assert.Empty(t, Validate(validSubmission()))
}

func TestValidateCollectsAllErrors(t *testing.T) {
	s := &Submission{
		ModelName: "  ",
		Metrics: &domain.AggregateResult{
			OverallAccuracy: 1.5,
			TotalExamples:   0,
		},
	}

	errs := Validate(s)
	require.Len(t, errs, 3)
	assert.Contains(t, errs[0], "model_name")
	assert.Contains(t, errs[1], "overall_accuracy")
	assert.Contains(t, errs[2], "total_examples")
}

func TestValidateMissingMetrics(t *testing.T) {
	errs := Validate(&Submission{ModelName: "m"})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "metrics")
}

func TestNewEntryCarriesMetrics(t *testing.T) {
	s := validSubmission()
	s.Organization = "acme"

	entry, err := NewEntry(s)
	require.NoError(t, err)

	assert.Equal(t, 0.72, entry.OverallAccuracy)
	assert.Equal(t, 50, entry.TotalExamples)
	assert.Equal(t, map[string]float64{"earnings_surprise": 0.8}, entry.CategoryAccuracy)
	assert.Equal(t, "acme/gpt-4o-mini", entry.DisplayName())
}

func TestNewEntryRejectsInvalid(t *testing.T) {
	_, err := NewEntry(&Submission{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid submission")
}

func TestEntryFromRun(t *testing.T) {
	latency := 120.5
	run := &domain.EvaluationRun{
		ID:       "run-1",
		Provider: "ollama",
		Model:    "llama3.1:8b",
		Result: &domain.AggregateResult{
			TotalExamples:   10,
			OverallAccuracy: 0.5,
		},
		AvgLatencyMs: &latency,
	}

	entry, err := EntryFromRun(run)
	require.NoError(t, err)
	assert.Equal(t, "llama3.1:8b", entry.ModelName)
	assert.Equal(t, "ollama", entry.ModelVersion)
	require.NotNil(t, entry.AvgLatencyMs)
	assert.Equal(t, 120.5, *entry.AvgLatencyMs)
}

func TestEntryFromRunRequiresResult(t *testing.T) {
	_, err := EntryFromRun(&domain.EvaluationRun{ID: "run-2"})
	assert.Error(t, err)
}
