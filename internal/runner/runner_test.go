package runner

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdschi1/fin-reasoning-eval/internal/domain"
	"github.com/bdschi1/fin-reasoning-eval/internal/llm"
)

type fakeCompleter struct {
	mu        sync.Mutex
	calls     int
	responses map[string]string // prompt substring -> content
	failOn    string
}

func (f *fakeCompleter) CompleteWithProvider(ctx context.Context, provider string, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	for needle, content := range f.responses {
		if needle != "" && strings.Contains(req.Prompt, needle) {
			if needle == f.failOn {
				return nil, fmt.Errorf("upstream 503")
			}
			return &llm.CompletionResponse{
				Content:   content,
				ModelName: req.Model,
				Usage:     llm.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
				Latency:   20 * time.Millisecond,
			}, nil
		}
	}
	return &llm.CompletionResponse{Content: `{"answer": "unknown"}`, Latency: time.Millisecond}, nil
}

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		name           string
		content        string
		wantAnswer     string
		wantReasoning  string
		wantConfidence *float64
	}{
		{
			name:           "strict json",
			content:        `{"answer": "B", "reasoning": "margin math", "confidence": 0.8}`,
			wantAnswer:     "B",
			wantReasoning:  "margin math",
			wantConfidence: ptr(0.8),
		},
		{
			name:       "json wrapped in prose",
			content:    "Here is my answer:\n```json\n{\"answer\": \"42.5\"}\n```",
			wantAnswer: "42.5",
		},
		{
			name:       "raw text fallback",
			content:    "  The answer is B.  ",
			wantAnswer: "The answer is B.",
		},
		{
			name:       "confidence out of range dropped",
			content:    `{"answer": "yes", "confidence": 1.5}`,
			wantAnswer: "yes",
		},
		{
			name:       "empty answer field falls back to raw",
			content:    `{"reasoning": "no answer given"}`,
			wantAnswer: `{"reasoning": "no answer given"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer, reasoning, confidence := parseAnswer(tt.content)
			assert.Equal(t, tt.wantAnswer, answer)
			assert.Equal(t, tt.wantReasoning, reasoning)
			if tt.wantConfidence == nil {
				assert.Nil(t, confidence)
			} else {
				require.NotNil(t, confidence)
				assert.Equal(t, *tt.wantConfidence, *confidence)
			}
		})
	}
}

func ptr(v float64) *float64 { return &v }

func benchProblems(n int) []domain.Problem {
	problems := make([]domain.Problem, 0, n)
	for i := 0; i < n; i++ {
		problems = append(problems, domain.Problem{
			ID:            fmt.Sprintf("p%02d", i),
			Category:      domain.CategoryEarningsSurprise,
			Difficulty:    domain.DifficultyMedium,
			Question:      fmt.Sprintf("marker-%02d what happened?", i),
			AnswerType:    domain.AnswerTypeMultipleChoice,
			CorrectAnswer: "beat",
		})
	}
	return problems
}

func TestRunGradesAllProblems(t *testing.T) {
	problems := benchProblems(6)

	fake := &fakeCompleter{responses: map[string]string{
		"marker-00": `{"answer": "beat", "confidence": 0.9}`,
		"marker-01": `{"answer": "beat"}`,
		"marker-02": `{"answer": "miss"}`,
		"marker-03": `{"answer": "beat"}`,
		"marker-04": `{"answer": "miss"}`,
		"marker-05": `{"answer": "beat"}`,
	}}

	result, err := New(fake).Run(context.Background(), problems, Options{
		Provider:    "fake",
		Model:       "test-model",
		Concurrency: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, 6, result.Aggregate.TotalExamples)
	assert.Equal(t, 4, result.Aggregate.CorrectCount)
	assert.Equal(t, 0, result.Stats.APIFailures)
	assert.Equal(t, 6*15, result.Stats.TotalTokens)
	assert.Len(t, result.Predictions, 6)
}

func TestRunExcludesAPIFailures(t *testing.T) {
	problems := benchProblems(3)

	fake := &fakeCompleter{
		responses: map[string]string{
			"marker-00": `{"answer": "beat"}`,
			"marker-01": `{"answer": "beat"}`,
			"marker-02": `{"answer": "beat"}`,
		},
		failOn: "marker-01",
	}

	result, err := New(fake).Run(context.Background(), problems, Options{Concurrency: 2})
	require.NoError(t, err)

	// The failed call is excluded from the graded denominator, not
	// zeroed into it.
	assert.Equal(t, 2, result.Aggregate.TotalExamples)
	assert.Equal(t, 2, result.Aggregate.CorrectCount)
	assert.Equal(t, 1, result.Stats.APIFailures)
}

func TestRunEmptyProblemSet(t *testing.T) {
	fake := &fakeCompleter{}

	result, err := New(fake).Run(context.Background(), nil, Options{Concurrency: 4})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Aggregate.TotalExamples)
	assert.Equal(t, 0, fake.calls)
}
