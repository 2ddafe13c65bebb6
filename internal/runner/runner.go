// Package runner executes a model over a benchmark problem set and
// feeds the graded results into the metrics aggregator.
package runner

import (
	"context"
	"log"
	"sync"

	"github.com/bdschi1/fin-reasoning-eval/internal/dataset"
	"github.com/bdschi1/fin-reasoning-eval/internal/domain"
	"github.com/bdschi1/fin-reasoning-eval/internal/grading"
	"github.com/bdschi1/fin-reasoning-eval/internal/llm"
)

const systemPrompt = "You are a financial analyst answering benchmark questions. " +
	"Work through the problem step by step, then respond with the requested JSON object only."

// Completer is the slice of the LLM client the runner needs.
type Completer interface {
	CompleteWithProvider(ctx context.Context, provider string, req *llm.CompletionRequest) (*llm.CompletionResponse, error)
}

// Options select the model and execution parameters for one run.
type Options struct {
	Provider    string
	Model       string
	MaxTokens   int
	Temperature float64
	Concurrency int

	// Grading overrides; zero values use the grading defaults.
	Tolerance       float64
	CalibrationBins int
}

// Stats accumulates token usage and failure counts across a run.
type Stats struct {
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	TotalTokens      int     `json:"total_tokens"`
	APIFailures      int     `json:"api_failures"`
	AvgLatencyMs     float64 `json:"avg_latency_ms"`
}

func (s *Stats) merge(other *Stats) {
	s.PromptTokens += other.PromptTokens
	s.CompletionTokens += other.CompletionTokens
	s.TotalTokens += other.TotalTokens
	s.APIFailures += other.APIFailures
}

// Result is the outcome of one evaluation run.
type Result struct {
	Aggregate   *domain.AggregateResult
	Predictions []domain.GradedPrediction
	Stats       Stats
}

type Runner struct {
	client Completer
}

func New(client Completer) *Runner {
	return &Runner{client: client}
}

// Run sends every problem to the model and grades the responses.
// Problems are fanned out over a bounded worker pool; each worker
// grades into its own aggregator and the partitions are merged at the
// end, which yields exactly the sequential statistics. API failures
// are logged and excluded from the graded set rather than counted as
// wrong answers.
func (r *Runner) Run(ctx context.Context, problems []domain.Problem, opts Options) (*Result, error) {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	if concurrency > len(problems) && len(problems) > 0 {
		concurrency = len(problems)
	}

	jobs := make(chan *domain.Problem)
	partitions := make([]*grading.Aggregator, concurrency)
	partStats := make([]*Stats, concurrency)
	latencySums := make([]float64, concurrency)

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		partitions[i] = grading.NewAggregatorWith(opts.Tolerance, opts.CalibrationBins)
		partStats[i] = &Stats{}

		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for p := range jobs {
				resp, err := r.answer(ctx, p, opts)
				if err != nil {
					log.Printf("run: problem %s failed: %v", p.ID, err)
					partStats[worker].APIFailures++
					continue
				}
				latencySums[worker] += *resp.LatencyMs
				partStats[worker].PromptTokens += resp.promptTokens
				partStats[worker].CompletionTokens += resp.completionTokens
				partStats[worker].TotalTokens += resp.TokensUsed
				partitions[worker].Add(p, &resp.ModelResponse)
			}
		}(i)
	}

	for i := range problems {
		select {
		case jobs <- &problems[i]:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()

	merged := partitions[0]
	stats := partStats[0]
	var latencySum float64 = latencySums[0]
	for i := 1; i < concurrency; i++ {
		merged.Merge(partitions[i])
		stats.merge(partStats[i])
		latencySum += latencySums[i]
	}

	if merged.Len() > 0 {
		stats.AvgLatencyMs = latencySum / float64(merged.Len())
	}

	return &Result{
		Aggregate:   merged.Compute(),
		Predictions: merged.Predictions(),
		Stats:       *stats,
	}, nil
}

type answeredResponse struct {
	domain.ModelResponse
	promptTokens     int
	completionTokens int
}

func (r *Runner) answer(ctx context.Context, p *domain.Problem, opts Options) (*answeredResponse, error) {
	completion, err := r.client.CompleteWithProvider(ctx, opts.Provider, &llm.CompletionRequest{
		Model:       opts.Model,
		System:      systemPrompt,
		Prompt:      dataset.FormatPrompt(p, true),
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
		JSONMode:    true,
	})
	if err != nil {
		return nil, err
	}

	answer, reasoning, confidence := parseAnswer(completion.Content)
	latencyMs := float64(completion.Latency.Milliseconds())

	return &answeredResponse{
		ModelResponse: domain.ModelResponse{
			ProblemID:       p.ID,
			PredictedAnswer: answer,
			Reasoning:       reasoning,
			Confidence:      confidence,
			LatencyMs:       &latencyMs,
			TokensUsed:      completion.Usage.TotalTokens,
		},
		promptTokens:     completion.Usage.PromptTokens,
		completionTokens: completion.Usage.CompletionTokens,
	}, nil
}
