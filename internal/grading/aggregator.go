package grading

import (
	"github.com/bdschi1/fin-reasoning-eval/internal/domain"
)

// Aggregator collects graded predictions for one evaluation run and
// derives accuracy, reasoning-quality and calibration statistics.
//
// Not thread-safe by design: instantiate one aggregator per evaluation
// run (or one per worker goroutine, merged afterwards via Merge).
type Aggregator struct {
	matcher     *Matcher
	scorer      *ReasoningScorer
	bins        int
	predictions []domain.GradedPrediction
}

func NewAggregator() *Aggregator {
	return NewAggregatorWith(DefaultTolerance, DefaultCalibrationBins)
}

// NewAggregatorWith sets the fallback numeric tolerance and the number
// of calibration bins. Non-positive values fall back to the defaults.
func NewAggregatorWith(tolerance float64, bins int) *Aggregator {
	if bins <= 0 {
		bins = DefaultCalibrationBins
	}
	return &Aggregator{
		matcher: NewMatcherWith(tolerance),
		scorer:  NewReasoningScorer(),
		bins:    bins,
	}
}

// Add grades one model response against its problem and records the
// outcome. Grading is total: malformed answers record as incorrect.
func (a *Aggregator) Add(problem *domain.Problem, resp *domain.ModelResponse) {
	isCorrect := a.matcher.IsCorrect(
		resp.PredictedAnswer, problem.CorrectAnswer, problem.AnswerType, problem.Tolerance)

	a.predictions = append(a.predictions, domain.GradedPrediction{
		ProblemID:       problem.ID,
		PredictedAnswer: resp.PredictedAnswer,
		CorrectAnswer:   problem.CorrectAnswer,
		IsCorrect:       isCorrect,
		Category:        string(problem.Category),
		Difficulty:      string(problem.Difficulty),
		Reasoning:       resp.Reasoning,
		Confidence:      resp.Confidence,
		LatencyMs:       resp.LatencyMs,
	})
}

// AddBatch joins responses to problems by problem id. Responses with no
// matching problem are silently dropped: batches may legitimately be
// partial, and an unmatched response is missing data, not a failure.
func (a *Aggregator) AddBatch(responses []domain.ModelResponse, problems []domain.Problem) {
	refs := make(map[string]*domain.Problem, len(problems))
	for i := range problems {
		refs[problems[i].ID] = &problems[i]
	}

	for i := range responses {
		ref, ok := refs[responses[i].ProblemID]
		if !ok {
			continue
		}
		a.Add(ref, &responses[i])
	}
}

// Merge appends the predictions collected by another aggregator. All
// derived statistics are order-independent reductions, so merging
// partitioned aggregators yields exactly the sequential result.
func (a *Aggregator) Merge(other *Aggregator) {
	a.predictions = append(a.predictions, other.predictions...)
}

// Predictions returns the graded predictions in insertion order.
func (a *Aggregator) Predictions() []domain.GradedPrediction {
	return a.predictions
}

func (a *Aggregator) Len() int {
	return len(a.predictions)
}

// Reset discards all collected predictions.
func (a *Aggregator) Reset() {
	a.predictions = nil
}

// Compute derives the aggregate result in a single pass. Zero
// predictions produce a well-formed zeroed result, never an error.
// Slice accuracies only appear for keys with at least one prediction.
func (a *Aggregator) Compute() *domain.AggregateResult {
	result := &domain.AggregateResult{
		CategoryAccuracy:   make(map[string]float64),
		DifficultyAccuracy: make(map[string]float64),
	}

	if len(a.predictions) == 0 {
		return result
	}

	categoryTotal := make(map[string]int)
	categoryCorrect := make(map[string]int)
	difficultyTotal := make(map[string]int)
	difficultyCorrect := make(map[string]int)

	var reasoningTexts []string
	var confidencePairs []ConfidencePair
	var correct int

	for _, p := range a.predictions {
		categoryTotal[p.Category]++
		difficultyTotal[p.Difficulty]++
		if p.IsCorrect {
			correct++
			categoryCorrect[p.Category]++
			difficultyCorrect[p.Difficulty]++
		}
		if p.Reasoning != "" {
			reasoningTexts = append(reasoningTexts, p.Reasoning)
		}
		if p.Confidence != nil {
			confidencePairs = append(confidencePairs, ConfidencePair{
				Confidence: *p.Confidence,
				IsCorrect:  p.IsCorrect,
			})
		}
	}

	result.TotalExamples = len(a.predictions)
	result.CorrectCount = correct
	result.OverallAccuracy = float64(correct) / float64(len(a.predictions))

	for cat, total := range categoryTotal {
		result.CategoryAccuracy[cat] = float64(categoryCorrect[cat]) / float64(total)
	}
	for diff, total := range difficultyTotal {
		result.DifficultyAccuracy[diff] = float64(difficultyCorrect[diff]) / float64(total)
	}

	if mean, ok := a.scorer.MeanScore(reasoningTexts); ok {
		result.ReasoningQuality = &mean
	}

	if len(confidencePairs) > 0 {
		ece := ExpectedCalibrationError(confidencePairs, a.bins)
		result.CalibrationError = &ece
	}

	return result
}
