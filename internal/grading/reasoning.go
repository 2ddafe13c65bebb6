package grading

import (
	"math"
	"strings"
)

// minReasoningLength is the cutoff below which reasoning text is
// treated as "not provided" and excluded from quality scoring.
const minReasoningLength = 20

var operatorTokens = []string{"=", "×", "÷", "/", "*", "calculate"}

var financialConcepts = []string{
	"margin", "ratio", "growth", "dcf", "ebitda", "eps", "revenue",
	"cash flow", "working capital", "leverage", "coverage", "valuation",
	"discount", "terminal", "wacc", "roe", "roic", "dupont",
	"accrual", "red flag", "related party", "earnings",
}

var stepMarkers = []string{
	"step 1", "step 2", "first", "second", "next", "then",
	"therefore", "thus", "because", "since", "given that",
	"1.", "2.", "3.",
}

var awarenessMarkers = []string{
	"however", "although", "risk", "assumption", "caveat",
	"note that", "important", "consider", "alternatively",
	"potential", "concern", "limitation", "may not", "could",
}

// ReasoningScorer assigns a 0-5 quality score to free-text reasoning
// using keyword and structure signals. It approximates rubric coverage;
// it does not judge whether the reasoning is actually sound.
type ReasoningScorer struct{}

func NewReasoningScorer() *ReasoningScorer {
	return &ReasoningScorer{}
}

// Qualifies reports whether the reasoning text is long enough to score.
func (s *ReasoningScorer) Qualifies(reasoning string) bool {
	return len(reasoning) > minReasoningLength
}

// Score runs five independent checks, each worth up to one point, and
// rescales the sum to a 5-point scale. Deterministic for a given input.
func (s *ReasoningScorer) Score(reasoning string) float64 {
	text := strings.ToLower(reasoning)
	var score float64
	var checks int

	// Shows intermediate calculations.
	if containsAny(text, operatorTokens) {
		score += 1.0
	}
	checks++

	// Names at least two distinct financial concepts.
	if countContained(text, financialConcepts) >= 2 {
		score += 1.0
	}
	checks++

	// Steps follow a logical sequence.
	if countContained(text, stepMarkers) >= 2 {
		score += 1.0
	}
	checks++

	// Adequate length, in two increments.
	if len(text) > 100 {
		score += 0.5
	}
	if len(text) > 300 {
		score += 0.5
	}
	checks++

	// Acknowledges risks, assumptions or alternatives.
	if containsAny(text, awarenessMarkers) {
		score += 1.0
	}
	checks++

	return (score / float64(checks)) * 5.0
}

// MeanScore averages Score over the qualifying texts, rounded to two
// decimals. The second return is false when no text qualifies.
func (s *ReasoningScorer) MeanScore(texts []string) (float64, bool) {
	var total float64
	var count int

	for _, t := range texts {
		if !s.Qualifies(t) {
			continue
		}
		total += s.Score(t)
		count++
	}

	if count == 0 {
		return 0, false
	}
	return math.Round(total/float64(count)*100) / 100, true
}

func containsAny(text string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(text, tok) {
			return true
		}
	}
	return false
}

func countContained(text string, tokens []string) int {
	var n int
	for _, tok := range tokens {
		if strings.Contains(text, tok) {
			n++
		}
	}
	return n
}
