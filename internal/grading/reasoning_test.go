package grading

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReasoningScoreRange(t *testing.T) {
	s := NewReasoningScorer()

	texts := []string{
		"The margin went up.",
		"Step 1: calculate EBITDA margin = 200/1000. Therefore the ratio improved because revenue grew. However, there is a risk this assumption fails.",
		strings.Repeat("filler text without any signal ", 20),
	}

	for _, text := range texts {
		score := s.Score(text)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 5.0)
	}
}

func TestReasoningScoreFullCredit(t *testing.T) {
	s := NewReasoningScorer()

	// Hits all five checks: operator, two concepts, two step markers,
	// both length thresholds, an awareness marker.
	text := "Step 1: calculate the EBITDA margin = 200/1000 = 20%. " +
		"Step 2: compare against the prior-year margin of 18%, therefore margin expanded. " +
		"The ratio improvement is driven by operating leverage on growing revenue, " +
		"and the DCF valuation supports the move. However, note that this rests on the " +
		"assumption that one-time items are excluded, which is a risk if the accrual " +
		"quality deteriorates over the coming quarters of the forecast period here."

	require.Greater(t, len(text), 300)
	assert.InDelta(t, 5.0, s.Score(text), 1e-9)
}

func TestReasoningScoreNoSignals(t *testing.T) {
	s := NewReasoningScorer()

	// 20 < len <= 100, no keywords: zero across the board.
	text := "qqq www eee rrr ttt yyy uuu"
	require.True(t, s.Qualifies(text))
	assert.Equal(t, 0.0, s.Score(text))
}

func TestReasoningScoreDeterministic(t *testing.T) {
	s := NewReasoningScorer()

	text := "First compute the working capital ratio, then compare leverage. However the assumption may not hold."
	assert.Equal(t, s.Score(text), s.Score(text))
}

func TestQualifiesCutoff(t *testing.T) {
	s := NewReasoningScorer()

	assert.False(t, s.Qualifies(""))
	assert.False(t, s.Qualifies(strings.Repeat("a", 20)))
	assert.True(t, s.Qualifies(strings.Repeat("a", 21)))
}

func TestMeanScoreSkipsShortTexts(t *testing.T) {
	s := NewReasoningScorer()

	long := "Step 1: calculate margin = 10%. Therefore the ratio is stable because leverage fell. However there is risk."
	mean, ok := s.MeanScore([]string{"too short", long})
	require.True(t, ok)
	assert.InDelta(t, s.Score(long), mean, 0.005)

	_, ok = s.MeanScore([]string{"too short", ""})
	assert.False(t, ok)
}

func TestMeanScoreRounding(t *testing.T) {
	s := NewReasoningScorer()

	// Mean is reported to two decimals.
	text := "The margin ratio improved, therefore results beat, because revenue grew faster than cost."
	mean, ok := s.MeanScore([]string{text, text, text})
	require.True(t, ok)
	assert.Equal(t, mean, float64(int(mean*100+0.5))/100)
}
