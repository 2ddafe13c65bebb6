package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestECEEmptyInput(t *testing.T) {
	assert.Equal(t, 0.0, ExpectedCalibrationError(nil, DefaultCalibrationBins))
	assert.Equal(t, 0.0, ExpectedCalibrationError([]ConfidencePair{}, DefaultCalibrationBins))
}

func TestECEBounded(t *testing.T) {
	pairs := []ConfidencePair{
		{0.0, false}, {0.1, true}, {0.35, false}, {0.5, true},
		{0.72, false}, {0.9, true}, {0.99, false}, {1.0, true},
	}

	ece := ExpectedCalibrationError(pairs, DefaultCalibrationBins)
	assert.GreaterOrEqual(t, ece, 0.0)
	assert.LessOrEqual(t, ece, 1.0)
}

func TestECEPerfectCalibration(t *testing.T) {
	// Bin [0.7, 0.8): ten pairs at confidence 0.7, seven correct.
	var pairs []ConfidencePair
	for i := 0; i < 10; i++ {
		pairs = append(pairs, ConfidencePair{Confidence: 0.7, IsCorrect: i < 7})
	}

	ece := ExpectedCalibrationError(pairs, DefaultCalibrationBins)
	assert.InDelta(t, 0.0, ece, 1e-9)
}

func TestECEWorstCase(t *testing.T) {
	// Full confidence, always wrong.
	pairs := []ConfidencePair{{1.0, false}, {1.0, false}}

	ece := ExpectedCalibrationError(pairs, DefaultCalibrationBins)
	assert.InDelta(t, 1.0, ece, 1e-9)
}

func TestECETopEdgeClamped(t *testing.T) {
	// Confidence exactly 1.0 lands in the last bin rather than an
	// out-of-range eleventh bin.
	pairs := []ConfidencePair{{1.0, true}}

	assert.NotPanics(t, func() {
		ece := ExpectedCalibrationError(pairs, DefaultCalibrationBins)
		assert.InDelta(t, 0.0, ece, 1e-9)
	})
}

func TestECECountWeighting(t *testing.T) {
	// Two bins: 3 pairs at 0.25 all wrong (gap 0.25), 1 pair at 0.95
	// wrong (gap 0.95). ECE = 0.75*0.25 + 0.25*0.95.
	pairs := []ConfidencePair{
		{0.25, false}, {0.25, false}, {0.25, false},
		{0.95, false},
	}

	ece := ExpectedCalibrationError(pairs, DefaultCalibrationBins)
	assert.InDelta(t, 0.75*0.25+0.25*0.95, ece, 1e-9)
}

func TestECECustomBinCount(t *testing.T) {
	pairs := []ConfidencePair{{0.5, true}, {0.5, false}}

	// Two bins of width 0.5: conf 0.5 clamps... falls in the second
	// bin, avg conf 0.5, accuracy 0.5, gap 0.
	ece := ExpectedCalibrationError(pairs, 2)
	assert.InDelta(t, 0.0, ece, 1e-9)
}
