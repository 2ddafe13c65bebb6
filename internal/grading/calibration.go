package grading

import "math"

// DefaultCalibrationBins is the standard bin count for ECE.
const DefaultCalibrationBins = 10

// ConfidencePair couples a stated confidence in [0,1] with whether the
// prediction it accompanied was correct.
type ConfidencePair struct {
	Confidence float64
	IsCorrect  bool
}

// ExpectedCalibrationError computes ECE over nBins fixed-width
// confidence buckets: the count-weighted mean of |accuracy - mean
// confidence| across non-empty buckets. A confidence of exactly 1.0 is
// clamped into the last bucket. Empty input returns 0.0 by convention;
// callers that need to distinguish "no data" from "perfectly
// calibrated" must check the pair count themselves.
func ExpectedCalibrationError(pairs []ConfidencePair, nBins int) float64 {
	if len(pairs) == 0 {
		return 0.0
	}
	if nBins <= 0 {
		nBins = DefaultCalibrationBins
	}

	binCount := make([]int, nBins)
	binCorrect := make([]int, nBins)
	binConfSum := make([]float64, nBins)

	for _, p := range pairs {
		idx := int(p.Confidence * float64(nBins))
		if idx > nBins-1 {
			idx = nBins - 1
		}
		if idx < 0 {
			idx = 0
		}
		binCount[idx]++
		if p.IsCorrect {
			binCorrect[idx]++
		}
		binConfSum[idx] += p.Confidence
	}

	var ece float64
	total := float64(len(pairs))

	for i := 0; i < nBins; i++ {
		if binCount[i] == 0 {
			continue
		}
		avgConf := binConfSum[i] / float64(binCount[i])
		avgAcc := float64(binCorrect[i]) / float64(binCount[i])
		ece += (float64(binCount[i]) / total) * math.Abs(avgAcc-avgConf)
	}

	return ece
}
