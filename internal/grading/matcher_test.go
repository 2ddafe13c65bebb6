package grading

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bdschi1/fin-reasoning-eval/internal/domain"
)

func tol(v float64) *float64 { return &v }

func TestNumericWithinTolerance(t *testing.T) {
	m := NewMatcher()

	tests := []struct {
		name      string
		predicted string
		reference string
		tolerance *float64
		want      bool
	}{
		{"exact value", "42", "42", nil, true},
		{"just inside default tolerance", "100.9", "100", nil, true},
		{"just outside default tolerance", "101.1", "100", nil, false},
		{"custom tolerance accepts", "105", "100", tol(0.05), true},
		{"custom tolerance rejects", "106", "100", tol(0.05), false},
		{"currency and commas stripped", "$1,234.5", "1234.5", nil, true},
		{"percent stripped", "12.5%", "12.5", nil, true},
		{"negative values", "-50", "-50.2", nil, true},
		{"sign mismatch", "-100", "100", nil, false},
		{"first number wins", "revenue grew 12% to 500", "12", nil, true},
		{"unparseable prediction", "no idea", "42", nil, false},
		{"unparseable reference", "42", "n/a", nil, false},
		{"both empty", "", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.IsCorrect(tt.predicted, tt.reference, domain.AnswerTypeNumeric, tt.tolerance)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNumericToleranceSymmetry(t *testing.T) {
	m := NewMatcher()

	// For r != 0, r*(1+tol-eps) is accepted and r*(1+tol+eps) is not.
	const eps = 0.001
	for _, ref := range []string{"200", "-75", "0.5"} {
		refVal, ok := extractNumber(ref)
		assert.True(t, ok)

		inside := formatFloat(refVal * (1 + DefaultTolerance - eps))
		outside := formatFloat(refVal * (1 + DefaultTolerance + eps))

		assert.True(t, m.IsCorrect(inside, ref, domain.AnswerTypeNumeric, nil), "ref=%s inside=%s", ref, inside)
		assert.False(t, m.IsCorrect(outside, ref, domain.AnswerTypeNumeric, nil), "ref=%s outside=%s", ref, outside)
	}
}

func TestNumericZeroReference(t *testing.T) {
	m := NewMatcher()

	// |p| < tolerance is the acceptance rule when the reference is 0.
	assert.True(t, m.IsCorrect("0.005", "0", domain.AnswerTypeNumeric, nil))
	assert.True(t, m.IsCorrect("-0.005", "0", domain.AnswerTypeNumeric, nil))
	assert.False(t, m.IsCorrect("0.02", "0", domain.AnswerTypeNumeric, nil))
	assert.False(t, m.IsCorrect("0.01", "0", domain.AnswerTypeNumeric, nil)) // strict inequality
}

func TestBoolean(t *testing.T) {
	m := NewMatcher()

	tests := []struct {
		name      string
		predicted string
		reference string
		want      bool
	}{
		{"yes matches true", "yes", "true", true},
		{"no matches false", "no", "false", true},
		{"1 matches true", "1", "true", true},
		{"0 matches false", "0", "false", true},
		{"correct matches true", "Correct", "true", true},
		{"incorrect matches false", "INCORRECT", "false", true},
		{"true vs false", "true", "false", false},
		{"whitespace trimmed", "  Yes  ", "true", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.IsCorrect(tt.predicted, tt.reference, domain.AnswerTypeBoolean, nil)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBooleanAmbiguousAlwaysWrong(t *testing.T) {
	m := NewMatcher()

	// A prediction outside both vocabularies is wrong no matter what
	// the reference says. Deliberate conservative policy.
	for _, pred := range []string{"maybe", "probably true", "it depends", ""} {
		assert.False(t, m.IsCorrect(pred, "true", domain.AnswerTypeBoolean, nil), "pred=%q", pred)
		assert.False(t, m.IsCorrect(pred, "false", domain.AnswerTypeBoolean, nil), "pred=%q", pred)
	}
}

func TestTextMatching(t *testing.T) {
	m := NewMatcher()

	tests := []struct {
		name      string
		predicted string
		reference string
		want      bool
	}{
		{"exact after normalization", "Beat by 12%", "beat by 12%", true},
		{"prefix stripped", "The answer is beat by 12%", "beat by 12%", true},
		{"answer colon prefix", "Answer: margin expansion", "margin expansion", true},
		{"substring in verbose response", "I believe the answer is beat by 12%", "beat by 12%", true},
		{"edge punctuation stripped", "margin expansion.", "margin expansion", true},
		{"plain mismatch", "miss by 5%", "beat by 12%", false},
		{"empty prediction", "", "beat by 12%", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.IsCorrect(tt.predicted, tt.reference, domain.AnswerTypeMultipleChoice, nil)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTextLetterTieBreak(t *testing.T) {
	m := NewMatcher()

	// Substrings differ, but the standalone option letter decides.
	assert.True(t, m.IsCorrect("B. Margin expansion", "B", domain.AnswerTypeMultipleChoice, nil))
	assert.True(t, m.IsCorrect("I choose C", "C) Higher leverage", domain.AnswerTypeMultipleChoice, nil))
	assert.False(t, m.IsCorrect("A. Margin expansion", "B", domain.AnswerTypeMultipleChoice, nil))
}

func TestFinancialSignNormalization(t *testing.T) {
	m := NewMatcher()

	// All implicit-positive variants are interchangeable.
	for _, pred := range []string{"+$38M", "$+38M", "$38M"} {
		assert.True(t, m.IsCorrect(pred, "$38M", domain.AnswerTypeMultipleChoice, nil), "pred=%q", pred)
		assert.True(t, m.IsCorrect("$38M", pred, domain.AnswerTypeMultipleChoice, nil), "ref=%q", pred)
	}

	assert.True(t, m.IsCorrect("-$38M", "$-38M", domain.AnswerTypeMultipleChoice, nil))
	assert.False(t, m.IsCorrect("-$38M", "$38M", domain.AnswerTypeMultipleChoice, nil))
}

func TestExtractOptionLetter(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"B", "B"},
		{"b", "B"},
		{"B. Margin expansion", "B"},
		{"(choose A)", "A"},
		{"D: because leverage", "D"},
		{"no letters here", ""},
		{"BOLD", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, extractOptionLetter(tt.text), "text=%q", tt.text)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
