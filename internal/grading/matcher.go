package grading

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/bdschi1/fin-reasoning-eval/internal/domain"
)

// DefaultTolerance is the relative tolerance applied to numeric answers
// when the problem does not specify one.
const DefaultTolerance = 0.01

var (
	numberRe       = regexp.MustCompile(`-?\d+\.?\d*`)
	plusDollarRe   = regexp.MustCompile(`\+\$(\d)`)
	dollarPlusRe   = regexp.MustCompile(`\$\+(\d)`)
	minusDollarRe  = regexp.MustCompile(`-\$(\d)`)
	letterWordRe   = regexp.MustCompile(`\b([A-Da-d])\b`)
	letterPrefixRe = regexp.MustCompile(`^([A-Da-d])[.)\s:]`)
)

var answerPrefixes = []string{"the answer is", "answer:", "my answer is", "i choose"}

var (
	trueValues  = map[string]bool{"true": true, "yes": true, "1": true, "correct": true}
	falseValues = map[string]bool{"false": true, "no": true, "0": true, "incorrect": true}
)

// Matcher decides whether a free-form predicted answer matches a
// reference answer. All methods are total: malformed input grades as
// incorrect, never as an error.
type Matcher struct {
	defaultTolerance float64
}

func NewMatcher() *Matcher {
	return &Matcher{defaultTolerance: DefaultTolerance}
}

// NewMatcherWith overrides the fallback numeric tolerance. Non-positive
// values fall back to DefaultTolerance.
func NewMatcherWith(tolerance float64) *Matcher {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Matcher{defaultTolerance: tolerance}
}

// IsCorrect dispatches on the problem's answer type. A nil or
// non-positive tolerance falls back to the matcher's default.
func (m *Matcher) IsCorrect(predicted, reference string, answerType domain.AnswerType, tolerance *float64) bool {
	switch answerType {
	case domain.AnswerTypeNumeric:
		tol := m.defaultTolerance
		if tolerance != nil && *tolerance > 0 {
			tol = *tolerance
		}
		return m.checkNumeric(predicted, reference, tol)
	case domain.AnswerTypeBoolean:
		return m.checkBoolean(predicted, reference)
	default:
		return m.checkText(predicted, reference)
	}
}

func (m *Matcher) checkNumeric(predicted, reference string, tolerance float64) bool {
	predVal, predOK := extractNumber(predicted)
	refVal, refOK := extractNumber(reference)

	if !predOK || !refOK {
		return false
	}

	if refVal == 0 {
		return abs(predVal) < tolerance
	}

	return abs(predVal-refVal)/abs(refVal) <= tolerance
}

// extractNumber pulls the first signed decimal out of text after
// stripping common financial formatting.
func extractNumber(text string) (float64, bool) {
	text = strings.NewReplacer(",", "", "$", "", "%", "").Replace(text)

	match := numberRe.FindString(text)
	if match == "" {
		return 0, false
	}

	val, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return val, true
}

// checkBoolean maps both sides onto a fixed true/false vocabulary. A
// prediction outside both vocabularies is always incorrect regardless
// of the reference: ambiguous answers never get credit.
func (m *Matcher) checkBoolean(predicted, reference string) bool {
	pred := strings.ToLower(strings.TrimSpace(predicted))
	ref := strings.ToLower(strings.TrimSpace(reference))

	if !trueValues[pred] && !falseValues[pred] {
		return false
	}

	return trueValues[pred] == trueValues[ref]
}

// textRule is one step of the ordered text-matching chain. It reports
// whether it could decide the pair, and if so, the verdict. The first
// rule that decides wins.
type textRule struct {
	name   string
	decide func(predicted, reference string) (correct, decided bool)
}

// textRules is evaluated in order: exact match, then reference
// contained in a verbose prediction, then option-letter comparison.
var textRules = []textRule{
	{
		name: "exact",
		decide: func(predicted, reference string) (bool, bool) {
			if normalizeAnswer(predicted) == normalizeAnswer(reference) {
				return true, true
			}
			return false, false
		},
	},
	{
		name: "substring",
		decide: func(predicted, reference string) (bool, bool) {
			if strings.Contains(normalizeAnswer(predicted), normalizeAnswer(reference)) {
				return true, true
			}
			return false, false
		},
	},
	{
		name: "letter",
		decide: func(predicted, reference string) (bool, bool) {
			predLetter := extractOptionLetter(predicted)
			refLetter := extractOptionLetter(reference)
			if predLetter != "" && refLetter != "" {
				return predLetter == refLetter, true
			}
			return false, false
		},
	},
}

func (m *Matcher) checkText(predicted, reference string) bool {
	for _, rule := range textRules {
		if correct, decided := rule.decide(predicted, reference); decided {
			return correct
		}
	}
	return false
}

// normalizeAnswer lowercases, strips answer-prefix phrases and edge
// punctuation, and canonicalizes signed currency so that +$38M, $+38M
// and $38M-style variants compare equal.
func normalizeAnswer(answer string) string {
	answer = strings.ToLower(strings.TrimSpace(answer))

	for _, prefix := range answerPrefixes {
		if strings.HasPrefix(answer, prefix) {
			answer = strings.TrimSpace(answer[len(prefix):])
		}
	}

	answer = strings.Trim(answer, ".,!?:;")

	// Explicit plus is dropped so +$38m, $+38m and $38m all compare
	// equal; negative amounts canonicalize to the $-38m form.
	answer = plusDollarRe.ReplaceAllString(answer, "$$$1")
	answer = dollarPlusRe.ReplaceAllString(answer, "$$$1")
	answer = minusDollarRe.ReplaceAllString(answer, "$$-$1")

	return answer
}

// extractOptionLetter finds a standalone option letter A-D. The
// word-boundary form is tried before the leading "A." / "B)" form;
// this precedence is intentional and relied on by graded datasets.
func extractOptionLetter(text string) string {
	if m := letterWordRe.FindStringSubmatch(text); m != nil {
		return strings.ToUpper(m[1])
	}
	if m := letterPrefixRe.FindStringSubmatch(text); m != nil {
		return strings.ToUpper(m[1])
	}
	return ""
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
