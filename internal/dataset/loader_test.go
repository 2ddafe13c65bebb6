package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdschi1/fin-reasoning-eval/internal/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "problems.json", `[
		{"id": "p1", "category": "earnings_surprise", "difficulty": "easy",
		 "question": "Did ACME beat?", "answer_type": "boolean", "correct_answer": "yes"},
		{"id": "p2", "category": "formula_audit", "difficulty": "hard",
		 "question": "Compute EPS", "answer_type": "numeric", "correct_answer": "2.5", "tolerance": 0.02}
	]`)

	problems, err := Load(path)
	require.NoError(t, err)
	require.Len(t, problems, 2)

	assert.Equal(t, domain.CategoryEarningsSurprise, problems[0].Category)
	assert.Equal(t, domain.AnswerTypeNumeric, problems[1].AnswerType)
	require.NotNil(t, problems[1].Tolerance)
	assert.Equal(t, 0.02, *problems[1].Tolerance)
}

func TestLoadJSONL(t *testing.T) {
	path := writeFile(t, "problems.jsonl",
		`{"id": "p1", "category": "valuation_analysis", "difficulty": "medium", "question": "q", "answer_type": "multiple_choice", "correct_answer": "B"}`+"\n"+
			"\n"+ // blank lines are skipped
			`{"id": "p2", "category": "risk_assessment", "difficulty": "expert", "question": "q", "answer_type": "free_text", "correct_answer": "duration risk"}`+"\n")

	problems, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, problems, 2)
}

func TestLoadRejectsBadData(t *testing.T) {
	dup := writeFile(t, "dup.json", `[
		{"id": "p1", "question": "q", "correct_answer": "a"},
		{"id": "p1", "question": "q", "correct_answer": "b"}
	]`)
	_, err := Load(dup)
	assert.ErrorContains(t, err, "duplicate problem id")

	noAnswer := writeFile(t, "noans.json", `[{"id": "p1", "question": "q"}]`)
	_, err = Load(noAnswer)
	assert.ErrorContains(t, err, "no correct answer")

	malformed := writeFile(t, "bad.jsonl", "{not json}\n")
	_, err = Load(malformed)
	assert.ErrorContains(t, err, "line 1")

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestFormatPrompt(t *testing.T) {
	p := &domain.Problem{
		ID:         "p1",
		Context:    "ACME reported revenue of $500M.",
		Question:   "What drove the beat?",
		AnswerType: domain.AnswerTypeMultipleChoice,
		AnswerOptions: []domain.AnswerOption{
			{ID: "A", Text: "Margin expansion"},
			{ID: "B", Text: "Revenue growth"},
		},
		CorrectAnswer: "B",
	}

	prompt := FormatPrompt(p, true)
	assert.Contains(t, prompt, "ACME reported revenue")
	assert.Contains(t, prompt, "Question:\nWhat drove the beat?")
	assert.Contains(t, prompt, "A. Margin expansion")
	assert.Contains(t, prompt, `"confidence"`)

	withoutOptions := FormatPrompt(p, false)
	assert.NotContains(t, withoutOptions, "Options:")
}
