// Package dataset loads benchmark problem sets from JSON or JSONL
// files and formats problems as model prompts.
package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bdschi1/fin-reasoning-eval/internal/domain"
)

// Load reads a problem set from path. Files ending in .jsonl are read
// line by line; anything else is parsed as a single JSON array. A
// malformed dataset is a setup error and fails loudly.
func Load(path string) ([]domain.Problem, error) {
	if filepath.Ext(path) == ".jsonl" {
		return loadJSONL(path)
	}
	return loadJSON(path)
}

func loadJSON(path string) ([]domain.Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var problems []domain.Problem
	if err := json.Unmarshal(data, &problems); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}

	if err := validate(problems); err != nil {
		return nil, err
	}
	return problems, nil
}

func loadJSONL(path string) ([]domain.Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	var problems []domain.Problem
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var p domain.Problem
		if err := json.Unmarshal([]byte(line), &p); err != nil {
			return nil, fmt.Errorf("parse dataset %s line %d: %w", path, lineNo, err)
		}
		problems = append(problems, p)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan dataset: %w", err)
	}

	if err := validate(problems); err != nil {
		return nil, err
	}
	return problems, nil
}

func validate(problems []domain.Problem) error {
	seen := make(map[string]bool, len(problems))
	for i, p := range problems {
		if p.ID == "" {
			return fmt.Errorf("problem at index %d has no id", i)
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate problem id %q", p.ID)
		}
		if p.CorrectAnswer == "" {
			return fmt.Errorf("problem %s has no correct answer", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

// FormatPrompt renders a problem as a model prompt: context, question,
// options for multiple choice, and a structured-answer instruction.
func FormatPrompt(p *domain.Problem, includeOptions bool) string {
	var b strings.Builder

	if p.Context != "" {
		b.WriteString(p.Context)
		b.WriteString("\n\n")
	}

	b.WriteString("Question:\n")
	b.WriteString(p.Question)

	if includeOptions && len(p.AnswerOptions) > 0 {
		b.WriteString("\n\nOptions:\n")
		for _, opt := range p.AnswerOptions {
			fmt.Fprintf(&b, "%s. %s\n", opt.ID, opt.Text)
		}
	}

	b.WriteString("\nRespond with a JSON object: " +
		`{"answer": "<your answer>", "reasoning": "<step-by-step reasoning>", "confidence": <0.0-1.0>}`)

	return b.String()
}
