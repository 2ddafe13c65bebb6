// Package rubric scores free-form responses against a fixed set of
// weighted binary criteria, grouped into finance rubric categories.
// The grader does not judge text itself: criterion-level judgments are
// supplied by the caller, and every unsupplied judgment defaults to
// "not met".
package rubric

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Criterion is a single weighted yes/no evaluation check. Criteria are
// static configuration, loaded once at startup and never mutated.
type Criterion struct {
	ID          string   `json:"id" yaml:"id"`
	Description string   `json:"description" yaml:"description"`
	Weight      int      `json:"weight" yaml:"weight"`
	Category    string   `json:"category" yaml:"category"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Score returns the criterion's weight when met, 0 otherwise.
func (c Criterion) Score(met bool) int {
	if met {
		return c.Weight
	}
	return 0
}

// CategoryScore holds earned/possible points for one rubric category.
type CategoryScore struct {
	Category string          `json:"-"`
	Earned   int             `json:"earned"`
	Possible int             `json:"possible"`
	Pct      float64         `json:"score"`
	Criteria map[string]bool `json:"criteria"`
}

// Result is a complete rubric scoring outcome. Percentages are 0 when
// the corresponding possible total is 0; an empty rubric is valid.
type Result struct {
	OverallPct      float64                  `json:"overall_score"`
	OverallEarned   int                      `json:"overall_earned"`
	OverallPossible int                      `json:"overall_possible"`
	Categories      map[string]CategoryScore `json:"categories"`
}

// Grader scores judgment sets against its criterion list.
type Grader struct {
	criteria   []Criterion
	byCategory map[string][]Criterion
}

// New builds a grader from a criterion list, or from the built-in
// default set when criteria is nil. Duplicate ids and negative weights
// are configuration bugs and fail loudly.
func New(criteria []Criterion) (*Grader, error) {
	if criteria == nil {
		criteria = DefaultCriteria
	}

	seen := make(map[string]bool, len(criteria))
	byCategory := make(map[string][]Criterion)

	for _, c := range criteria {
		if c.ID == "" {
			return nil, fmt.Errorf("rubric criterion with empty id (category %q)", c.Category)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("duplicate rubric criterion id %q", c.ID)
		}
		if c.Weight < 0 {
			return nil, fmt.Errorf("rubric criterion %q has negative weight %d", c.ID, c.Weight)
		}
		seen[c.ID] = true
		byCategory[c.Category] = append(byCategory[c.Category], c)
	}

	return &Grader{criteria: criteria, byCategory: byCategory}, nil
}

type yamlCriterion struct {
	ID          string   `yaml:"id"`
	Description string   `yaml:"description"`
	Weight      *int     `yaml:"weight"`
	Category    string   `yaml:"category"`
	Tags        []string `yaml:"tags"`
}

type yamlCategory struct {
	Criteria []yamlCriterion `yaml:"criteria"`
}

type yamlRubric struct {
	Categories map[string]yamlCategory `yaml:"categories"`
}

// FromYAML loads a criterion set from a YAML rubric definition. A
// malformed file is a setup error and propagates to the caller.
func FromYAML(path string) (*Grader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rubric file: %w", err)
	}

	var doc yamlRubric
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse rubric file: %w", err)
	}

	var criteria []Criterion
	for name, cat := range doc.Categories {
		for _, yc := range cat.Criteria {
			weight := 1
			if yc.Weight != nil {
				weight = *yc.Weight
			}
			category := yc.Category
			if category == "" {
				category = name
			}
			criteria = append(criteria, Criterion{
				ID:          yc.ID,
				Description: yc.Description,
				Weight:      weight,
				Category:    category,
				Tags:        yc.Tags,
			})
		}
	}

	if len(criteria) == 0 {
		return nil, fmt.Errorf("rubric file %s defines no criteria", path)
	}

	return New(criteria)
}

// Criteria returns the grader's criterion list.
func (g *Grader) Criteria() []Criterion {
	return g.criteria
}

// Categories returns the category names present in the criterion set.
func (g *Grader) Categories() []string {
	cats := make([]string, 0, len(g.byCategory))
	for cat := range g.byCategory {
		cats = append(cats, cat)
	}
	return cats
}

// TotalPossible is the sum of all criterion weights.
func (g *Grader) TotalPossible() int {
	var total int
	for _, c := range g.criteria {
		total += c.Weight
	}
	return total
}

// Score computes category and overall scores for a set of
// criterion-level judgments. Missing judgments count as "not met":
// an incomplete judgment map is valid input, not an error.
func (g *Grader) Score(judgments map[string]bool) *Result {
	result := &Result{Categories: make(map[string]CategoryScore, len(g.byCategory))}

	for cat, criteria := range g.byCategory {
		cs := CategoryScore{
			Category: cat,
			Criteria: make(map[string]bool, len(criteria)),
		}
		for _, c := range criteria {
			met := judgments[c.ID]
			cs.Earned += c.Score(met)
			cs.Possible += c.Weight
			cs.Criteria[c.ID] = met
		}
		cs.Pct = pct(cs.Earned, cs.Possible)
		result.Categories[cat] = cs

		result.OverallEarned += cs.Earned
		result.OverallPossible += cs.Possible
	}

	result.OverallPct = pct(result.OverallEarned, result.OverallPossible)
	return result
}

func pct(earned, possible int) float64 {
	if possible == 0 {
		return 0.0
	}
	return round1(float64(earned) / float64(possible) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
