// Package taxonomy maps internal problem categories onto the FLaME
// task taxonomy and Fin-RATE QA pathways for cross-benchmark
// reporting. The tables are process-wide static configuration; nothing
// here participates in scoring decisions.
package taxonomy

// FlameCategories are the six FLaME core NLP task categories.
var FlameCategories = []string{
	"question_answering",
	"information_retrieval",
	"summarization",
	"sentiment_analysis",
	"causal_reasoning",
	"classification",
}

// FinRatePathways maps each QA pathway tag to its description.
var FinRatePathways = map[string]string{
	"detail_oriented_qa": "DR-QA: Detail-oriented reasoning from single documents",
	"cross_entity_qa":    "EC-QA: Cross-entity comparison and relative analysis",
	"longitudinal_qa":    "LT-QA: Longitudinal tracking and trend analysis over time",
}

// DefaultPathway is assigned to categories with no explicit pathway
// mapping.
const DefaultPathway = "detail_oriented_qa"

// categoryToFlame maps a problem category to one or more FLaME task
// categories.
var categoryToFlame = map[string][]string{
	"earnings_surprise":            {"question_answering", "classification"},
	"dcf_sanity_check":             {"question_answering", "causal_reasoning"},
	"accounting_red_flag":          {"classification", "information_retrieval"},
	"catalyst_identification":      {"information_retrieval", "causal_reasoning"},
	"formula_audit":                {"question_answering"},
	"financial_statement_analysis": {"question_answering", "information_retrieval"},
	"valuation_analysis":           {"question_answering", "causal_reasoning"},
	"risk_assessment":              {"causal_reasoning", "classification"},
	"cross_entity_qa":              {"question_answering", "information_retrieval", "classification"},
	"longitudinal_qa":              {"question_answering", "causal_reasoning", "summarization"},
}

// categoryToPathway maps a problem category to exactly one Fin-RATE QA
// pathway.
var categoryToPathway = map[string]string{
	"earnings_surprise":            "detail_oriented_qa",
	"dcf_sanity_check":             "detail_oriented_qa",
	"accounting_red_flag":          "detail_oriented_qa",
	"catalyst_identification":      "detail_oriented_qa",
	"formula_audit":                "detail_oriented_qa",
	"financial_statement_analysis": "detail_oriented_qa",
	"valuation_analysis":           "detail_oriented_qa",
	"risk_assessment":              "detail_oriented_qa",
	"cross_entity_qa":              "cross_entity_qa",
	"longitudinal_qa":              "longitudinal_qa",
}

// FlameCategoriesFor returns the FLaME categories for a problem
// category, or nil when the category is unmapped.
func FlameCategoriesFor(category string) []string {
	return categoryToFlame[category]
}

// PathwayFor returns the Fin-RATE pathway for a problem category,
// falling back to DefaultPathway for unmapped categories.
func PathwayFor(category string) string {
	if p, ok := categoryToPathway[category]; ok {
		return p
	}
	return DefaultPathway
}

// Coverage tallies how a list of problem categories distributes over
// the external taxonomies.
type Coverage struct {
	TotalProblems   int            `json:"total_problems"`
	FlameCoverage   map[string]int `json:"flame_coverage"`
	FinRateCoverage map[string]int `json:"finrate_coverage"`
	Unmapped        int            `json:"unmapped"`
}

// AnalyzeCoverage counts, per external tag, how many of the given
// category occurrences map to it. Categories with no FLaME mapping
// count as unmapped and contribute to no pathway.
func AnalyzeCoverage(categories []string) Coverage {
	cov := Coverage{
		TotalProblems:   len(categories),
		FlameCoverage:   make(map[string]int, len(FlameCategories)),
		FinRateCoverage: make(map[string]int, len(FinRatePathways)),
	}
	for _, fc := range FlameCategories {
		cov.FlameCoverage[fc] = 0
	}
	for fp := range FinRatePathways {
		cov.FinRateCoverage[fp] = 0
	}

	for _, cat := range categories {
		flame := categoryToFlame[cat]
		if len(flame) == 0 {
			cov.Unmapped++
			continue
		}
		for _, fc := range flame {
			cov.FlameCoverage[fc]++
		}
		if p, ok := categoryToPathway[cat]; ok {
			cov.FinRateCoverage[p]++
		}
	}

	return cov
}
