package domain

import "time"

type Category string

const (
	CategoryEarningsSurprise   Category = "earnings_surprise"
	CategoryDCFSanity          Category = "dcf_sanity_check"
	CategoryAccountingRedFlag  Category = "accounting_red_flag"
	CategoryCatalystID         Category = "catalyst_identification"
	CategoryFormulaAudit       Category = "formula_audit"
	CategoryFinancialStatement Category = "financial_statement_analysis"
	CategoryValuation          Category = "valuation_analysis"
	CategoryRiskAssessment     Category = "risk_assessment"
	CategoryCrossEntityQA      Category = "cross_entity_qa"
	CategoryLongitudinalQA     Category = "longitudinal_qa"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

type AnswerType string

const (
	AnswerTypeMultipleChoice AnswerType = "multiple_choice"
	AnswerTypeNumeric        AnswerType = "numeric"
	AnswerTypeBoolean        AnswerType = "boolean"
	AnswerTypeFreeText       AnswerType = "free_text"
)

type AnswerOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Problem is a single financial reasoning problem as produced by the
// dataset generators.
type Problem struct {
	ID             string         `json:"id"`
	Category       Category       `json:"category"`
	Difficulty     Difficulty     `json:"difficulty"`
	Question       string         `json:"question"`
	Context        string         `json:"context,omitempty"`
	AnswerType     AnswerType     `json:"answer_type"`
	CorrectAnswer  string         `json:"correct_answer"`
	AnswerOptions  []AnswerOption `json:"answer_options,omitempty"`
	AnswerUnit     string         `json:"answer_unit,omitempty"`
	Tolerance      *float64       `json:"tolerance,omitempty"`
	Explanation    string         `json:"explanation,omitempty"`
	ReasoningSteps []string       `json:"reasoning_steps,omitempty"`
	Tags           []string       `json:"tags,omitempty"`
	CreatedAt      time.Time      `json:"created_at,omitempty"`
}

// ModelResponse is the raw output of one model call for one problem,
// as produced by a runner.
type ModelResponse struct {
	ProblemID       string   `json:"problem_id"`
	PredictedAnswer string   `json:"predicted_answer"`
	Reasoning       string   `json:"reasoning,omitempty"`
	Confidence      *float64 `json:"confidence,omitempty"`
	LatencyMs       *float64 `json:"latency_ms,omitempty"`
	TokensUsed      int      `json:"tokens_used,omitempty"`
}
