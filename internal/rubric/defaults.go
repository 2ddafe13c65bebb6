package rubric

// The seven finance rubric categories used by the default criterion set.
var Categories = []string{
	"numerical_accuracy",
	"conceptual_understanding",
	"reasoning_chain",
	"financial_terminology",
	"risk_awareness",
	"assumption_identification",
	"completeness",
}

// DefaultCriteria is the built-in criterion set: a practical starting
// set of weighted binary checks. Deployments with larger expert-curated
// rubrics load them from YAML instead.
var DefaultCriteria = []Criterion{
	{ID: "NA_001", Description: "Final numerical answer is correct within tolerance", Weight: 3, Category: "numerical_accuracy"},
	{ID: "NA_002", Description: "Intermediate calculations are shown and correct", Weight: 2, Category: "numerical_accuracy"},
	{ID: "NA_003", Description: "Units and magnitudes are consistent", Weight: 2, Category: "numerical_accuracy"},
	{ID: "NA_004", Description: "Percentages and ratios are correctly computed", Weight: 2, Category: "numerical_accuracy"},
	{ID: "NA_005", Description: "Growth rates computed from correct base periods", Weight: 1, Category: "numerical_accuracy"},

	{ID: "CU_001", Description: "Correctly identifies the core financial concept tested", Weight: 3, Category: "conceptual_understanding"},
	{ID: "CU_002", Description: "Distinguishes between related but different concepts", Weight: 2, Category: "conceptual_understanding"},
	{ID: "CU_003", Description: "Applies appropriate financial framework", Weight: 2, Category: "conceptual_understanding"},
	{ID: "CU_004", Description: "Recognizes edge cases or exceptions to general rules", Weight: 1, Category: "conceptual_understanding"},

	{ID: "RC_001", Description: "Reasoning steps follow logical sequence", Weight: 3, Category: "reasoning_chain"},
	{ID: "RC_002", Description: "Each step is justified with evidence or logic", Weight: 2, Category: "reasoning_chain"},
	{ID: "RC_003", Description: "Conclusion follows from premises", Weight: 2, Category: "reasoning_chain"},
	{ID: "RC_004", Description: "No circular reasoning present", Weight: 2, Category: "reasoning_chain"},
	{ID: "RC_005", Description: "Alternative explanations considered", Weight: 1, Category: "reasoning_chain"},

	{ID: "FT_001", Description: "Key financial terms used correctly", Weight: 2, Category: "financial_terminology"},
	{ID: "FT_002", Description: "GAAP vs non-GAAP distinction made where relevant", Weight: 2, Category: "financial_terminology"},
	{ID: "FT_003", Description: "Industry-specific terminology appropriate", Weight: 1, Category: "financial_terminology"},

	{ID: "RA_001", Description: "Key risks identified and acknowledged", Weight: 3, Category: "risk_awareness"},
	{ID: "RA_002", Description: "Quantitative risk measures referenced where available", Weight: 2, Category: "risk_awareness"},
	{ID: "RA_003", Description: "Distinguishes systematic from idiosyncratic risk", Weight: 1, Category: "risk_awareness"},
	{ID: "RA_004", Description: "Tail risks or extreme scenarios considered", Weight: 1, Category: "risk_awareness"},

	{ID: "AI_001", Description: "Explicit assumptions identified from context", Weight: 2, Category: "assumption_identification"},
	{ID: "AI_002", Description: "Hidden or implicit assumptions surfaced", Weight: 2, Category: "assumption_identification"},
	{ID: "AI_003", Description: "Assumptions tested for reasonableness", Weight: 1, Category: "assumption_identification"},

	{ID: "CO_001", Description: "All parts of the question addressed", Weight: 3, Category: "completeness"},
	{ID: "CO_002", Description: "Relevant context information utilized", Weight: 2, Category: "completeness"},
	{ID: "CO_003", Description: "Response is appropriately detailed (not too terse or verbose)", Weight: 1, Category: "completeness"},
}
