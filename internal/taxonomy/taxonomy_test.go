package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlameCategoriesFor(t *testing.T) {
	assert.Equal(t, []string{"question_answering", "classification"}, FlameCategoriesFor("earnings_surprise"))
	assert.Equal(t, []string{"question_answering"}, FlameCategoriesFor("formula_audit"))
	assert.Nil(t, FlameCategoriesFor("unknown_category"))
}

func TestPathwayFor(t *testing.T) {
	assert.Equal(t, "cross_entity_qa", PathwayFor("cross_entity_qa"))
	assert.Equal(t, "longitudinal_qa", PathwayFor("longitudinal_qa"))
	assert.Equal(t, "detail_oriented_qa", PathwayFor("dcf_sanity_check"))

	// Unmapped categories fall back to the default pathway.
	assert.Equal(t, DefaultPathway, PathwayFor("made_up_category"))
}

func TestAnalyzeCoverage(t *testing.T) {
	cov := AnalyzeCoverage([]string{
		"earnings_surprise",
		"earnings_surprise",
		"dcf_sanity_check",
		"no_such_category",
	})

	assert.Equal(t, 4, cov.TotalProblems)
	assert.Equal(t, 1, cov.Unmapped)
	assert.Equal(t, 3, cov.FlameCoverage["question_answering"])
	assert.Equal(t, 2, cov.FlameCoverage["classification"])
	assert.Equal(t, 1, cov.FlameCoverage["causal_reasoning"])
	assert.Equal(t, 0, cov.FlameCoverage["summarization"])
	assert.Equal(t, 3, cov.FinRateCoverage["detail_oriented_qa"])
	assert.Equal(t, 0, cov.FinRateCoverage["cross_entity_qa"])
}

func TestAnalyzeCoverageEmpty(t *testing.T) {
	cov := AnalyzeCoverage(nil)

	assert.Equal(t, 0, cov.TotalProblems)
	assert.Equal(t, 0, cov.Unmapped)
	// All known tags are present with zero counts.
	assert.Len(t, cov.FlameCoverage, len(FlameCategories))
	assert.Len(t, cov.FinRateCoverage, len(FinRatePathways))
}
