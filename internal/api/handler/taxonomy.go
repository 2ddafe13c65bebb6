package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bdschi1/fin-reasoning-eval/internal/taxonomy"
)

type TaxonomyHandler struct{}

func NewTaxonomyHandler() *TaxonomyHandler {
	return &TaxonomyHandler{}
}

type coverageRequest struct {
	Categories []string `json:"categories" binding:"required"`
}

// Coverage maps a problem set's categories onto the external
// taxonomies and reports how many problems land on each tag.
func (h *TaxonomyHandler) Coverage(c *gin.Context) {
	var req coverageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "categories are required"})
		return
	}

	c.JSON(http.StatusOK, taxonomy.AnalyzeCoverage(req.Categories))
}

func (h *TaxonomyHandler) Mappings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"flame_categories": taxonomy.FlameCategories,
		"finrate_pathways": taxonomy.FinRatePathways,
	})
}
