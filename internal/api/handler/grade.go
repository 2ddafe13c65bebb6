package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bdschi1/fin-reasoning-eval/internal/config"
	"github.com/bdschi1/fin-reasoning-eval/internal/domain"
	"github.com/bdschi1/fin-reasoning-eval/internal/grading"
)

type GradeHandler struct {
	cfg config.GradingConfig
}

func NewGradeHandler(cfg config.GradingConfig) *GradeHandler {
	return &GradeHandler{cfg: cfg}
}

type gradeRequest struct {
	Problems  []domain.Problem       `json:"problems" binding:"required"`
	Responses []domain.ModelResponse `json:"responses" binding:"required"`
}

// Grade scores a batch of model responses against their problems in one
// synchronous call. Responses that reference no known problem id are
// dropped from the statistics, not failed.
func (h *GradeHandler) Grade(c *gin.Context) {
	var req gradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	agg := grading.NewAggregatorWith(h.cfg.NumericTolerance, h.cfg.CalibrationBins)
	agg.AddBatch(req.Responses, req.Problems)
	result := agg.Compute()

	c.JSON(http.StatusOK, gin.H{
		"result":      result,
		"predictions": agg.Predictions(),
		"summary":     result.Summary(),
	})
}
