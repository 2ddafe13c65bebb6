package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bdschi1/fin-reasoning-eval/internal/rubric"
)

type RubricHandler struct {
	grader *rubric.Grader
}

func NewRubricHandler(grader *rubric.Grader) *RubricHandler {
	return &RubricHandler{grader: grader}
}

type rubricScoreRequest struct {
	Judgments map[string]bool `json:"judgments"`
}

// Score applies the configured rubric to a set of per-criterion
// judgments. Criteria absent from the map count as not met.
func (h *RubricHandler) Score(c *gin.Context) {
	var req rubricScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	c.JSON(http.StatusOK, h.grader.Score(req.Judgments))
}

func (h *RubricHandler) Criteria(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"criteria":       h.grader.Criteria(),
		"categories":     h.grader.Categories(),
		"total_possible": h.grader.TotalPossible(),
	})
}
