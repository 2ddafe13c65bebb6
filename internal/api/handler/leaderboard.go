package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bdschi1/fin-reasoning-eval/internal/leaderboard"
	"github.com/bdschi1/fin-reasoning-eval/internal/storage"
)

type LeaderboardHandler struct {
	repo *storage.LeaderboardRepo
}

func NewLeaderboardHandler(repo *storage.LeaderboardRepo) *LeaderboardHandler {
	return &LeaderboardHandler{repo: repo}
}

func (h *LeaderboardHandler) List(c *gin.Context) {
	entries, err := h.repo.List(c.Request.Context(), intQuery(c, "limit", 20))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
}

func (h *LeaderboardHandler) GetByModel(c *gin.Context) {
	entry, err := h.repo.GetByModel(c.Request.Context(), c.Param("model"), c.Query("version"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "model not on leaderboard"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve entry"})
		return
	}

	c.JSON(http.StatusOK, entry)
}

// Submit validates an external submission and places it on the board.
// Validation failures return every problem found at once.
func (h *LeaderboardHandler) Submit(c *gin.Context) {
	var sub leaderboard.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if errs := leaderboard.Validate(&sub); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "submission validation failed",
			"errors": errs,
		})
		return
	}

	entry, err := leaderboard.NewEntry(&sub)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if err := h.repo.Upsert(ctx, entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store submission"})
		return
	}

	// A re-submission with a lower score keeps the stored entry, so
	// read back whatever the board actually holds for this model.
	stored, err := h.repo.GetByModel(ctx, entry.ModelName, entry.ModelVersion)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read back entry"})
		return
	}

	rank, err := h.repo.Rank(ctx, stored.ModelName, stored.ModelVersion)
	if err == nil {
		stored.Rank = rank
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "submission accepted",
		"entry":   stored,
		"rank":    stored.Rank,
	})
}

func intQuery(c *gin.Context, key string, defaultValue int) int {
	if value := c.Query(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
