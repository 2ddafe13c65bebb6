package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bdschi1/fin-reasoning-eval/internal/domain"
	"github.com/bdschi1/fin-reasoning-eval/internal/queue"
	"github.com/bdschi1/fin-reasoning-eval/internal/storage"
)

type RunHandler struct {
	runRepo     *storage.RunRepo
	predRepo    *storage.PredictionRepo
	queue       *queue.RedisQueue
	datasetPath string
}

func NewRunHandler(runRepo *storage.RunRepo, predRepo *storage.PredictionRepo, q *queue.RedisQueue, datasetPath string) *RunHandler {
	return &RunHandler{
		runRepo:     runRepo,
		predRepo:    predRepo,
		queue:       q,
		datasetPath: datasetPath,
	}
}

type createRunRequest struct {
	Provider    string `json:"provider" binding:"required"`
	Model       string `json:"model" binding:"required"`
	DatasetPath string `json:"dataset_path"`
}

// Create records a pending run and enqueues it for a worker.
func (h *RunHandler) Create(c *gin.Context) {
	var req createRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provider and model are required"})
		return
	}

	datasetPath := req.DatasetPath
	if datasetPath == "" {
		datasetPath = h.datasetPath
	}

	run := &domain.EvaluationRun{
		ID:          uuid.New().String(),
		Provider:    req.Provider,
		Model:       req.Model,
		DatasetPath: datasetPath,
		Status:      domain.RunStatusPending,
	}

	ctx := c.Request.Context()
	if err := h.runRepo.Create(ctx, run); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create run"})
		return
	}

	job := &domain.RunJob{
		RunID:       run.ID,
		Provider:    run.Provider,
		Model:       run.Model,
		DatasetPath: run.DatasetPath,
	}
	if err := h.queue.Publish(ctx, job); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to enqueue run"})
		return
	}

	c.JSON(http.StatusAccepted, run)
}

func (h *RunHandler) GetByID(c *gin.Context) {
	run, err := h.runRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve run"})
		return
	}

	c.JSON(http.StatusOK, run)
}

func (h *RunHandler) List(c *gin.Context) {
	runs, err := h.runRepo.List(c.Request.Context(), intQuery(c, "limit", 50))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list runs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"runs": runs, "count": len(runs)})
}

// Summary renders the completed run's aggregate as the plain-text
// benchmark report.
func (h *RunHandler) Summary(c *gin.Context) {
	run, err := h.runRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve run"})
		return
	}

	if run.Result == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "run has no result yet", "status": run.Status})
		return
	}

	c.String(http.StatusOK, run.Result.Summary())
}

func (h *RunHandler) Predictions(c *gin.Context) {
	runID := c.Param("id")

	if _, err := h.runRepo.GetByID(c.Request.Context(), runID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve run"})
		return
	}

	preds, err := h.predRepo.GetByRunID(c.Request.Context(), runID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve predictions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"run_id": runID, "predictions": preds, "count": len(preds)})
}
