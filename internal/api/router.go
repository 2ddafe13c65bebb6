package api

import (
	"github.com/gin-gonic/gin"

	"github.com/bdschi1/fin-reasoning-eval/internal/api/handler"
	"github.com/bdschi1/fin-reasoning-eval/internal/config"
	"github.com/bdschi1/fin-reasoning-eval/internal/queue"
	"github.com/bdschi1/fin-reasoning-eval/internal/rubric"
	"github.com/bdschi1/fin-reasoning-eval/internal/storage"
)

type Router struct {
	engine *gin.Engine
}

func NewRouter(cfg *config.Config, db *storage.PostgresDB, q *queue.RedisQueue) (*Router, error) {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(gin.Logger())

	runRepo := storage.NewRunRepo(db)
	predRepo := storage.NewPredictionRepo(db)
	leaderboardRepo := storage.NewLeaderboardRepo(db)

	// A broken rubric file is a deployment bug; refuse to start.
	var grader *rubric.Grader
	var err error
	if cfg.Grading.RubricPath != "" {
		grader, err = rubric.FromYAML(cfg.Grading.RubricPath)
	} else {
		grader, err = rubric.New(nil)
	}
	if err != nil {
		return nil, err
	}

	gradeHandler := handler.NewGradeHandler(cfg.Grading)
	runHandler := handler.NewRunHandler(runRepo, predRepo, q, cfg.Grading.DatasetPath)
	rubricHandler := handler.NewRubricHandler(grader)
	taxonomyHandler := handler.NewTaxonomyHandler()
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardRepo)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := engine.Group("/api/v1")
	{
		v1.POST("/grade", gradeHandler.Grade)

		runs := v1.Group("/runs")
		{
			runs.POST("", runHandler.Create)
			runs.GET("", runHandler.List)
			runs.GET("/:id", runHandler.GetByID)
			runs.GET("/:id/summary", runHandler.Summary)
			runs.GET("/:id/predictions", runHandler.Predictions)
		}

		rubricGroup := v1.Group("/rubric")
		{
			rubricGroup.POST("/score", rubricHandler.Score)
			rubricGroup.GET("/criteria", rubricHandler.Criteria)
		}

		taxonomyGroup := v1.Group("/taxonomy")
		{
			taxonomyGroup.POST("/coverage", taxonomyHandler.Coverage)
			taxonomyGroup.GET("/mappings", taxonomyHandler.Mappings)
		}

		board := v1.Group("/leaderboard")
		{
			board.GET("", leaderboardHandler.List)
			board.GET("/models/:model", leaderboardHandler.GetByModel)
			board.POST("/submissions", leaderboardHandler.Submit)
		}
	}

	return &Router{engine: engine}, nil
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
