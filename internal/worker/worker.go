package worker

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/bdschi1/fin-reasoning-eval/internal/config"
	"github.com/bdschi1/fin-reasoning-eval/internal/dataset"
	"github.com/bdschi1/fin-reasoning-eval/internal/domain"
	"github.com/bdschi1/fin-reasoning-eval/internal/leaderboard"
	"github.com/bdschi1/fin-reasoning-eval/internal/queue"
	"github.com/bdschi1/fin-reasoning-eval/internal/runner"
	"github.com/bdschi1/fin-reasoning-eval/internal/storage"
)

// Worker pulls run jobs off the stream and executes them. Each job is
// one full benchmark run: load the problem set, fan the model out over
// it, persist the graded predictions and aggregate, then put the model
// on the leaderboard.
type Worker struct {
	queue           *queue.RedisQueue
	runRepo         *storage.RunRepo
	predRepo        *storage.PredictionRepo
	leaderboardRepo *storage.LeaderboardRepo
	runner          *runner.Runner
	llmCfg          *config.LLMConfig
	gradingCfg      *config.GradingConfig
	concurrency     int
	batchSize       int
}

func New(
	q *queue.RedisQueue,
	runRepo *storage.RunRepo,
	predRepo *storage.PredictionRepo,
	leaderboardRepo *storage.LeaderboardRepo,
	r *runner.Runner,
	llmCfg *config.LLMConfig,
	gradingCfg *config.GradingConfig,
	concurrency int,
	batchSize int,
) *Worker {
	return &Worker{
		queue:           q,
		runRepo:         runRepo,
		predRepo:        predRepo,
		leaderboardRepo: leaderboardRepo,
		runner:          r,
		llmCfg:          llmCfg,
		gradingCfg:      gradingCfg,
		concurrency:     concurrency,
		batchSize:       batchSize,
	}
}

func (w *Worker) Start(ctx context.Context) error {
	log.Printf("Starting worker with concurrency=%d, batchSize=%d", w.concurrency, w.batchSize)

	jobs := make(chan queue.Message, w.concurrency*2)
	var wg sync.WaitGroup

	for i := 0; i < w.concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			w.processJobs(ctx, workerID, jobs)
		}(i)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				close(jobs)
				return
			default:
				messages, err := w.queue.Consume(ctx, int64(w.batchSize), 5*time.Second)
				if err != nil {
					log.Printf("Error consuming messages: %v", err)
					time.Sleep(time.Second)
					continue
				}

				for _, msg := range messages {
					select {
					case jobs <- msg:
					case <-ctx.Done():
						close(jobs)
						return
					}
				}
			}
		}
	}()

	wg.Wait()
	return nil
}

func (w *Worker) processJobs(ctx context.Context, workerID int, jobs <-chan queue.Message) {
	for msg := range jobs {
		if err := w.processRun(ctx, msg.Job); err != nil {
			log.Printf("Worker %d: run %s failed: %v", workerID, msg.Job.RunID, err)
			if markErr := w.runRepo.MarkFailed(ctx, msg.Job.RunID, err); markErr != nil {
				log.Printf("Worker %d: error marking run %s failed: %v", workerID, msg.Job.RunID, markErr)
			}
		}

		// Ack either way; a failed run is recorded in the database and
		// must not be redelivered.
		if err := w.queue.Ack(ctx, msg.ID); err != nil {
			log.Printf("Worker %d: error acking %s: %v", workerID, msg.ID, err)
		}
	}
}

func (w *Worker) processRun(ctx context.Context, job *domain.RunJob) error {
	log.Printf("Processing run: %s (%s/%s)", job.RunID, job.Provider, job.Model)

	if err := w.runRepo.MarkRunning(ctx, job.RunID); err != nil {
		return err
	}

	problems, err := dataset.Load(job.DatasetPath)
	if err != nil {
		return err
	}

	result, err := w.runner.Run(ctx, problems, runner.Options{
		Provider:        job.Provider,
		Model:           job.Model,
		MaxTokens:       w.llmCfg.MaxTokens,
		Temperature:     w.llmCfg.Temperature,
		Concurrency:     w.concurrency,
		Tolerance:       w.gradingCfg.NumericTolerance,
		CalibrationBins: w.gradingCfg.CalibrationBins,
	})
	if err != nil {
		return err
	}

	if err := w.predRepo.CreateBatch(ctx, job.RunID, result.Predictions); err != nil {
		return err
	}

	run := &domain.EvaluationRun{
		ID:               job.RunID,
		Provider:         job.Provider,
		Model:            job.Model,
		Result:           result.Aggregate,
		PromptTokens:     result.Stats.PromptTokens,
		CompletionTokens: result.Stats.CompletionTokens,
		TotalTokens:      result.Stats.TotalTokens,
		APIFailures:      result.Stats.APIFailures,
	}
	if result.Aggregate.TotalExamples > 0 {
		run.AvgLatencyMs = &result.Stats.AvgLatencyMs
	}

	if err := w.runRepo.Complete(ctx, run); err != nil {
		return err
	}

	entry, err := leaderboard.EntryFromRun(run)
	if err != nil {
		// Runs with no graded examples cannot be ranked; the run record
		// itself still stands.
		log.Printf("Run %s not submitted to leaderboard: %v", job.RunID, err)
		return nil
	}
	if err := w.leaderboardRepo.Upsert(ctx, entry); err != nil {
		return err
	}

	log.Printf("Completed run %s: accuracy=%.1f%% over %d examples (failures=%d)",
		job.RunID, result.Aggregate.OverallAccuracy*100, result.Aggregate.TotalExamples, result.Stats.APIFailures)

	return nil
}
