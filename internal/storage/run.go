package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bdschi1/fin-reasoning-eval/internal/domain"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

type RunRepo struct {
	db *PostgresDB
}

func NewRunRepo(db *PostgresDB) *RunRepo {
	return &RunRepo{db: db}
}

func (r *RunRepo) Create(ctx context.Context, run *domain.EvaluationRun) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.Status == "" {
		run.Status = domain.RunStatusPending
	}
	run.CreatedAt = time.Now()

	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO evaluation_runs (id, provider, model, dataset_path, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, run.ID, run.Provider, run.Model, run.DatasetPath, run.Status, run.CreatedAt)

	if err != nil {
		return fmt.Errorf("insert: %w", err)
	}

	return nil
}

func (r *RunRepo) MarkRunning(ctx context.Context, runID string) error {
	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE evaluation_runs
		SET status = $2, started_at = $3
		WHERE id = $1
	`, runID, domain.RunStatusRunning, time.Now())
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("run %s: %w", runID, ErrNotFound)
	}
	return nil
}

func (r *RunRepo) MarkFailed(ctx context.Context, runID string, cause error) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE evaluation_runs
		SET status = $2, error_message = $3, completed_at = $4
		WHERE id = $1
	`, runID, domain.RunStatusFailed, cause.Error(), time.Now())
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	return nil
}

// Complete stores the aggregate result and usage counters for a
// finished run.
func (r *RunRepo) Complete(ctx context.Context, run *domain.EvaluationRun) error {
	resultJSON, err := json.Marshal(run.Result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	tag, err := r.db.Pool.Exec(ctx, `
		UPDATE evaluation_runs
		SET status = $2, result = $3,
			prompt_tokens = $4, completion_tokens = $5, total_tokens = $6,
			api_failures = $7, avg_latency_ms = $8, completed_at = $9
		WHERE id = $1
	`, run.ID, domain.RunStatusCompleted, resultJSON,
		run.PromptTokens, run.CompletionTokens, run.TotalTokens,
		run.APIFailures, run.AvgLatencyMs, time.Now())
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("run %s: %w", run.ID, ErrNotFound)
	}
	return nil
}

func (r *RunRepo) GetByID(ctx context.Context, runID string) (*domain.EvaluationRun, error) {
	var run domain.EvaluationRun
	var resultJSON []byte

	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, provider, model, dataset_path, status, result, COALESCE(error_message, ''),
			COALESCE(prompt_tokens, 0), COALESCE(completion_tokens, 0),
			COALESCE(total_tokens, 0), COALESCE(api_failures, 0),
			avg_latency_ms, created_at, started_at, completed_at
		FROM evaluation_runs
		WHERE id = $1
	`, runID).Scan(
		&run.ID, &run.Provider, &run.Model, &run.DatasetPath, &run.Status,
		&resultJSON, &run.ErrorMsg,
		&run.PromptTokens, &run.CompletionTokens, &run.TotalTokens, &run.APIFailures,
		&run.AvgLatencyMs, &run.CreatedAt, &run.StartedAt, &run.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("run %s: %w", runID, ErrNotFound)
		}
		return nil, fmt.Errorf("query: %w", err)
	}

	if resultJSON != nil {
		if err := json.Unmarshal(resultJSON, &run.Result); err != nil {
			return nil, fmt.Errorf("unmarshal result: %w", err)
		}
	}

	return &run, nil
}

func (r *RunRepo) List(ctx context.Context, limit int) ([]domain.EvaluationRun, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, provider, model, dataset_path, status, result, COALESCE(error_message, ''),
			COALESCE(prompt_tokens, 0), COALESCE(completion_tokens, 0),
			COALESCE(total_tokens, 0), COALESCE(api_failures, 0),
			avg_latency_ms, created_at, started_at, completed_at
		FROM evaluation_runs
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var runs []domain.EvaluationRun
	for rows.Next() {
		var run domain.EvaluationRun
		var resultJSON []byte

		if err := rows.Scan(
			&run.ID, &run.Provider, &run.Model, &run.DatasetPath, &run.Status,
			&resultJSON, &run.ErrorMsg,
			&run.PromptTokens, &run.CompletionTokens, &run.TotalTokens, &run.APIFailures,
			&run.AvgLatencyMs, &run.CreatedAt, &run.StartedAt, &run.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}

		if resultJSON != nil {
			if err := json.Unmarshal(resultJSON, &run.Result); err != nil {
				return nil, fmt.Errorf("unmarshal result: %w", err)
			}
		}

		runs = append(runs, run)
	}

	return runs, rows.Err()
}

type PredictionRepo struct {
	db *PostgresDB
}

func NewPredictionRepo(db *PostgresDB) *PredictionRepo {
	return &PredictionRepo{db: db}
}

func (r *PredictionRepo) CreateBatch(ctx context.Context, runID string, preds []domain.GradedPrediction) error {
	batch := &pgx.Batch{}
	now := time.Now()

	for i := range preds {
		p := &preds[i]
		batch.Queue(`
			INSERT INTO graded_predictions (
				id, run_id, problem_id, predicted_answer, correct_answer,
				is_correct, category, difficulty, reasoning, confidence,
				latency_ms, created_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`, uuid.New().String(), runID, p.ProblemID, p.PredictedAnswer, p.CorrectAnswer,
			p.IsCorrect, p.Category, p.Difficulty, p.Reasoning, p.Confidence,
			p.LatencyMs, now)
	}

	results := r.db.Pool.SendBatch(ctx, batch)
	defer results.Close()

	for range preds {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("batch exec: %w", err)
		}
	}

	return nil
}

func (r *PredictionRepo) GetByRunID(ctx context.Context, runID string) ([]domain.GradedPrediction, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT problem_id, predicted_answer, correct_answer, is_correct,
			category, difficulty, reasoning, confidence, latency_ms
		FROM graded_predictions
		WHERE run_id = $1
		ORDER BY problem_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var preds []domain.GradedPrediction
	for rows.Next() {
		var p domain.GradedPrediction
		if err := rows.Scan(
			&p.ProblemID, &p.PredictedAnswer, &p.CorrectAnswer, &p.IsCorrect,
			&p.Category, &p.Difficulty, &p.Reasoning, &p.Confidence, &p.LatencyMs,
		); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		preds = append(preds, p)
	}

	return preds, rows.Err()
}
