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

type LeaderboardRepo struct {
	db *PostgresDB
}

func NewLeaderboardRepo(db *PostgresDB) *LeaderboardRepo {
	return &LeaderboardRepo{db: db}
}

// Upsert inserts the entry, or replaces an existing entry for the same
// model name and version when the new overall accuracy is higher. A
// lower score leaves the stored entry untouched.
func (r *LeaderboardRepo) Upsert(ctx context.Context, entry *domain.LeaderboardEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.SubmittedAt = time.Now()

	categoryJSON, err := json.Marshal(entry.CategoryAccuracy)
	if err != nil {
		return fmt.Errorf("marshal category accuracy: %w", err)
	}
	difficultyJSON, err := json.Marshal(entry.DifficultyAccuracy)
	if err != nil {
		return fmt.Errorf("marshal difficulty accuracy: %w", err)
	}

	_, err = r.db.Pool.Exec(ctx, `
		INSERT INTO leaderboard_entries (
			id, model_name, model_version, organization,
			overall_accuracy, total_examples, category_accuracy, difficulty_accuracy,
			reasoning_quality, calibration_error, avg_latency_ms,
			submitted_by, notes, submitted_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (model_name, model_version) DO UPDATE SET
			organization = EXCLUDED.organization,
			overall_accuracy = EXCLUDED.overall_accuracy,
			total_examples = EXCLUDED.total_examples,
			category_accuracy = EXCLUDED.category_accuracy,
			difficulty_accuracy = EXCLUDED.difficulty_accuracy,
			reasoning_quality = EXCLUDED.reasoning_quality,
			calibration_error = EXCLUDED.calibration_error,
			avg_latency_ms = EXCLUDED.avg_latency_ms,
			submitted_by = EXCLUDED.submitted_by,
			notes = EXCLUDED.notes,
			submitted_at = EXCLUDED.submitted_at
		WHERE leaderboard_entries.overall_accuracy < EXCLUDED.overall_accuracy
	`, entry.ID, entry.ModelName, entry.ModelVersion, entry.Organization,
		entry.OverallAccuracy, entry.TotalExamples, categoryJSON, difficultyJSON,
		entry.ReasoningQuality, entry.CalibrationError, entry.AvgLatencyMs,
		entry.SubmittedBy, entry.Notes, entry.SubmittedAt)

	if err != nil {
		return fmt.Errorf("upsert: %w", err)
	}

	return nil
}

// List returns entries ordered by overall accuracy with ranks assigned
// from that order.
func (r *LeaderboardRepo) List(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, model_name, model_version, organization,
			overall_accuracy, total_examples, category_accuracy, difficulty_accuracy,
			reasoning_quality, calibration_error, avg_latency_ms,
			submitted_by, notes, submitted_at
		FROM leaderboard_entries
		ORDER BY overall_accuracy DESC, submitted_at ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries, nil
}

func (r *LeaderboardRepo) GetByModel(ctx context.Context, modelName, modelVersion string) (*domain.LeaderboardEntry, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, model_name, model_version, organization,
			overall_accuracy, total_examples, category_accuracy, difficulty_accuracy,
			reasoning_quality, calibration_error, avg_latency_ms,
			submitted_by, notes, submitted_at
		FROM leaderboard_entries
		WHERE model_name = $1 AND ($2 = '' OR model_version = $2)
		ORDER BY overall_accuracy DESC
		LIMIT 1
	`, modelName, modelVersion)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("model %s: %w", modelName, ErrNotFound)
	}

	return &entries[0], nil
}

// Rank returns the 1-based position the model holds by overall
// accuracy.
func (r *LeaderboardRepo) Rank(ctx context.Context, modelName, modelVersion string) (int, error) {
	var rank int
	err := r.db.Pool.QueryRow(ctx, `
		SELECT position FROM (
			SELECT model_name, model_version,
				ROW_NUMBER() OVER (ORDER BY overall_accuracy DESC, submitted_at ASC) AS position
			FROM leaderboard_entries
		) ranked
		WHERE model_name = $1 AND model_version = $2
	`, modelName, modelVersion).Scan(&rank)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("model %s: %w", modelName, ErrNotFound)
		}
		return 0, fmt.Errorf("query: %w", err)
	}
	return rank, nil
}

func scanEntries(rows pgx.Rows) ([]domain.LeaderboardEntry, error) {
	var entries []domain.LeaderboardEntry

	for rows.Next() {
		var e domain.LeaderboardEntry
		var categoryJSON, difficultyJSON []byte

		if err := rows.Scan(
			&e.ID, &e.ModelName, &e.ModelVersion, &e.Organization,
			&e.OverallAccuracy, &e.TotalExamples, &categoryJSON, &difficultyJSON,
			&e.ReasoningQuality, &e.CalibrationError, &e.AvgLatencyMs,
			&e.SubmittedBy, &e.Notes, &e.SubmittedAt,
		); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}

		if err := json.Unmarshal(categoryJSON, &e.CategoryAccuracy); err != nil {
			return nil, fmt.Errorf("unmarshal category accuracy: %w", err)
		}
		if err := json.Unmarshal(difficultyJSON, &e.DifficultyAccuracy); err != nil {
			return nil, fmt.Errorf("unmarshal difficulty accuracy: %w", err)
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}
