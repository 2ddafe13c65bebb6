package domain

import "time"

type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// EvaluationRun is one pass of a model over a problem set. Result and
// the token/latency fields are filled in when the run completes.
type EvaluationRun struct {
	ID          string           `json:"id"`
	Provider    string           `json:"provider"`
	Model       string           `json:"model"`
	DatasetPath string           `json:"dataset_path"`
	Status      RunStatus        `json:"status"`
	Result      *AggregateResult `json:"result,omitempty"`
	ErrorMsg    string           `json:"error_message,omitempty"`

	PromptTokens     int      `json:"prompt_tokens"`
	CompletionTokens int      `json:"completion_tokens"`
	TotalTokens      int      `json:"total_tokens"`
	APIFailures      int      `json:"api_failures"`
	AvgLatencyMs     *float64 `json:"avg_latency_ms,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// RunJob is the queue payload that tells a worker which run to execute.
type RunJob struct {
	RunID       string `json:"run_id"`
	Provider    string `json:"provider"`
	Model       string `json:"model"`
	DatasetPath string `json:"dataset_path"`
}
