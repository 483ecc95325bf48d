package domain

import "time"

// JobStatus is the lifecycle state of a generation job.
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusSucceeded JobStatus = "succeeded"
	JobStatusFailed    JobStatus = "failed"
)

// GenerationJob tracks one asynchronous generation request.
type GenerationJob struct {
	ID            string
	UserID        string
	Status        JobStatus
	Progress      int
	ErrorMessage  string
	ResultBatchID string
	RequestJSON   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewGenerationJob creates a queued job for the given request payload.
func NewGenerationJob(id, userID, requestJSON string) *GenerationJob {
	now := time.Now()
	return &GenerationJob{
		ID:          id,
		UserID:      userID,
		Status:      JobStatusQueued,
		Progress:    0,
		RequestJSON: requestJSON,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// QueuedGeneration is the payload pushed onto the Redis work queue.
type QueuedGeneration struct {
	JobID   string          `json:"job_id"`
	Request GenerateRequest `json:"request"`
}

// ClampProgress bounds a progress value to 0..100.
func ClampProgress(progress int) int {
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// IsTerminal reports whether the job reached a final state.
func (j *GenerationJob) IsTerminal() bool {
	return j.Status == JobStatusSucceeded || j.Status == JobStatusFailed
}
