package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quizforge/internal/domain"
	"quizforge/internal/repository/models"
	"quizforge/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxJobRepository implements domain.JobRepository using sqlx.
type sqlxJobRepository struct {
	db *sqlx.DB
}

// NewSQLXJobRepository creates a new instance of sqlxJobRepository.
func NewSQLXJobRepository(db *sqlx.DB) domain.JobRepository {
	return &sqlxJobRepository{db: db}
}

// CreateJob persists a new queued job.
func (r *sqlxJobRepository) CreateJob(ctx context.Context, job *domain.GenerationJob) error {
	model := fromDomainJob(job)
	if model == nil {
		return fmt.Errorf("cannot create nil job")
	}
	if model.ID == "" {
		model.ID = util.NewULID()
	}
	model.CreatedAt = time.Now()
	model.UpdatedAt = time.Now()

	query := `INSERT INTO generation_jobs (
		id, user_id, status, progress, error_message,
		result_batch_id, request_json, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9
	)`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		model.ID,
		model.UserID,
		model.Status,
		model.Progress,
		model.ErrorMessage,
		model.ResultBatchID,
		model.RequestJSON,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create generation job: %w", err)
	}

	job.ID = model.ID
	job.CreatedAt = model.CreatedAt
	job.UpdatedAt = model.UpdatedAt
	return nil
}

// GetJobByID retrieves a job by its ID, or (nil, nil) when absent.
func (r *sqlxJobRepository) GetJobByID(ctx context.Context, id string) (*domain.GenerationJob, error) {
	var model models.GenerationJob
	query := `SELECT
		id "id",
		user_id "user_id",
		status "status",
		progress "progress",
		error_message "error_message",
		result_batch_id "result_batch_id",
		request_json "request_json",
		created_at "created_at",
		updated_at "updated_at"
	FROM generation_jobs
	WHERE id = :1`

	executor := GetExecutor(ctx, r.db)
	err := executor.GetContext(ctx, &model, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get generation job by ID %s: %w", id, err)
	}
	return toDomainJob(&model), nil
}

// UpdateJobStatus records status, progress and the optional error
// message. Progress is clamped to 0..100 before writing.
func (r *sqlxJobRepository) UpdateJobStatus(ctx context.Context, id string, status domain.JobStatus, progress int, errorMessage string) error {
	query := `UPDATE generation_jobs SET
		status = :1,
		progress = :2,
		error_message = :3,
		updated_at = :4
	WHERE id = :5`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query,
		string(status),
		domain.ClampProgress(progress),
		util.StringToNullString(errorMessage),
		time.Now(),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to update generation job status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("generation job with ID %s not found", id)
	}
	return nil
}

// AttachResult links a finished job to its result batch.
func (r *sqlxJobRepository) AttachResult(ctx context.Context, id string, batchID string) error {
	query := `UPDATE generation_jobs SET
		result_batch_id = :1,
		updated_at = :2
	WHERE id = :3`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query,
		util.StringToNullString(batchID),
		time.Now(),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to attach result batch to job: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("generation job with ID %s not found", id)
	}
	return nil
}

// Helper functions for model conversion
func toDomainJob(m *models.GenerationJob) *domain.GenerationJob {
	if m == nil {
		return nil
	}
	return &domain.GenerationJob{
		ID:            m.ID,
		UserID:        m.UserID,
		Status:        domain.JobStatus(m.Status),
		Progress:      m.Progress,
		ErrorMessage:  m.ErrorMessage.String,
		ResultBatchID: m.ResultBatchID.String,
		RequestJSON:   m.RequestJSON,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func fromDomainJob(d *domain.GenerationJob) *models.GenerationJob {
	if d == nil {
		return nil
	}
	return &models.GenerationJob{
		ID:            d.ID,
		UserID:        d.UserID,
		Status:        string(d.Status),
		Progress:      d.Progress,
		ErrorMessage:  util.StringToNullString(d.ErrorMessage),
		ResultBatchID: util.StringToNullString(d.ResultBatchID),
		RequestJSON:   d.RequestJSON,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
