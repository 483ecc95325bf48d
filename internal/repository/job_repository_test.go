package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"quizforge/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestSQLXJobRepository_CreateJob_Success(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXJobRepository(db)
	defer db.Close()

	job := domain.NewGenerationJob(
		"01HZJOBAAAAAAAAAAAAAAAAAAA",
		"01HZUSRAAAAAAAAAAAAAAAAAAA",
		`{"source_text":"Le reseau local."}`,
	)

	mock.ExpectExec("INSERT INTO generation_jobs").
		WithArgs(
			job.ID,
			job.UserID,
			string(domain.JobStatusQueued),
			0,
			nil,
			nil,
			job.RequestJSON,
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateJob(context.Background(), job)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXJobRepository_GetJobByID_Success(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXJobRepository(db)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "status", "progress", "error_message",
		"result_batch_id", "request_json", "created_at", "updated_at",
	}).AddRow(
		"01HZJOBAAAAAAAAAAAAAAAAAAA", "01HZUSRAAAAAAAAAAAAAAAAAAA", "running", 70, nil,
		nil, `{"max_items":4}`, now, now,
	)

	mock.ExpectQuery(`FROM generation_jobs\s+WHERE id = :1`).
		WithArgs("01HZJOBAAAAAAAAAAAAAAAAAAA").
		WillReturnRows(rows)

	job, err := repo.GetJobByID(context.Background(), "01HZJOBAAAAAAAAAAAAAAAAAAA")

	assert.NoError(t, err)
	assert.NotNil(t, job)
	assert.Equal(t, domain.JobStatusRunning, job.Status)
	assert.Equal(t, 70, job.Progress)
	assert.Empty(t, job.ErrorMessage)
	assert.Empty(t, job.ResultBatchID)
	assert.False(t, job.IsTerminal())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXJobRepository_GetJobByID_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXJobRepository(db)
	defer db.Close()

	mock.ExpectQuery(`FROM generation_jobs\s+WHERE id = :1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	job, err := repo.GetJobByID(context.Background(), "missing")

	assert.NoError(t, err)
	assert.Nil(t, job)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXJobRepository_UpdateJobStatus_Success(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXJobRepository(db)
	defer db.Close()

	mock.ExpectExec("UPDATE generation_jobs SET").
		WithArgs("running", 70, nil, sqlmock.AnyArg(), "01HZJOBAAAAAAAAAAAAAAAAAAA").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateJobStatus(context.Background(), "01HZJOBAAAAAAAAAAAAAAAAAAA", domain.JobStatusRunning, 70, "")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXJobRepository_UpdateJobStatus_ClampsProgress(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXJobRepository(db)
	defer db.Close()

	mock.ExpectExec("UPDATE generation_jobs SET").
		WithArgs("succeeded", 100, nil, sqlmock.AnyArg(), "01HZJOBAAAAAAAAAAAAAAAAAAA").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateJobStatus(context.Background(), "01HZJOBAAAAAAAAAAAAAAAAAAA", domain.JobStatusSucceeded, 150, "")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXJobRepository_UpdateJobStatus_RecordsError(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXJobRepository(db)
	defer db.Close()

	mock.ExpectExec("UPDATE generation_jobs SET").
		WithArgs("failed", 100, "provider exhausted", sqlmock.AnyArg(), "01HZJOBAAAAAAAAAAAAAAAAAAA").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateJobStatus(context.Background(), "01HZJOBAAAAAAAAAAAAAAAAAAA", domain.JobStatusFailed, 100, "provider exhausted")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXJobRepository_UpdateJobStatus_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXJobRepository(db)
	defer db.Close()

	mock.ExpectExec("UPDATE generation_jobs SET").
		WithArgs("running", 10, nil, sqlmock.AnyArg(), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateJobStatus(context.Background(), "missing", domain.JobStatusRunning, 10, "")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXJobRepository_AttachResult_Success(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXJobRepository(db)
	defer db.Close()

	mock.ExpectExec("UPDATE generation_jobs SET").
		WithArgs("01HZBATAAAAAAAAAAAAAAAAAAA", sqlmock.AnyArg(), "01HZJOBAAAAAAAAAAAAAAAAAAA").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AttachResult(context.Background(), "01HZJOBAAAAAAAAAAAAAAAAAAA", "01HZBATAAAAAAAAAAAAAAAAAAA")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLXJobRepository_AttachResult_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSQLXJobRepository(db)
	defer db.Close()

	mock.ExpectExec("UPDATE generation_jobs SET").
		WithArgs("01HZBATAAAAAAAAAAAAAAAAAAA", sqlmock.AnyArg(), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.AttachResult(context.Background(), "missing", "01HZBATAAAAAAAAAAAAAAAAAAA")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}
