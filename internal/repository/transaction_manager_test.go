package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func TestGetExecutor_WithoutTransaction(t *testing.T) {
	db, _ := setupTestDB(t)
	defer db.Close()

	executor := GetExecutor(context.Background(), db)

	assert.Same(t, db, executor, "expected the plain DB outside a transaction")
}

func TestWithTransaction_CommitsOnSuccess(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	manager := NewTransactionManagerAdapter(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := manager.WithTransaction(context.Background(), func(txCtx context.Context) error {
		executor := GetExecutor(txCtx, db)
		_, isTx := executor.(*sqlx.Tx)
		assert.True(t, isTx, "expected the transaction inside WithTransaction")

		_, execErr := executor.ExecContext(txCtx,
			"INSERT INTO users (id, email, password_hash, created_at, updated_at) VALUES (:1, :2, :3, :4, :5)",
			"u1", "prof@example.com", "cafe1234", nil, nil)
		return execErr
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	manager := NewTransactionManagerAdapter(db)

	sentinel := errors.New("persistence failed")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := manager.WithTransaction(context.Background(), func(txCtx context.Context) error {
		return sentinel
	})

	assert.ErrorIs(t, err, sentinel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_CommitError(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	manager := NewTransactionManagerAdapter(db)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("ORA-02091: transaction rolled back"))

	err := manager.WithTransaction(context.Background(), func(txCtx context.Context) error {
		return nil
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to commit transaction")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_BeginError(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	manager := NewTransactionManagerAdapter(db)

	mock.ExpectBegin().WillReturnError(errors.New("connection lost"))

	err := manager.WithTransaction(context.Background(), func(txCtx context.Context) error {
		t.Fatal("fn must not run when Begin fails")
		return nil
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to begin transaction")
	assert.NoError(t, mock.ExpectationsWereMet())
}
