package models

import (
	"database/sql"
	"time"
)

// GenerationJob is the persistence model for one asynchronous
// generation request.
type GenerationJob struct {
	ID            string         `db:"id"` // ULID
	UserID        string         `db:"user_id"`
	Status        string         `db:"status"`
	Progress      int            `db:"progress"`
	ErrorMessage  sql.NullString `db:"error_message"`
	ResultBatchID sql.NullString `db:"result_batch_id"`
	RequestJSON   string         `db:"request_json"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}
