package models

import (
	"database/sql"
	"time"
)

// User is the persistence model for an API user.
type User struct {
	ID           string       `db:"id"` // ULID
	Email        string       `db:"email"`
	PasswordHash string       `db:"password_hash"` // hex sha256 of the password
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
	DeletedAt    sql.NullTime `db:"deleted_at"`
}
