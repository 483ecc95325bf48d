package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringSlice stores a []string as a JSON array in a CLOB column.
type StringSlice []string

// Value implements driver.Valuer. A nil slice is stored as "[]" so
// slice-typed columns never hold SQL NULL.
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements sql.Scanner. NULL, empty and literal "null" column
// values all scan to an empty slice.
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("StringSlice Scan: unsupported type %T", value)
	}

	if len(raw) == 0 || string(raw) == "null" {
		*s = StringSlice{}
		return nil
	}

	return json.Unmarshal(raw, s)
}

// ItemBatch is the persistence model for one generation result.
// The study level column is named study_level because LEVEL is a
// reserved word in Oracle.
type ItemBatch struct {
	ID           string         `db:"id"` // ULID
	SourceHash   string         `db:"source_hash"`
	Language     string         `db:"language"`
	Level        string         `db:"study_level"`
	Subject      sql.NullString `db:"subject"`
	ClassLevel   sql.NullString `db:"class_level"`
	Difficulty   string         `db:"difficulty"`
	RequestedMax int            `db:"requested_max"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	DeletedAt    sql.NullTime   `db:"deleted_at"`
}

// GeneratedItem is the persistence model for one assessment item.
// Items are ordered within their batch by position.
type GeneratedItem struct {
	ID              string         `db:"id"` // ULID
	BatchID         string         `db:"batch_id"`
	Position        int            `db:"position"`
	ItemType        string         `db:"item_type"`
	Prompt          string         `db:"prompt"`
	CorrectAnswer   sql.NullString `db:"correct_answer"`
	Distractors     StringSlice    `db:"distractors"`
	AnswerOptions   StringSlice    `db:"answer_options"`
	Tags            StringSlice    `db:"tags"`
	Difficulty      string         `db:"difficulty"`
	Feedback        sql.NullString `db:"feedback"`
	SourceReference sql.NullString `db:"source_reference"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}
