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

// sqlxBatchRepository implements domain.BatchRepository using sqlx.
type sqlxBatchRepository struct {
	db *sqlx.DB
}

// NewSQLXBatchRepository creates a new instance of sqlxBatchRepository.
func NewSQLXBatchRepository(db *sqlx.DB) domain.BatchRepository {
	return &sqlxBatchRepository{db: db}
}

// SaveBatch persists a batch together with its items. Run it inside
// domain.TransactionManager.WithTransaction to keep the rows atomic.
func (r *sqlxBatchRepository) SaveBatch(ctx context.Context, batch *domain.ItemBatch) error {
	if batch == nil {
		return fmt.Errorf("cannot save nil batch")
	}

	batchModel := fromDomainBatch(batch)
	if batchModel.ID == "" {
		batchModel.ID = util.NewULID()
	}
	batchModel.CreatedAt = time.Now()
	batchModel.UpdatedAt = time.Now()

	batchQuery := `INSERT INTO item_batches (
		id, source_hash, language, study_level, subject,
		class_level, difficulty, requested_max, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9, :10
	)`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, batchQuery,
		batchModel.ID,
		batchModel.SourceHash,
		batchModel.Language,
		batchModel.Level,
		batchModel.Subject,
		batchModel.ClassLevel,
		batchModel.Difficulty,
		batchModel.RequestedMax,
		batchModel.CreatedAt,
		batchModel.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save item batch: %w", err)
	}

	itemQuery := `INSERT INTO generated_items (
		id, batch_id, position, item_type, prompt, correct_answer,
		distractors, answer_options, tags, difficulty, feedback,
		source_reference, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11, :12, :13, :14
	)`

	for i := range batch.Items {
		itemModel := fromDomainItem(&batch.Items[i])
		itemModel.ID = util.NewULID()
		itemModel.BatchID = batchModel.ID
		itemModel.Position = i
		itemModel.CreatedAt = batchModel.CreatedAt
		itemModel.UpdatedAt = batchModel.UpdatedAt

		_, err := executor.ExecContext(ctx, itemQuery,
			itemModel.ID,
			itemModel.BatchID,
			itemModel.Position,
			itemModel.ItemType,
			itemModel.Prompt,
			itemModel.CorrectAnswer,
			itemModel.Distractors,
			itemModel.AnswerOptions,
			itemModel.Tags,
			itemModel.Difficulty,
			itemModel.Feedback,
			itemModel.SourceReference,
			itemModel.CreatedAt,
			itemModel.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to save generated item at position %d: %w", i, err)
		}
	}

	batch.ID = batchModel.ID
	batch.CreatedAt = batchModel.CreatedAt
	return nil
}

// GetBatchByID retrieves a batch and its items ordered by position,
// or (nil, nil) when the batch does not exist.
func (r *sqlxBatchRepository) GetBatchByID(ctx context.Context, id string) (*domain.ItemBatch, error) {
	var batchModel models.ItemBatch
	batchQuery := `SELECT
		id "id",
		source_hash "source_hash",
		language "language",
		study_level "study_level",
		subject "subject",
		class_level "class_level",
		difficulty "difficulty",
		requested_max "requested_max",
		created_at "created_at",
		updated_at "updated_at",
		deleted_at "deleted_at"
	FROM item_batches
	WHERE id = :1
	AND deleted_at IS NULL`

	executor := GetExecutor(ctx, r.db)
	err := executor.GetContext(ctx, &batchModel, batchQuery, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get item batch by ID %s: %w", id, err)
	}

	var itemModels []models.GeneratedItem
	itemsQuery := `SELECT
		id "id",
		batch_id "batch_id",
		position "position",
		item_type "item_type",
		prompt "prompt",
		correct_answer "correct_answer",
		distractors "distractors",
		answer_options "answer_options",
		tags "tags",
		difficulty "difficulty",
		feedback "feedback",
		source_reference "source_reference",
		created_at "created_at",
		updated_at "updated_at"
	FROM generated_items
	WHERE batch_id = :1
	ORDER BY position ASC`

	if err := executor.SelectContext(ctx, &itemModels, itemsQuery, id); err != nil {
		return nil, fmt.Errorf("failed to load items for batch %s: %w", id, err)
	}

	batch := toDomainBatch(&batchModel)
	batch.Items = make([]domain.GeneratedItem, 0, len(itemModels))
	for i := range itemModels {
		batch.Items = append(batch.Items, toDomainItem(&itemModels[i]))
	}
	return batch, nil
}

// Helper functions for model conversion
func toDomainBatch(m *models.ItemBatch) *domain.ItemBatch {
	if m == nil {
		return nil
	}
	return &domain.ItemBatch{
		ID:           m.ID,
		SourceHash:   m.SourceHash,
		Language:     m.Language,
		Level:        m.Level,
		Subject:      m.Subject.String,
		ClassLevel:   m.ClassLevel.String,
		Difficulty:   m.Difficulty,
		RequestedMax: m.RequestedMax,
		CreatedAt:    m.CreatedAt,
	}
}

func fromDomainBatch(d *domain.ItemBatch) *models.ItemBatch {
	if d == nil {
		return nil
	}
	return &models.ItemBatch{
		ID:           d.ID,
		SourceHash:   d.SourceHash,
		Language:     d.Language,
		Level:        d.Level,
		Subject:      util.StringToNullString(d.Subject),
		ClassLevel:   util.StringToNullString(d.ClassLevel),
		Difficulty:   d.Difficulty,
		RequestedMax: d.RequestedMax,
		CreatedAt:    d.CreatedAt,
	}
}

func toDomainItem(m *models.GeneratedItem) domain.GeneratedItem {
	return domain.GeneratedItem{
		ItemType:        domain.ItemType(m.ItemType),
		Prompt:          m.Prompt,
		CorrectAnswer:   m.CorrectAnswer.String,
		Distractors:     []string(m.Distractors),
		AnswerOptions:   []string(m.AnswerOptions),
		Tags:            []string(m.Tags),
		Difficulty:      m.Difficulty,
		Feedback:        m.Feedback.String,
		SourceReference: m.SourceReference.String,
	}
}

func fromDomainItem(d *domain.GeneratedItem) *models.GeneratedItem {
	return &models.GeneratedItem{
		ItemType:        string(d.ItemType),
		Prompt:          d.Prompt,
		CorrectAnswer:   util.StringToNullString(d.CorrectAnswer),
		Distractors:     models.StringSlice(d.Distractors),
		AnswerOptions:   models.StringSlice(d.AnswerOptions),
		Tags:            models.StringSlice(d.Tags),
		Difficulty:      d.Difficulty,
		Feedback:        util.StringToNullString(d.Feedback),
		SourceReference: util.StringToNullString(d.SourceReference),
	}
}
