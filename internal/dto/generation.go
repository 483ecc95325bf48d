package dto

import (
	"time"

	"quizforge/internal/domain"
)

// GenerateRequest represents the generation parameters in the API request.
// @Description Request body for generating assessment items from source text
type GenerateRequest struct {
	SourceText   string   `json:"source_text"`
	ContentTypes []string `json:"content_types"`
	MaxItems     int      `json:"max_items"`
	Language     string   `json:"language,omitempty"`
	Level        string   `json:"level,omitempty"`
	Subject      string   `json:"subject,omitempty"`
	ClassLevel   string   `json:"class_level,omitempty"`
	Difficulty   string   `json:"difficulty,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
}

// ToDomain converts the request body into the domain request. Defaults
// are applied by the service, not here.
func (r GenerateRequest) ToDomain() domain.GenerateRequest {
	contentTypes := make([]domain.ContentType, 0, len(r.ContentTypes))
	for _, raw := range r.ContentTypes {
		contentTypes = append(contentTypes, domain.ContentType(raw))
	}
	return domain.GenerateRequest{
		SourceText:   r.SourceText,
		ContentTypes: contentTypes,
		MaxItems:     r.MaxItems,
		Language:     r.Language,
		Level:        r.Level,
		Subject:      r.Subject,
		ClassLevel:   r.ClassLevel,
		Difficulty:   r.Difficulty,
		Instructions: r.Instructions,
	}
}

// ItemResponse represents a generated item in the API response.
type ItemResponse struct {
	ItemType        string   `json:"item_type"`
	Prompt          string   `json:"prompt"`
	CorrectAnswer   string   `json:"correct_answer"`
	Distractors     []string `json:"distractors"`
	AnswerOptions   []string `json:"answer_options"`
	Tags            []string `json:"tags"`
	Difficulty      string   `json:"difficulty"`
	Feedback        string   `json:"feedback,omitempty"`
	SourceReference string   `json:"source_reference"`
}

// BatchResponse represents a persisted generation result in the API response.
// @Description Generated item batch
type BatchResponse struct {
	ID           string         `json:"id"`
	SourceHash   string         `json:"source_hash"`
	Language     string         `json:"language"`
	Level        string         `json:"level"`
	Subject      string         `json:"subject,omitempty"`
	ClassLevel   string         `json:"class_level,omitempty"`
	Difficulty   string         `json:"difficulty"`
	RequestedMax int            `json:"requested_max"`
	CreatedAt    time.Time      `json:"created_at"`
	Items        []ItemResponse `json:"items"`
}

// JobResponse represents an asynchronous generation job in the API response.
// @Description Generation job status
type JobResponse struct {
	ID            string    `json:"id"`
	Status        string    `json:"status"`
	Progress      int       `json:"progress"`
	ResultBatchID string    `json:"result_batch_id,omitempty"`
	ErrorMessage  string    `json:"error_message,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// EnqueueResponse represents the acknowledgement for an async generation request.
// @Description Accepted asynchronous generation job
type EnqueueResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// NewItemResponse maps a domain item onto its wire representation.
func NewItemResponse(item domain.GeneratedItem) ItemResponse {
	return ItemResponse{
		ItemType:        string(item.ItemType),
		Prompt:          item.Prompt,
		CorrectAnswer:   item.CorrectAnswer,
		Distractors:     item.Distractors,
		AnswerOptions:   item.AnswerOptions,
		Tags:            item.Tags,
		Difficulty:      item.Difficulty,
		Feedback:        item.Feedback,
		SourceReference: item.SourceReference,
	}
}

// NewBatchResponse maps a domain batch onto its wire representation.
func NewBatchResponse(batch *domain.ItemBatch) *BatchResponse {
	items := make([]ItemResponse, 0, len(batch.Items))
	for _, item := range batch.Items {
		items = append(items, NewItemResponse(item))
	}
	return &BatchResponse{
		ID:           batch.ID,
		SourceHash:   batch.SourceHash,
		Language:     batch.Language,
		Level:        batch.Level,
		Subject:      batch.Subject,
		ClassLevel:   batch.ClassLevel,
		Difficulty:   batch.Difficulty,
		RequestedMax: batch.RequestedMax,
		CreatedAt:    batch.CreatedAt,
		Items:        items,
	}
}

// NewJobResponse maps a domain job onto its wire representation.
func NewJobResponse(job *domain.GenerationJob) *JobResponse {
	return &JobResponse{
		ID:            job.ID,
		Status:        string(job.Status),
		Progress:      job.Progress,
		ResultBatchID: job.ResultBatchID,
		ErrorMessage:  job.ErrorMessage,
		CreatedAt:     job.CreatedAt,
		UpdatedAt:     job.UpdatedAt,
	}
}
