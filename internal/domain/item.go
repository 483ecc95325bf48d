package domain

import (
	"strings"
	"time"
)

// ItemType identifies the pedagogical shape of a generated item.
type ItemType string

const (
	ItemTypeMCQ             ItemType = "mcq"
	ItemTypePoll            ItemType = "poll"
	ItemTypeOpenQuestion    ItemType = "open_question"
	ItemTypeCloze           ItemType = "cloze"
	ItemTypeMatching        ItemType = "matching"
	ItemTypeBrainstorming   ItemType = "brainstorming"
	ItemTypeFlashcard       ItemType = "flashcard"
	ItemTypeCourseStructure ItemType = "course_structure"
)

// AllItemTypes lists every member of the closed item type enum.
var AllItemTypes = []ItemType{
	ItemTypeMCQ,
	ItemTypePoll,
	ItemTypeOpenQuestion,
	ItemTypeCloze,
	ItemTypeMatching,
	ItemTypeBrainstorming,
	ItemTypeFlashcard,
	ItemTypeCourseStructure,
}

// IsValid reports whether t is a member of the closed enum.
func (t ItemType) IsValid() bool {
	for _, known := range AllItemTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ContentType names a kind of content the caller can request. Content
// types steer the prompt and the fallback templates; most map 1:1 to an
// item type, except the plural "flashcards" which yields flashcard items.
type ContentType string

const (
	ContentTypeCourseStructure ContentType = "course_structure"
	ContentTypeCourseSheet     ContentType = "course_sheet"
	ContentTypeMCQ             ContentType = "mcq"
	ContentTypePoll            ContentType = "poll"
	ContentTypeOpenQuestion    ContentType = "open_question"
	ContentTypeCloze           ContentType = "cloze"
	ContentTypeMatching        ContentType = "matching"
	ContentTypeBrainstorming   ContentType = "brainstorming"
	ContentTypeFlashcards      ContentType = "flashcards"
)

// AllContentTypes lists every requestable content type.
var AllContentTypes = []ContentType{
	ContentTypeCourseStructure,
	ContentTypeCourseSheet,
	ContentTypeMCQ,
	ContentTypePoll,
	ContentTypeOpenQuestion,
	ContentTypeCloze,
	ContentTypeMatching,
	ContentTypeBrainstorming,
	ContentTypeFlashcards,
}

// IsValid reports whether c is a known content type.
func (c ContentType) IsValid() bool {
	for _, known := range AllContentTypes {
		if c == known {
			return true
		}
	}
	return false
}

// ItemType returns the item type produced for this content type.
func (c ContentType) ItemType() ItemType {
	if c == ContentTypeFlashcards {
		return ItemTypeFlashcard
	}
	if c == ContentTypeCourseSheet {
		return ItemTypeCourseStructure
	}
	return ItemType(c)
}

// Difficulty levels for generated items.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// ClampDifficulty maps any raw difficulty string onto the enum,
// defaulting to medium.
func ClampDifficulty(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case DifficultyEasy:
		return DifficultyEasy
	case DifficultyHard:
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// RawItemRecord is one untyped record as decoded from provider output.
// Key names are unreliable; the normalizer resolves them through alias
// tables and consumes each record exactly once.
type RawItemRecord map[string]any

// GeneratedItem is one normalized assessment item.
type GeneratedItem struct {
	ItemType        ItemType `json:"item_type"`
	Prompt          string   `json:"prompt"`
	CorrectAnswer   string   `json:"correct_answer"`
	Distractors     []string `json:"distractors"`
	AnswerOptions   []string `json:"answer_options"`
	Tags            []string `json:"tags"`
	Difficulty      string   `json:"difficulty"`
	Feedback        string   `json:"feedback,omitempty"`
	SourceReference string   `json:"source_reference"`
}

// HasTag reports whether the item carries the given tag,
// case-insensitively.
func (i *GeneratedItem) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// GenerateRequest carries one pipeline invocation's inputs.
type GenerateRequest struct {
	SourceText   string
	ContentTypes []ContentType
	MaxItems     int
	Language     string
	Level        string
	Subject      string
	ClassLevel   string
	Difficulty   string
	Instructions string
}

// ApplyDefaults fills the documented defaults for absent fields.
func (r *GenerateRequest) ApplyDefaults() {
	if r.MaxItems == 0 {
		r.MaxItems = 12
	}
	if r.Language == "" {
		r.Language = "fr"
	}
	if r.Level == "" {
		r.Level = "intermediate"
	}
	if len(r.ContentTypes) == 0 {
		r.ContentTypes = []ContentType{ContentTypeMCQ}
	}
	r.Difficulty = ClampDifficulty(r.Difficulty)
}

// PromptSpec is the prepared input of the prompt builder: the source
// excerpt is already sanitized and capped.
type PromptSpec struct {
	SourceExcerpt string
	ContentTypes  []ContentType
	Instructions  string
	MaxItems      int
	Language      string
	Level         string
	Subject       string
	ClassLevel    string
	Difficulty    string
}

// ItemBatch is a persisted generation result.
type ItemBatch struct {
	ID           string
	SourceHash   string
	Language     string
	Level        string
	Subject      string
	ClassLevel   string
	Difficulty   string
	RequestedMax int
	CreatedAt    time.Time
	Items        []GeneratedItem
}

// NewItemBatch creates a batch shell for a generation result.
func NewItemBatch(id, sourceHash string, req GenerateRequest, items []GeneratedItem) *ItemBatch {
	return &ItemBatch{
		ID:           id,
		SourceHash:   sourceHash,
		Language:     req.Language,
		Level:        req.Level,
		Subject:      req.Subject,
		ClassLevel:   req.ClassLevel,
		Difficulty:   req.Difficulty,
		RequestedMax: req.MaxItems,
		CreatedAt:    time.Now(),
		Items:        items,
	}
}
