// Package export checks stored batches against export target
// constraints before any artifact leaves the system. It renders
// nothing; it only reports which items a target would accept.
package export

import "quizforge/internal/domain"

// Verdict reasons, one per skip or downgrade condition.
const (
	ReasonEmptyPrompt           = "empty_prompt"
	ReasonMissingExpectedAnswer = "missing_expected_answer"
	ReasonMissingDistractors    = "missing_distractors"
	ReasonInsufficientPairs     = "insufficient_pairs"
	ReasonWeakPairDefinitions   = "weak_pair_definitions"
	ReasonUnsupportedItemType   = "unsupported_item_type"
)

// ItemVerdict is the exportability decision for one item.
type ItemVerdict struct {
	ItemIndex    int      `json:"item_index"`
	ItemType     string   `json:"item_type"`
	Exportable   bool     `json:"exportable"`
	PronoteReady bool     `json:"pronote_ready"`
	PairCount    int      `json:"pair_count,omitempty"`
	Reasons      []string `json:"reasons,omitempty"`
}

// Report is the preflight result for one batch against one format.
type Report struct {
	Format          string        `json:"format"`
	BatchID         string        `json:"batch_id"`
	ExportableCount int           `json:"exportable_count"`
	SkippedCount    int           `json:"skipped_count"`
	Items           []ItemVerdict `json:"items"`
}

// Exporter validates a batch against one export format.
type Exporter interface {
	Format() string
	Validate(batch *domain.ItemBatch) Report
}
