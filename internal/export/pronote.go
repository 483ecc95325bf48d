package export

import (
	"strings"

	"quizforge/internal/domain"
	"quizforge/internal/matching"
)

// FormatPronote names the Pronote question bank target.
const FormatPronote = "pronote"

// PronoteSafetyNet re-validates a stored batch against the constraints
// the Pronote question format imposes. Association items are judged by
// the same matching engine that built them, on the pairs the item
// itself declares, so an item the net accepts cannot fail later when a
// real artifact is rendered.
type PronoteSafetyNet struct{}

// NewPronoteSafetyNet creates the Pronote preflight exporter.
func NewPronoteSafetyNet() *PronoteSafetyNet {
	return &PronoteSafetyNet{}
}

func (e *PronoteSafetyNet) Format() string {
	return FormatPronote
}

// Validate produces one verdict per item. Items the format cannot
// carry, or that lack the answers it requires, are marked skipped.
func (e *PronoteSafetyNet) Validate(batch *domain.ItemBatch) Report {
	report := Report{Format: FormatPronote, Items: []ItemVerdict{}}
	if batch == nil {
		return report
	}

	report.BatchID = batch.ID
	for index, item := range batch.Items {
		verdict := judgeItem(item)
		verdict.ItemIndex = index + 1
		verdict.ItemType = string(item.ItemType)
		if verdict.Exportable {
			report.ExportableCount++
		} else {
			report.SkippedCount++
		}
		report.Items = append(report.Items, verdict)
	}
	return report
}

func judgeItem(item domain.GeneratedItem) ItemVerdict {
	if strings.TrimSpace(item.Prompt) == "" {
		return ItemVerdict{Reasons: []string{ReasonEmptyPrompt}}
	}

	// mcq, poll and cloze map onto Pronote question shapes directly;
	// everything else only exports when it carries association pairs
	correct := strings.TrimSpace(item.CorrectAnswer)
	switch item.ItemType {
	case domain.ItemTypeMCQ:
		if correct == "" && len(nonEmpty(item.AnswerOptions)) == 0 {
			return ItemVerdict{Reasons: []string{ReasonMissingExpectedAnswer}}
		}
		return ItemVerdict{Exportable: true, PronoteReady: true}
	case domain.ItemTypePoll:
		if correct == "" {
			return ItemVerdict{Reasons: []string{ReasonMissingExpectedAnswer}}
		}
		if len(pollDistractors(item, correct)) == 0 {
			return ItemVerdict{Reasons: []string{ReasonMissingDistractors}}
		}
		return ItemVerdict{Exportable: true, PronoteReady: true}
	case domain.ItemTypeCloze:
		if correct == "" && !strings.Contains(item.Prompt, "{:MULTICHOICE:") {
			return ItemVerdict{Reasons: []string{ReasonMissingExpectedAnswer}}
		}
		return ItemVerdict{Exportable: true, PronoteReady: true}
	}

	if matching.LooksLikeMatchingItem(item) {
		return judgeMatchingItem(item)
	}
	return ItemVerdict{Reasons: []string{ReasonUnsupportedItemType}}
}

func judgeMatchingItem(item domain.GeneratedItem) ItemVerdict {
	pairs := matching.DeclaredPairs(item)
	verdict := ItemVerdict{PairCount: len(pairs)}

	if !matching.Exportable(pairs) {
		verdict.Reasons = []string{ReasonInsufficientPairs}
		return verdict
	}

	verdict.Exportable = true
	if matching.PronoteReady(pairs) {
		verdict.PronoteReady = true
	} else {
		verdict.Reasons = []string{ReasonWeakPairDefinitions}
	}
	return verdict
}

func pollDistractors(item domain.GeneratedItem, correct string) []string {
	expected := strings.ToLower(correct)
	var distractors []string
	for _, option := range append(nonEmpty(item.AnswerOptions), nonEmpty(item.Distractors)...) {
		if strings.ToLower(option) != expected {
			distractors = append(distractors, option)
		}
	}
	return distractors
}

func nonEmpty(values []string) []string {
	var cleaned []string
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}
