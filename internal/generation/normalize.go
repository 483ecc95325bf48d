package generation

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"quizforge/internal/domain"
	"quizforge/internal/util"
)

var (
	typeKeys       = []string{"item_type", "type", "question_type", "content_type", "kind"}
	promptKeys     = []string{"prompt", "question", "question_text", "enonce", "statement", "text", "title"}
	answerKeys     = []string{"correct_answer", "answer", "bonne_reponse", "expected_answer", "solution"}
	distractorKeys = []string{"distractors", "wrong_answers", "incorrect_answers", "false_answers"}
	optionKeys     = []string{"answer_options", "options", "choices", "responses"}
	difficultyKeys = []string{"difficulty", "level", "difficulte"}
	feedbackKeys   = []string{"feedback", "explanation", "commentaire"}
	sourceRefKeys  = []string{"source_reference", "source", "reference", "section"}
)

// DefaultItemType is the type assigned to records that do not declare
// one: the first requested content type's item type, MCQ when nothing
// was requested.
func DefaultItemType(requested []domain.ContentType) domain.ItemType {
	if len(requested) == 0 {
		return domain.ItemTypeMCQ
	}
	return requested[0].ItemType()
}

// CoerceItems normalizes parsed records one by one, so a single
// malformed record never costs the whole batch.
func CoerceItems(records []domain.RawItemRecord, requested []domain.ContentType) []domain.GeneratedItem {
	defaultType := DefaultItemType(requested)
	items := make([]domain.GeneratedItem, 0, len(records))
	for index, record := range records {
		item, ok := NormalizeRecord(record, defaultType, index)
		if !ok {
			continue
		}
		items = append(items, item)
	}
	return items
}

// NormalizeRecord maps one heterogeneous record onto the canonical item
// shape. Records without a usable prompt are dropped.
func NormalizeRecord(record domain.RawItemRecord, defaultType domain.ItemType, position int) (domain.GeneratedItem, bool) {
	itemType := parseItemType(CoerceText(pickFirst(record, typeKeys)), defaultType)
	prompt := CoerceText(pickFirst(record, promptKeys))
	if prompt == "" {
		return domain.GeneratedItem{}, false
	}

	correctAnswer := CoerceText(pickFirst(record, answerKeys))
	distractors := CoerceStringList(pickFirst(record, distractorKeys))
	answerOptions := CoerceStringList(pickFirst(record, optionKeys))
	tags := CoerceStringList(record["tags"])
	if len(tags) == 0 {
		tags = []string{string(itemType)}
	}
	difficulty := domain.ClampDifficulty(CoerceText(pickFirst(record, difficultyKeys)))
	feedback := CoerceText(pickFirst(record, feedbackKeys))

	sourceReference := CoerceText(pickFirst(record, sourceRefKeys))
	if sourceReference != "" && isDigits(sourceReference) {
		sourceReference = "section:" + sourceReference
	}
	if sourceReference == "" {
		sourceReference = fmt.Sprintf("section:%d", position+1)
	}

	if itemType == domain.ItemTypeMCQ {
		if correctAnswer == "" && len(answerOptions) > 0 {
			correctAnswer = answerOptions[0]
		}
		if len(answerOptions) > 0 && len(distractors) == 0 {
			distractors = answerOptions
		}
		// Short MCQs export with fewer choices rather than padded
		// with generic filler text.
		merged := util.DedupeStrings(distractors)
		distractors = make([]string, 0, len(merged))
		for _, option := range merged {
			if !strings.EqualFold(option, strings.TrimSpace(correctAnswer)) {
				distractors = append(distractors, option)
			}
		}
		if len(distractors) > 3 {
			distractors = distractors[:3]
		}
		answerOptions = nil
	}

	if itemType == domain.ItemTypePoll {
		pollOptions := answerOptions
		if len(pollOptions) == 0 {
			pollOptions = distractors
		}
		pollOptions = util.DedupeStrings(pollOptions)
		if len(pollOptions) > 6 {
			pollOptions = pollOptions[:6]
		}
		answerOptions = pollOptions
		correctAnswer = ""
		distractors = nil
	}

	return domain.GeneratedItem{
		ItemType:        itemType,
		Prompt:          prompt,
		CorrectAnswer:   correctAnswer,
		Distractors:     util.DedupeStrings(distractors),
		AnswerOptions:   util.DedupeStrings(answerOptions),
		Tags:            util.DedupeStrings(tags),
		Difficulty:      difficulty,
		Feedback:        feedback,
		SourceReference: sourceReference,
	}, true
}

// parseItemType resolves an item type through the alias table, retrying
// with a trailing plural stripped, falling back to the caller default.
func parseItemType(raw string, defaultType domain.ItemType) domain.ItemType {
	normalized := util.NormalizeIdentifier(raw)
	if normalized == "" {
		return defaultType
	}
	if mapped, ok := itemTypeAliases[normalized]; ok {
		return mapped
	}
	if trimmed := strings.TrimSuffix(normalized, "s"); trimmed != normalized {
		if mapped, ok := itemTypeAliases[trimmed]; ok {
			return mapped
		}
	}
	return defaultType
}

// pickFirst reads the first available value among key aliases: exact
// key presence wins, then presence under normalized identifiers, so
// "Question-Text" satisfies the "question_text" alias.
func pickFirst(record domain.RawItemRecord, keys []string) any {
	for _, key := range keys {
		if value, present := record[key]; present {
			return value
		}
	}

	normalized := make(map[string]any, len(record))
	for key, value := range record {
		normalized[util.NormalizeIdentifier(key)] = value
	}
	for _, key := range keys {
		if value, present := normalized[util.NormalizeIdentifier(key)]; present {
			return value
		}
	}
	return nil
}

// CoerceText extracts a usable string from a loosely typed payload
// value: strings are trimmed, numbers keep their literal form, and
// mappings are probed for their usual text-bearing keys.
func CoerceText(raw any) string {
	switch value := raw.(type) {
	case string:
		return strings.TrimSpace(value)
	case json.Number:
		return value.String()
	case map[string]any:
		for _, key := range []string{"text", "value", "content", "label"} {
			if candidate, isText := value[key].(string); isText && strings.TrimSpace(candidate) != "" {
				return strings.TrimSpace(candidate)
			}
		}
	}
	return ""
}

// CoerceStringList accepts a list, a delimited string or a single
// mapping and returns trimmed, case-insensitively deduped entries.
func CoerceStringList(raw any) []string {
	switch value := raw.(type) {
	case string:
		if strings.TrimSpace(value) == "" {
			return nil
		}
		return util.DedupeStrings(stringListSplitPattern.Split(value, -1))
	case map[string]any:
		if text := CoerceText(value); text != "" {
			return []string{text}
		}
	case []any:
		values := make([]string, 0, len(value))
		for _, entry := range value {
			if text := CoerceText(entry); text != "" {
				values = append(values, text)
			}
		}
		return util.DedupeStrings(values)
	}
	return nil
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
