package generation

import (
	"encoding/json"
	"testing"

	"quizforge/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRecordAliases(t *testing.T) {
	record := domain.RawItemRecord{
		"question_type": "QCM",
		"enonce":        "  Quelle est la capitale de la France ?  ",
		"bonne_reponse": "Paris",
		"wrong_answers": []any{"Lyon", "Marseille"},
		"difficulte":    "Hard",
		"commentaire":   "La capitale administrative.",
		"source":        "2",
	}

	item, ok := NormalizeRecord(record, domain.ItemTypeOpenQuestion, 0)
	assert.True(t, ok)
	assert.Equal(t, domain.ItemTypeMCQ, item.ItemType)
	assert.Equal(t, "Quelle est la capitale de la France ?", item.Prompt)
	assert.Equal(t, "Paris", item.CorrectAnswer)
	assert.Equal(t, []string{"Lyon", "Marseille"}, item.Distractors)
	assert.Equal(t, "hard", item.Difficulty)
	assert.Equal(t, "La capitale administrative.", item.Feedback)
	assert.Equal(t, "section:2", item.SourceReference)
	assert.Equal(t, []string{"mcq"}, item.Tags)
}

func TestNormalizeRecordDropsPromptlessRecords(t *testing.T) {
	_, ok := NormalizeRecord(domain.RawItemRecord{"answer": "Paris"}, domain.ItemTypeMCQ, 0)
	assert.False(t, ok)
}

func TestNormalizeRecordTypeResolution(t *testing.T) {
	tests := []struct {
		name     string
		rawType  string
		expected domain.ItemType
	}{
		{"plural retry", "QCMs", domain.ItemTypeMCQ},
		{"accented alias", "Remue-Méninges", domain.ItemTypeBrainstorming},
		{"spaced alias", "texte a trous", domain.ItemTypeCloze},
		{"poll alias", "choix multiple", domain.ItemTypePoll},
		{"unknown keeps default", "devinette", domain.ItemTypeOpenQuestion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := domain.RawItemRecord{"type": tt.rawType, "prompt": "p"}
			item, ok := NormalizeRecord(record, domain.ItemTypeOpenQuestion, 0)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, item.ItemType)
		})
	}
}

func TestNormalizeRecordNormalizedKeyAliases(t *testing.T) {
	record := domain.RawItemRecord{"Question-Text": "Quelle est la bonne reponse ?"}
	item, ok := NormalizeRecord(record, domain.ItemTypeMCQ, 0)
	assert.True(t, ok)
	assert.Equal(t, "Quelle est la bonne reponse ?", item.Prompt)
}

func TestNormalizeRecordMCQRepair(t *testing.T) {
	record := domain.RawItemRecord{
		"type":    "mcq",
		"prompt":  "Capitale de la France ?",
		"choices": []any{"Paris", "Lyon", "Paris", "Nice"},
	}

	item, ok := NormalizeRecord(record, domain.ItemTypeMCQ, 0)
	assert.True(t, ok)
	assert.Equal(t, "Paris", item.CorrectAnswer, "first option promoted to answer")
	assert.Equal(t, []string{"Lyon", "Nice"}, item.Distractors)
	assert.Empty(t, item.AnswerOptions, "mcq items carry distractors, not options")
}

func TestNormalizeRecordMCQDistractorCap(t *testing.T) {
	record := domain.RawItemRecord{
		"type":        "mcq",
		"prompt":      "p",
		"answer":      "A",
		"distractors": []any{"B", "C", "D", "E", "F"},
	}

	item, ok := NormalizeRecord(record, domain.ItemTypeMCQ, 0)
	assert.True(t, ok)
	assert.Len(t, item.Distractors, 3)
}

func TestNormalizeRecordMCQDropsAnswerFromDistractors(t *testing.T) {
	record := domain.RawItemRecord{
		"type":        "mcq",
		"prompt":      "p",
		"answer":      "Paris",
		"distractors": []any{"PARIS", "Lyon", "paris", "Nice"},
	}

	item, ok := NormalizeRecord(record, domain.ItemTypeMCQ, 0)
	assert.True(t, ok)
	assert.Equal(t, []string{"Lyon", "Nice"}, item.Distractors,
		"the answer never survives in the distractor set, whatever its casing")
}

func TestNormalizeRecordPollRepair(t *testing.T) {
	record := domain.RawItemRecord{
		"type":    "sondage",
		"prompt":  "Votre avis ?",
		"answer":  "A",
		"options": []any{"Pour", "Contre", "Pour", "Sans avis"},
	}

	item, ok := NormalizeRecord(record, domain.ItemTypeMCQ, 0)
	assert.True(t, ok)
	assert.Equal(t, domain.ItemTypePoll, item.ItemType)
	assert.Equal(t, []string{"Pour", "Contre", "Sans avis"}, item.AnswerOptions)
	assert.Empty(t, item.CorrectAnswer, "polls have no correct answer")
	assert.Empty(t, item.Distractors)
}

func TestNormalizeRecordPollFallsBackToDistractors(t *testing.T) {
	record := domain.RawItemRecord{
		"type":        "poll",
		"prompt":      "p",
		"distractors": []any{"Option 1", "Option 2"},
	}

	item, ok := NormalizeRecord(record, domain.ItemTypeMCQ, 0)
	assert.True(t, ok)
	assert.Equal(t, []string{"Option 1", "Option 2"}, item.AnswerOptions)
}

func TestNormalizeRecordSourceReferences(t *testing.T) {
	t.Run("bare digits gain the section prefix", func(t *testing.T) {
		item, _ := NormalizeRecord(domain.RawItemRecord{"prompt": "p", "reference": "12"}, domain.ItemTypeMCQ, 0)
		assert.Equal(t, "section:12", item.SourceReference)
	})

	t.Run("textual reference kept verbatim", func(t *testing.T) {
		item, _ := NormalizeRecord(domain.RawItemRecord{"prompt": "p", "reference": "chapitre 2"}, domain.ItemTypeMCQ, 0)
		assert.Equal(t, "chapitre 2", item.SourceReference)
	})

	t.Run("absent reference derives from position", func(t *testing.T) {
		item, _ := NormalizeRecord(domain.RawItemRecord{"prompt": "p"}, domain.ItemTypeMCQ, 4)
		assert.Equal(t, "section:5", item.SourceReference)
	})
}

func TestNormalizeRecordNumberAnswers(t *testing.T) {
	item, _ := NormalizeRecord(domain.RawItemRecord{"prompt": "Combien ?", "answer": json.Number("3.0")}, domain.ItemTypeOpenQuestion, 0)
	assert.Equal(t, "3.0", item.CorrectAnswer, "number literals survive coercion unchanged")
}

func TestCoerceText(t *testing.T) {
	assert.Equal(t, "Paris", CoerceText("  Paris  "))
	assert.Equal(t, "3", CoerceText(json.Number("3")))
	assert.Equal(t, "Paris", CoerceText(map[string]any{"text": "Paris"}))
	assert.Equal(t, "Paris", CoerceText(map[string]any{"label": "Paris"}))
	assert.Equal(t, "", CoerceText(nil))
	assert.Equal(t, "", CoerceText([]any{"Paris"}))
}

func TestCoerceStringList(t *testing.T) {
	t.Run("delimited string", func(t *testing.T) {
		assert.Equal(t,
			[]string{"Paris", "Lyon", "Nice", "Toulouse"},
			CoerceStringList("Paris; Lyon | Nice\nToulouse"))
	})

	t.Run("list of mixed values", func(t *testing.T) {
		assert.Equal(t,
			[]string{"A", "B", "3"},
			CoerceStringList([]any{"A", map[string]any{"text": "B"}, json.Number("3"), nil}))
	})

	t.Run("case insensitive dedupe", func(t *testing.T) {
		assert.Equal(t, []string{"Paris"}, CoerceStringList([]any{"Paris", "paris", " PARIS "}))
	})

	t.Run("single mapping", func(t *testing.T) {
		assert.Equal(t, []string{"Seul"}, CoerceStringList(map[string]any{"value": "Seul"}))
	})
}

func TestCoerceItems(t *testing.T) {
	records := []domain.RawItemRecord{
		{"prompt": "q1"},
		{"answer": "sans question"},
		{"prompt": "q3"},
	}

	items := CoerceItems(records, []domain.ContentType{domain.ContentTypeFlashcards})
	assert.Len(t, items, 2)
	assert.Equal(t, domain.ItemTypeFlashcard, items[0].ItemType, "flashcards requests default to flashcard items")
	assert.Equal(t, "section:1", items[0].SourceReference)
	assert.Equal(t, "section:3", items[1].SourceReference, "positions follow the record index, not the kept count")
}

func TestDefaultItemType(t *testing.T) {
	assert.Equal(t, domain.ItemTypeMCQ, DefaultItemType(nil))
	assert.Equal(t, domain.ItemTypeCourseStructure, DefaultItemType([]domain.ContentType{domain.ContentTypeCourseSheet}))
}
