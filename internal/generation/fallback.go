package generation

import (
	"fmt"

	"quizforge/internal/domain"
	"quizforge/internal/matching"
	"quizforge/internal/util"
)

// RuleBasedFallback builds deterministic items straight from the source
// text when the provider payload is unusable. Content types cycle in
// request order over the informative sentences of the source, so a
// twelve-item request across two types yields six of each.
func RuleBasedFallback(sourceText string, contentTypes []domain.ContentType, maxItems int) []domain.GeneratedItem {
	prepared := util.CleanSourceText(sourceText)
	sentences := util.SplitInformativeSentences(prepared, 24, 48)
	if len(sentences) == 0 {
		sentences = []string{"Le document presente des notions importantes."}
	}

	typesCycle := contentTypes
	if len(typesCycle) == 0 {
		typesCycle = []domain.ContentType{domain.ContentTypeMCQ}
	}

	items := make([]domain.GeneratedItem, 0, maxItems)
	for index := 0; index < maxItems; index++ {
		number := index + 1
		contentType := typesCycle[index%len(typesCycle)]
		sentence := sentences[index%len(sentences)]
		sourceReference := fmt.Sprintf("section:%d", index%len(sentences)+1)

		switch contentType {
		case domain.ContentTypeMCQ:
			items = append(items, domain.GeneratedItem{
				ItemType:      domain.ItemTypeMCQ,
				Prompt:        fmt.Sprintf("Q%d. Quelle proposition resume le mieux: %s ?", number, util.TruncateRunes(sentence, 120)),
				CorrectAnswer: sentence,
				Distractors: []string{
					fmt.Sprintf("Une idee annexe non traitee (%d)", number),
					fmt.Sprintf("Une conclusion sans lien direct (%d)", number),
					fmt.Sprintf("Un exemple contradictoire (%d)", number),
				},
				Tags:            []string{"auto"},
				Difficulty:      domain.DifficultyMedium,
				SourceReference: sourceReference,
			})
		case domain.ContentTypeOpenQuestion:
			items = append(items, domain.GeneratedItem{
				ItemType:        domain.ItemTypeOpenQuestion,
				Prompt:          fmt.Sprintf("Question ouverte %d: explique en detail: %s", number, sentence),
				CorrectAnswer:   "Attendus: definition, exemple, conclusion critique.",
				Tags:            []string{"open"},
				Difficulty:      domain.DifficultyMedium,
				SourceReference: sourceReference,
			})
		case domain.ContentTypeFlashcards:
			items = append(items, domain.GeneratedItem{
				ItemType:        domain.ItemTypeFlashcard,
				Prompt:          fmt.Sprintf("Carte %d: notion cle", number),
				CorrectAnswer:   sentence,
				Tags:            []string{"flashcard"},
				Difficulty:      domain.DifficultyEasy,
				SourceReference: sourceReference,
			})
		case domain.ContentTypePoll:
			items = append(items, domain.GeneratedItem{
				ItemType: domain.ItemTypePoll,
				Prompt:   fmt.Sprintf("Sondage %d: quel angle est le plus pertinent pour '%s' ?", number, util.TruncateRunes(sentence, 60)),
				AnswerOptions: []string{
					"Approche theorique",
					"Approche pratique",
					"Approche critique",
				},
				Tags:            []string{"poll"},
				Difficulty:      domain.DifficultyEasy,
				SourceReference: sourceReference,
			})
		case domain.ContentTypeCloze:
			items = append(items, domain.GeneratedItem{
				ItemType:        domain.ItemTypeCloze,
				Prompt:          fmt.Sprintf("Texte a trous %d: complete: %s ____.", number, util.TruncateRunes(sentence, 100)),
				CorrectAnswer:   "mot-cle",
				Tags:            []string{"cloze"},
				Difficulty:      domain.DifficultyMedium,
				SourceReference: sourceReference,
			})
		case domain.ContentTypeMatching:
			pairs := matching.BuildFallbackPairs(prepared, 4)
			items = append(items, domain.GeneratedItem{
				ItemType:        domain.ItemTypeMatching,
				Prompt:          fmt.Sprintf("Associez chaque notion a sa definition (contexte: %s).", util.TruncateRunes(sentence, 90)),
				CorrectAnswer:   matching.FormatPairs(pairs),
				AnswerOptions:   matching.FormatOptions(pairs),
				Tags:            []string{"matching"},
				Difficulty:      domain.DifficultyMedium,
				SourceReference: sourceReference,
			})
		case domain.ContentTypeBrainstorming:
			items = append(items, domain.GeneratedItem{
				ItemType:        domain.ItemTypeBrainstorming,
				Prompt:          fmt.Sprintf("Brainstorming %d: propose 5 idees liees a: %s", number, util.TruncateRunes(sentence, 90)),
				CorrectAnswer:   "Categories: causes, effets, applications",
				Tags:            []string{"brainstorming"},
				Difficulty:      domain.DifficultyEasy,
				SourceReference: sourceReference,
			})
		default:
			items = append(items, domain.GeneratedItem{
				ItemType:        domain.ItemTypeCourseStructure,
				Prompt:          fmt.Sprintf("Structure %d proposee pour %s", number, contentType),
				CorrectAnswer:   fmt.Sprintf("1) Introduction 2) Concepts cles 3) Exercices sur: %s", util.TruncateRunes(sentence, 80)),
				Tags:            []string{string(contentType)},
				Difficulty:      domain.DifficultyMedium,
				SourceReference: sourceReference,
			})
		}
	}
	return items
}
