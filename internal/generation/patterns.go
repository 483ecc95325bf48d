package generation

import (
	"regexp"

	"quizforge/internal/domain"
)

// itemTypeAliases resolves the many spellings providers use for item
// types. Keys are normalized identifiers, so case, accents and hyphens
// never matter; lookups retry with a trailing plural "s" stripped.
var itemTypeAliases = map[string]domain.ItemType{
	"mcq":             domain.ItemTypeMCQ,
	"qcm":             domain.ItemTypeMCQ,
	"multiple_choice": domain.ItemTypeMCQ,
	"multichoice":     domain.ItemTypeMCQ,
	"single_choice":   domain.ItemTypeMCQ,
	"quiz":            domain.ItemTypeMCQ,

	"poll":           domain.ItemTypePoll,
	"survey":         domain.ItemTypePoll,
	"sondage":        domain.ItemTypePoll,
	"choix_multiple": domain.ItemTypePoll,

	"open_question":    domain.ItemTypeOpenQuestion,
	"question_ouverte": domain.ItemTypeOpenQuestion,
	"open":             domain.ItemTypeOpenQuestion,
	"open_ended":       domain.ItemTypeOpenQuestion,

	"cloze":             domain.ItemTypeCloze,
	"fill_in_the_blank": domain.ItemTypeCloze,
	"texte_a_trous":     domain.ItemTypeCloze,

	"matching":     domain.ItemTypeMatching,
	"association":  domain.ItemTypeMatching,
	"associations": domain.ItemTypeMatching,

	"brainstorming":  domain.ItemTypeBrainstorming,
	"brainstorm":     domain.ItemTypeBrainstorming,
	"remue_meninges": domain.ItemTypeBrainstorming,

	"flashcard":     domain.ItemTypeFlashcard,
	"flashcards":    domain.ItemTypeFlashcard,
	"carte_memoire": domain.ItemTypeFlashcard,

	"course_structure":   domain.ItemTypeCourseStructure,
	"structure_de_cours": domain.ItemTypeCourseStructure,
	"plan_de_cours":      domain.ItemTypeCourseStructure,
}

var (
	numericValuePattern  = regexp.MustCompile(`-?\d+(?:[.,]\d+)?`)
	numericOnlyPattern   = regexp.MustCompile(`^-?\d+(?:[.,]\d+)?$`)
	numericPromptPattern = regexp.MustCompile(`(?i)\b(combien|nombre|valeur|annee|duree|distance|age|pourcentage|taux|note|score|quantite)\b`)

	spellingTokenPattern = regexp.MustCompile(`[A-Za-z][A-Za-z'-]{2,}`)

	// "||" lists serialize multi-valued answers; bare ";" and newlines
	// appear in looser payloads.
	multiAnswerSplitPattern = regexp.MustCompile(`\|\||;|\n`)
	stringListSplitPattern  = regexp.MustCompile(`[;\n|]+`)

	answerLabelPattern    = regexp.MustCompile(`(?i)^\s*reponse\s*[:\-]\s*`)
	associationCuePattern = regexp.MustCompile(`(?i)\bassoc(?:ier|iez|iation)\b`)

	// A prompt reads as a question when it opens on an interrogative or
	// carries a subject-verb inversion ("presente-t-il").
	questionCuePattern         = regexp.MustCompile(`(?i)^(?:quel(?:le)?s?\b|que\b|qu'|qui\b|quand\b|comment\b|pourquoi\b|combien\b|ou\b|où\b|est-ce\b)|-t?-?(?:il|elle|ils|elles|on|vous|nous|tu|je)\b`)
	terminalPunctuationPattern = regexp.MustCompile(`[.?!…:]\s*$`)

	sourceLabelPattern       = regexp.MustCompile(`(?i)\bsource\s+(youtube|web)\s*:\s*`)
	videoIDLabelPattern      = regexp.MustCompile(`(?i)\bidentifiant\s+video\s*:\s*`)
	titleChannelLabelPattern = regexp.MustCompile(`(?i)\b(titre|chaine)\s*:\s*`)
	retrievalFailurePattern  = regexp.MustCompile(`(?i)\brecuperation\s+impossible\s*:\s*`)
	moreInformationPattern   = regexp.MustCompile(`(?i)\bfor\s+more\s+information\s+check\s*:\s*`)
	wireErrorPattern         = regexp.MustCompile(`(?i)\b(client|http)\s+error\s*['"]?\d{3}[^:]*:\s*`)
	spaceRunPattern          = regexp.MustCompile(`\s{2,}`)
)

// spellingStopwords are interrogatives and function words that must not
// become a spelling exercise answer.
var spellingStopwords = map[string]struct{}{
	"quelle":   {},
	"quelles":  {},
	"comment":  {},
	"pourquoi": {},
	"avec":     {},
	"dans":     {},
	"sans":     {},
}

// itemShapeTags are tags that merely restate the item shape; they are
// dropped when an item is rewritten into another shape.
var itemShapeTags = map[string]struct{}{
	"mcq":              {},
	"open_question":    {},
	"poll":             {},
	"cloze":            {},
	"matching":         {},
	"flashcard":        {},
	"course_structure": {},
	"brainstorming":    {},
}
