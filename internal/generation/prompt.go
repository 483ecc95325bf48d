package generation

import (
	"fmt"
	"strings"

	"quizforge/internal/domain"
)

const lyceeWordingRule = "- Niveau lycee: vocabulaire B1-B2, exemples concrets proches du quotidien scolaire, pas de jargon inutile."

// lyceeKeywords flag class levels that need the high-school wording
// rule. Matched as substrings of the lowered class value, so "Terminale
// spe maths" qualifies.
var lyceeKeywords = []string{"lycee", "2de", "seconde", "1ere", "premiere", "terminale", "bac"}

const generationPromptTemplate = `Tu es un generateur de contenu pedagogique.
Regles strictes:
- Retourne UNIQUEMENT un JSON valide.
- N'ajoute AUCUN markdown, aucune balise, aucun texte hors JSON.
- Cle principale: items (liste), content_types (liste).
- Limite: %d items max.
- Langue: %s
- Niveau: %s
- Matiere: %s
- Classe cible: %s
- Difficulte cible: %s
- Types demandes: %s
- Anti-hallucination: cite source_reference type 'section:X' quand possible.
- Pour les QCM: 1 bonne reponse + 3 distracteurs minimum.
- Pour les associations: format strict "Concept complet -> Definition complete" (pas de mots isoles).
- Formulation eleve: enonce clair, phrase courte (idealement <= 22 mots), une seule idee evaluee par question.
- Formulation eleve: evite les formulations floues ("idee principale de la section"), prefere des questions contextualisees et verifiables.
- Formulation eleve: vocabulaire simple, direct, adapte a la classe cible; evite les doubles negations et les ambiguities.
- Qualite pedagogique: distracteurs plausibles (erreurs frequentes d'eleves), jamais absurdes, jamais hors sujet.
- Qualite pedagogique: reponse attendue concise et exploitable par un enseignant (sauf numerique/association/texte a trous).
%s
- Structure item:
  {
    "item_type": "mcq|open_question|poll|cloze|matching|brainstorming|flashcard|course_structure",
    "prompt": "question",
    "correct_answer": "reponse attendue",
    "distractors": ["...", "...", "..."],
    "answer_options": ["..."],
    "tags": ["..."],
    "difficulty": "easy|medium|hard",
    "feedback": "optionnel",
    "source_reference": "section:1"
  }

Instructions supplementaires:
%s

Source normalisee:
%s`

// BuildPrompt renders the strict JSON generation prompt. SourceExcerpt
// must already be sanitized and capped; everything else defaults here
// so callers can pass requests through untouched.
func BuildPrompt(spec domain.PromptSpec) string {
	types := make([]string, 0, len(spec.ContentTypes))
	for _, contentType := range spec.ContentTypes {
		types = append(types, string(contentType))
	}

	extra := strings.TrimSpace(spec.Instructions)
	if extra == "" {
		extra = "Aucune instruction supplementaire."
	}
	subjectValue := strings.TrimSpace(spec.Subject)
	if subjectValue == "" {
		subjectValue = "non precisee"
	}
	classValue := strings.TrimSpace(spec.ClassLevel)
	if classValue == "" {
		classValue = spec.Level
	}
	difficultyValue := strings.TrimSpace(spec.Difficulty)
	if difficultyValue == "" {
		difficultyValue = "medium"
	}

	wordingRule := ""
	loweredClass := strings.ToLower(classValue)
	for _, keyword := range lyceeKeywords {
		if strings.Contains(loweredClass, keyword) {
			wordingRule = lyceeWordingRule
			break
		}
	}

	return strings.TrimSpace(fmt.Sprintf(
		generationPromptTemplate,
		spec.MaxItems,
		spec.Language,
		spec.Level,
		subjectValue,
		classValue,
		difficultyValue,
		strings.Join(types, ", "),
		wordingRule,
		extra,
		spec.SourceExcerpt,
	))
}

const pairsPoolPromptTemplate = `Tu es un expert pedagogique. Construis des paires d'association coherentes pour des eleves.
Retourne UNIQUEMENT un JSON valide de la forme:
{
  "pairs": [
    {"left": "Notion complete", "right": "Definition complete et pedagogique"},
    ...
  ]
}

Contraintes strictes:
- Produis exactement %d paires, TOUTES DIFFERENTES entre elles.
- CHAQUE paire doit porter sur une notion DISTINCTE. Ne jamais reformuler la meme notion.
- left: notion disciplinaire complete (2 a 6 mots), sans verbe conjugue, sans fragment.
- right: phrase complete de definition (10 a 24 mots), explicite, sans texte tronque.
- right: NE COMMENCE JAMAIS par "est", "sont", "c'est" ou un verbe d'etat. Ecris directement une definition sous forme de groupe nominal ou phrase autonome.
  Exemple correct: "Transfert d'energie thermique par contact direct entre deux corps."
  Exemple incorrect: "Est un transfert d'energie thermique par contact."
- TOUS les mots doivent etre COMPLETS. Jamais de mot coupe ou tronque. Jamais de lettre manquante.
- Les accents doivent etre corrects : é, è, ê, à, ù, ç, etc.
- right: la definition NE DOIT PAS contenir le terme exact de left ni un mot qui donne directement la reponse. L'eleve doit reflechir pour trouver l'association.
  Exemple correct: left="Signal sinusoidal", right="Forme d'onde periodique decrite par une fonction trigonometrique lisse"
  Exemple incorrect: left="Signal sinusoidal", right="Signal periodique dont la forme est sinusoidale"
- Interdit dans left: mots de liaison, adverbes temporels, formulations narratives.
- Evite les parentheses avec des symboles ou abreviations dans left et right.
- Utilise les notions fondamentales presentes dans la source.
- Verifie que chaque paire est unique et non redondante avant de la produire.
- Langue: %s
- Niveau: %s
- Classe: %s
- Matiere: %s

Source:
%s`

type pairsPromptSpec struct {
	TargetSize    int
	Language      string
	Level         string
	Subject       string
	ClassLevel    string
	SourceExcerpt string
}

// buildPairsPrompt renders the dedicated association-pair refinement
// prompt used by the pool pass.
func buildPairsPrompt(spec pairsPromptSpec) string {
	subjectValue := strings.TrimSpace(spec.Subject)
	if subjectValue == "" {
		subjectValue = "non precisee"
	}
	classValue := strings.TrimSpace(spec.ClassLevel)
	if classValue == "" {
		classValue = spec.Level
	}

	return strings.TrimSpace(fmt.Sprintf(
		pairsPoolPromptTemplate,
		spec.TargetSize,
		spec.Language,
		spec.Level,
		classValue,
		subjectValue,
		spec.SourceExcerpt,
	))
}
