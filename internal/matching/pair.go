// Package matching extracts, validates, scores and selects
// concept/definition association pairs from unreliable text. It is the
// single authority on pair quality: item generation, export preflight
// and quality audits all judge pairs through this package, so a pair
// accepted at generation time is accepted at export time too.
package matching

import "strings"

// Pair is one association candidate: a short concept label on the left
// and a self-contained definition on the right.
type Pair struct {
	Left  string
	Right string
}

// Format renders the pair in the canonical "left -> right" wire form.
func (p Pair) Format() string {
	return p.Left + " -> " + p.Right
}

// key is the exact-duplicate identity used by pool deduplication.
func (p Pair) key() [2]string {
	return [2]string{
		strings.ToLower(strings.TrimSpace(p.Left)),
		strings.ToLower(strings.TrimSpace(p.Right)),
	}
}

// FormatPairs joins pairs into the serialized correct-answer payload.
func FormatPairs(pairs []Pair) string {
	parts := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		parts = append(parts, pair.Format())
	}
	return strings.Join(parts, " || ")
}

// FormatOptions renders each pair as one answer option entry.
func FormatOptions(pairs []Pair) []string {
	options := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		options = append(options, pair.Format())
	}
	return options
}

// PlaceholderPairs is the deterministic last-resort pool used when no
// usable pair survives validation. Identical across processes.
func PlaceholderPairs() []Pair {
	return []Pair{
		{Left: "Concept principal", Right: "Definition complete basee sur le texte source."},
		{Left: "Notion cle", Right: "Lien explicite avec le contenu pedagogique fourni."},
		{Left: "Exemple concret", Right: "Illustration precise qui aide a valider la comprehension."},
	}
}
