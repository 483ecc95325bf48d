package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSide(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		maxWords int
		minWords int
		want     string
	}{
		{"collapses and trims", "  Le   routeur  ", 8, 1, "Le routeur"},
		{"strips numbering prefix", "1. Le routeur", 8, 1, "Le routeur"},
		{"drops dangling parenthetical", "Transport fiable (TCP", 8, 1, "Transport fiable"},
		{"too many words", "un deux trois quatre", 3, 1, ""},
		{"too few words", "seul", 8, 2, ""},
		{"empty input", "   ", 8, 1, ""},
		{"punctuation only", "***", 8, 1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSide(tt.value, tt.maxWords, tt.minWords))
		})
	}
}

func TestNormalizeLeftCandidate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"splits relative clause", "Le routeur qui oriente les paquets", "Le routeur"},
		{"drops universal determiner", "Chaque protocole de transport", "protocole de transport"},
		{"cuts dangling preposition", "Le protocole de", "Le protocole"},
		{"keeps plain label", "Photosynthèse", "Photosynthèse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeLeftCandidate(tt.value))
		})
	}
}

func TestNormalizeLeftDisplay(t *testing.T) {
	assert.Equal(t, "Routeur central", NormalizeLeftDisplay("routeur central"))
	assert.Equal(t, "TCP", NormalizeLeftDisplay("TCP"))
	assert.Equal(t, "Énergie", NormalizeLeftDisplay("énergie"))
}

func TestStripLeadingArticles(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"simple article", "Le routeur", "routeur"},
		{"stacked articles", "Le la protocole", "protocole"},
		{"elided article", "L'adresse IP", "adresse IP"},
		{"no article", "routeur", "routeur"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripLeadingArticles(tt.value))
		})
	}
}

func TestCoerceDefinition(t *testing.T) {
	tests := []struct {
		name  string
		left  string
		right string
		want  string
	}{
		{
			"strips copula and restated label",
			"Le routeur",
			"Le routeur est un equipement qui oriente les paquets vers leur destination",
			"Equipement qui oriente les paquets vers leur destination",
		},
		{
			"strips c'est-a-dire lead-in",
			"Un protocole",
			"c'est-a-dire un ensemble de regles qui encadrent les echanges",
			"un ensemble de regles qui encadrent les echanges",
		},
		{
			"strips restated label with colon",
			"La photosynthese",
			"La photosynthese: processus de conversion de la lumiere en energie",
			"processus de conversion de la lumiere en energie",
		},
		{
			"keeps copula when stripping starves the definition",
			"Le DNS",
			"est un annuaire distribue mondial",
			"Est un annuaire distribue mondial",
		},
		{
			"rejects weak announcement",
			"Le cycle",
			"est la suivante pour tout le monde entier",
			"",
		},
		{
			"rejects short fragment",
			"Le cycle",
			"trop court ici",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CoerceDefinition(tt.left, tt.right))
		})
	}
}
