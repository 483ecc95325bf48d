package generation

import (
	"strings"
	"testing"

	"quizforge/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestBuildPromptCarriesRequestFields(t *testing.T) {
	prompt := BuildPrompt(domain.PromptSpec{
		SourceExcerpt: "Texte de cours sur les reseaux.",
		ContentTypes:  []domain.ContentType{domain.ContentTypeMCQ, domain.ContentTypeCloze},
		Instructions:  "Insister sur le vocabulaire.",
		MaxItems:      7,
		Language:      "fr",
		Level:         "intermediate",
		Subject:       "Informatique",
		ClassLevel:    "3eme",
		Difficulty:    "hard",
	})

	assert.Contains(t, prompt, "- Limite: 7 items max.")
	assert.Contains(t, prompt, "- Langue: fr")
	assert.Contains(t, prompt, "- Matiere: Informatique")
	assert.Contains(t, prompt, "- Classe cible: 3eme")
	assert.Contains(t, prompt, "- Difficulte cible: hard")
	assert.Contains(t, prompt, "- Types demandes: mcq, cloze")
	assert.Contains(t, prompt, "Insister sur le vocabulaire.")
	assert.Contains(t, prompt, "Texte de cours sur les reseaux.")
	assert.NotContains(t, prompt, lyceeWordingRule)
}

func TestBuildPromptDefaults(t *testing.T) {
	prompt := BuildPrompt(domain.PromptSpec{
		SourceExcerpt: "source",
		ContentTypes:  []domain.ContentType{domain.ContentTypeMCQ},
		MaxItems:      12,
		Language:      "fr",
		Level:         "intermediate",
	})

	assert.Contains(t, prompt, "- Matiere: non precisee")
	assert.Contains(t, prompt, "- Classe cible: intermediate", "class level defaults to the request level")
	assert.Contains(t, prompt, "- Difficulte cible: medium")
	assert.Contains(t, prompt, "Aucune instruction supplementaire.")
	assert.False(t, strings.HasSuffix(prompt, "\n"))
}

func TestBuildPromptLyceeWordingRule(t *testing.T) {
	tests := []struct {
		name       string
		classLevel string
		expected   bool
	}{
		{"terminale", "Terminale spe maths", true},
		{"seconde", "2de generale", true},
		{"premiere", "1ere STMG", true},
		{"bac pro", "Bac pro commerce", true},
		{"college", "4eme", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := BuildPrompt(domain.PromptSpec{
				SourceExcerpt: "source",
				ContentTypes:  []domain.ContentType{domain.ContentTypeMCQ},
				MaxItems:      5,
				Language:      "fr",
				Level:         "intermediate",
				ClassLevel:    tt.classLevel,
			})
			if tt.expected {
				assert.Contains(t, prompt, lyceeWordingRule)
			} else {
				assert.NotContains(t, prompt, lyceeWordingRule)
			}
		})
	}
}

func TestBuildPairsPrompt(t *testing.T) {
	prompt := buildPairsPrompt(pairsPromptSpec{
		TargetSize:    9,
		Language:      "fr",
		Level:         "avance",
		Subject:       "Physique",
		ClassLevel:    "Terminale",
		SourceExcerpt: "La conduction transfere la chaleur par contact.",
	})

	assert.Contains(t, prompt, "Produis exactement 9 paires")
	assert.Contains(t, prompt, "- Matiere: Physique")
	assert.Contains(t, prompt, "- Classe: Terminale")
	assert.Contains(t, prompt, "La conduction transfere la chaleur par contact.")
}

func TestBuildPairsPromptDefaults(t *testing.T) {
	prompt := buildPairsPrompt(pairsPromptSpec{
		TargetSize: 4,
		Language:   "fr",
		Level:      "intermediate",
	})

	assert.Contains(t, prompt, "- Matiere: non precisee")
	assert.Contains(t, prompt, "- Classe: intermediate")
}
