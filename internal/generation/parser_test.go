package generation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			"fenced block",
			"Voici le resultat:\n```json\n{\"items\": []}\n```\nBonne lecture.",
			`{"items": []}`,
		},
		{
			"fenced block without language tag",
			"```\n[{\"prompt\": \"a\"}]\n```",
			`[{"prompt": "a"}]`,
		},
		{
			"prose around braces",
			`Le JSON demande est {"items": [{"prompt": "q"}]} merci.`,
			`{"items": [{"prompt": "q"}]}`,
		},
		{
			"array payload",
			`Reponse: [{"prompt": "q"}] fin.`,
			`[{"prompt": "q"}]`,
		},
		{
			"no json at all",
			"aucune structure ici",
			"aucune structure ici",
		},
		{
			"empty input",
			"   ",
			"   ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractJSONBlock(tt.raw))
		})
	}
}

func TestParseOutputRootShapes(t *testing.T) {
	t.Run("items root", func(t *testing.T) {
		parsed := ParseOutput(`{"items": [{"prompt": "q1"}, {"prompt": "q2"}]}`)
		assert.Len(t, parsed.Items, 2)
	})

	t.Run("bare array becomes item list", func(t *testing.T) {
		parsed := ParseOutput(`[{"prompt": "q1"}, {"prompt": "q2"}, {"prompt": "q3"}]`)
		assert.Len(t, parsed.Items, 3)
	})

	t.Run("single item object under items", func(t *testing.T) {
		parsed := ParseOutput(`{"items": {"prompt": "seule question"}}`)
		assert.Len(t, parsed.Items, 1)
	})

	t.Run("alias roots", func(t *testing.T) {
		for _, alias := range []string{"questions", "results", "output", "data", "quiz"} {
			parsed := ParseOutput(`{"` + alias + `": [{"prompt": "q"}]}`)
			assert.Len(t, parsed.Items, 1, "alias %s", alias)
		}
	})

	t.Run("nested items under alias root", func(t *testing.T) {
		parsed := ParseOutput(`{"data": {"items": [{"prompt": "q"}]}}`)
		assert.Len(t, parsed.Items, 1)
	})

	t.Run("object without item list", func(t *testing.T) {
		parsed := ParseOutput(`{"message": "rien"}`)
		assert.Empty(t, parsed.Items)
	})

	t.Run("scalar payload", func(t *testing.T) {
		parsed := ParseOutput(`"juste une phrase"`)
		assert.Empty(t, parsed.Items)
	})
}

func TestParseOutputStrictness(t *testing.T) {
	t.Run("one malformed row drops the whole payload", func(t *testing.T) {
		parsed := ParseOutput(`{"items": [{"prompt": "q1"}, "pas un objet", {"prompt": "q3"}]}`)
		assert.Empty(t, parsed.Items)
	})

	t.Run("trailing garbage after the last closer", func(t *testing.T) {
		parsed := ParseOutput(`{"items": []}}`)
		assert.Empty(t, parsed.Items)
		assert.Empty(t, parsed.ContentTypes)
	})

	t.Run("invalid json", func(t *testing.T) {
		parsed := ParseOutput(`{"items": [}`)
		assert.Empty(t, parsed.Items)
	})

	t.Run("non string content type drops the payload", func(t *testing.T) {
		parsed := ParseOutput(`{"items": [{"prompt": "q"}], "content_types": ["mcq", 3]}`)
		assert.Empty(t, parsed.Items)
	})
}

func TestParseOutputContentTypes(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		parsed := ParseOutput(`{"items": [], "content_types": ["mcq", "poll"]}`)
		assert.Equal(t, []string{"mcq", "poll"}, parsed.ContentTypes)
	})

	t.Run("single string", func(t *testing.T) {
		parsed := ParseOutput(`{"items": [], "content_types": "cloze"}`)
		assert.Equal(t, []string{"cloze"}, parsed.ContentTypes)
	})
}

func TestParseOutputKeepsNumberLiterals(t *testing.T) {
	parsed := ParseOutput(`{"items": [{"prompt": "Combien ?", "answer": 3}, {"prompt": "Taux ?", "answer": 3.0}]}`)
	assert.Len(t, parsed.Items, 2)
	assert.Equal(t, json.Number("3"), parsed.Items[0]["answer"])
	assert.Equal(t, json.Number("3.0"), parsed.Items[1]["answer"])
}

func TestParsePairsPayload(t *testing.T) {
	payload := `{"pairs": [
		{"concept": "Le routeur", "definition": "Equipement qui oriente chaque paquet vers sa destination finale."},
		{"left": "La passerelle", "right": "Point de sortie du reseau local vers les reseaux exterieurs."},
		{"concept": "Le commutateur", "explanation": "Equipement central qui relie les machines d'un meme reseau local."},
		{"left": "Sans definition"},
		"pas un objet"
	]}`

	pairs := ParsePairsPayload(payload, 4)
	assert.Len(t, pairs, 3)
	assert.Equal(t, "Le routeur", pairs[0].Left)
	assert.True(t, strings.HasPrefix(pairs[0].Right, "Equipement qui oriente"))
	assert.Equal(t, "La passerelle", pairs[1].Left)
}

func TestParsePairsPayloadRootForms(t *testing.T) {
	t.Run("items root", func(t *testing.T) {
		pairs := ParsePairsPayload(`{"items": [{"left": "Le routeur", "right": "Equipement qui oriente chaque paquet vers sa destination finale."}]}`, 3)
		assert.Len(t, pairs, 1)
	})

	t.Run("bare list", func(t *testing.T) {
		pairs := ParsePairsPayload(`[{"left": "Le routeur", "right": "Equipement qui oriente chaque paquet vers sa destination finale."}]`, 3)
		assert.Len(t, pairs, 1)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, ParsePairsPayload("   ", 3))
	})

	t.Run("unusable rows", func(t *testing.T) {
		assert.Empty(t, ParsePairsPayload(`{"pairs": [{"left": "est", "right": "court"}]}`, 3))
	})
}

func TestParsePairsPayloadRejectsWeakCandidates(t *testing.T) {
	// Single generic words and question-like lefts must not survive the
	// validation gate.
	payload := `{"pairs": [
		{"left": "lettre", "right": "Element transmis sur le support physique entre deux machines distantes."},
		{"left": "Comment", "right": "Maniere de proceder pour relier deux machines entre elles."}
	]}`
	assert.Empty(t, ParsePairsPayload(payload, 3))
}
