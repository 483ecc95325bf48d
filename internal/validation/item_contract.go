package validation

import (
	"encoding/json"
	"fmt"

	"quizforge/internal/domain"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// itemSchemaURL names the embedded schema resource.
const itemSchemaURL = "schema://generated_item.json"

// itemSchemaJSON is the structural contract for one generated item.
// Array properties accept null because Go marshals nil slices as null.
const itemSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["item_type", "prompt", "difficulty"],
  "properties": {
    "item_type": {
      "type": "string",
      "enum": ["mcq", "poll", "open_question", "cloze", "matching", "brainstorming", "flashcard", "course_structure"]
    },
    "prompt": {"type": "string", "minLength": 1},
    "correct_answer": {"type": "string"},
    "distractors": {"type": ["array", "null"], "items": {"type": "string"}},
    "answer_options": {"type": ["array", "null"], "items": {"type": "string"}},
    "tags": {"type": ["array", "null"], "items": {"type": "string"}},
    "difficulty": {"type": "string", "enum": ["easy", "medium", "hard"]},
    "feedback": {"type": "string"},
    "source_reference": {"type": "string"}
  },
  "additionalProperties": false,
  "allOf": [
    {
      "if": {"properties": {"item_type": {"const": "mcq"}}},
      "then": {
        "properties": {
          "correct_answer": {"type": "string", "minLength": 1},
          "distractors": {"type": "array", "minItems": 1}
        }
      }
    },
    {
      "if": {"properties": {"item_type": {"const": "poll"}}},
      "then": {
        "properties": {
          "answer_options": {"type": "array", "minItems": 2}
        }
      }
    }
  ]
}`

// ItemContract validates generated items against the JSON contract
// they are served and stored under.
type ItemContract struct {
	schema *jsonschema.Schema
}

// NewItemContract compiles the embedded item schema.
func NewItemContract() (*ItemContract, error) {
	var doc any
	if err := json.Unmarshal([]byte(itemSchemaJSON), &doc); err != nil {
		return nil, fmt.Errorf("parse item schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(itemSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	schema, err := compiler.Compile(itemSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile item schema: %w", err)
	}

	return &ItemContract{schema: schema}, nil
}

// ValidateItem checks one item against the contract.
func (c *ItemContract) ValidateItem(item domain.GeneratedItem) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("reparse item: %w", err)
	}

	if err := c.schema.Validate(parsed); err != nil {
		return fmt.Errorf("item contract violation: %w", err)
	}
	return nil
}
