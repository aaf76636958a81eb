package question

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const itemSchemaURL = "schema://question-item.json"

const itemSchemaJSON = `{
  "type": "object",
  "required": ["question", "options", "answer"],
  "properties": {
    "question": {"type": "string", "minLength": 1},
    "options": {
      "type": "array",
      "minItems": 4,
      "maxItems": 4,
      "items": {"type": "string"}
    },
    "answer": {"type": "string", "minLength": 1},
    "explanation": {"type": "string"}
  }
}`

var itemSchema = mustCompileItemSchema()

func mustCompileItemSchema() *jsonschema.Schema {
	var doc any
	if err := json.Unmarshal([]byte(itemSchemaJSON), &doc); err != nil {
		panic(fmt.Sprintf("parse question item schema: %v", err))
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(itemSchemaURL, doc); err != nil {
		panic(fmt.Sprintf("add question item schema: %v", err))
	}
	schema, err := c.Compile(itemSchemaURL)
	if err != nil {
		panic(fmt.Sprintf("compile question item schema: %v", err))
	}
	return schema
}

// ParseQuestions repairs and parses a raw completion, then applies the
// acceptance gate. received counts the items in the parsed array, accepted
// or not.
func ParseQuestions(raw string) (accepted []Question, received int, err error) {
	items, err := SanitizeAndParse(raw)
	if err != nil {
		return nil, 0, err
	}
	accepted, _ = acceptItems(items)
	return accepted, len(items), nil
}

// acceptItems decodes each parsed item and keeps the ones that pass the
// acceptance gate: the item schema first, then the answer-in-options check.
// Accepted questions are tagged as live. dropped counts the rest.
func acceptItems(items []json.RawMessage) (accepted []Question, dropped int) {
	accepted = make([]Question, 0, len(items))
	for _, raw := range items {
		q, err := decodeItem(raw)
		if err != nil {
			dropped++
			continue
		}
		accepted = append(accepted, q)
	}
	return accepted, dropped
}

func decodeItem(raw json.RawMessage) (Question, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Question{}, err
	}
	if err := itemSchema.Validate(parsed); err != nil {
		return Question{}, err
	}
	var q Question
	if err := json.Unmarshal(raw, &q); err != nil {
		return Question{}, err
	}
	if !q.Valid() {
		return Question{}, fmt.Errorf("answer %q is not one of the options", q.Answer)
	}
	q.Source = SourceAI
	return q, nil
}
