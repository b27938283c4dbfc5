package correct

import (
	"bytes"
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ResponseSchema is the JSON schema the model's reply must satisfy. The
// wrapper shape ({"name","strict","schema"}) matches what structured-output
// backends expect; local validation uses the inner schema document.
var ResponseSchema = map[string]any{
	"name":   "sentence_correction",
	"strict": true,
	"schema": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"corrections": map[string]any{
				"type":        "array",
				"description": "One entry per corrected word, in sentence order",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"wrong_word": map[string]any{
							"type":        "string",
							"description": "The word as it appeared in the input",
						},
						"correct_word": map[string]any{
							"type":        "string",
							"description": "The corrected form of the word",
						},
						"reason_of_error": map[string]any{
							"type":        "string",
							"description": "Short explanation of the error",
						},
					},
					"required":             []string{"wrong_word", "correct_word", "reason_of_error"},
					"additionalProperties": false,
				},
			},
			"correct_sentence": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "The fully corrected sentence",
			},
		},
		"required":             []string{"corrections", "correct_sentence"},
		"additionalProperties": false,
	},
}

// responseFormatJSON is the serialized wrapper passed to completion backends
// that support structured output.
var responseFormatJSON = mustMarshalSchema()

// responseSchema is the compiled inner schema used for local validation.
var responseSchema = mustCompileResponseSchema()

// ResponseFormat returns the schema wrapper for a completion request.
func ResponseFormat() json.RawMessage {
	return responseFormatJSON
}

func mustMarshalSchema() json.RawMessage {
	raw, err := json.Marshal(ResponseSchema)
	if err != nil {
		panic(err)
	}
	return raw
}

func mustCompileResponseSchema() *jsonschema.Schema {
	raw, err := json.Marshal(ResponseSchema["schema"])
	if err != nil {
		panic(err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("correction.json", bytes.NewReader(raw)); err != nil {
		panic(err)
	}
	return compiler.MustCompile("correction.json")
}
