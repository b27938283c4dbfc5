package correct

import (
	"errors"
	"testing"
)

const validReply = `{
  "corrections": [
    {"wrong_word": "Thiss", "correct_word": "This", "reason_of_error": "Spelling error"}
  ],
  "correct_sentence": "This sentence is correct."
}`

func TestDecodeReplyValid(t *testing.T) {
	payload, err := decodeReply(validReply)
	if err != nil {
		t.Fatalf("decodeReply failed: %v", err)
	}
	if payload.CorrectSentence != "This sentence is correct." {
		t.Errorf("wrong correct_sentence: %q", payload.CorrectSentence)
	}
	if len(payload.Corrections) != 1 {
		t.Fatalf("expected 1 correction, got %d", len(payload.Corrections))
	}
	c := payload.Corrections[0]
	if c.WrongWord != "Thiss" || c.CorrectWord != "This" || c.ReasonOfError != "Spelling error" {
		t.Errorf("unexpected correction: %+v", c)
	}
}

func TestDecodeReplyCodeFences(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"json fence", "```json\n" + validReply + "\n```"},
		{"bare fence", "```\n" + validReply + "\n```"},
		{"prose before fence", "Here is the result:\n```json\n" + validReply + "\n```"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload, err := decodeReply(tc.raw)
			if err != nil {
				t.Fatalf("decodeReply failed: %v", err)
			}
			if payload.CorrectSentence != "This sentence is correct." {
				t.Errorf("wrong correct_sentence: %q", payload.CorrectSentence)
			}
		})
	}
}

func TestDecodeReplyEmbeddedObject(t *testing.T) {
	raw := "Sure! " + validReply + " Hope that helps."
	payload, err := decodeReply(raw)
	if err != nil {
		t.Fatalf("decodeReply failed: %v", err)
	}
	if len(payload.Corrections) != 1 {
		t.Errorf("expected 1 correction, got %d", len(payload.Corrections))
	}
}

func TestDecodeReplyNoCorrections(t *testing.T) {
	raw := `{"corrections": [], "correct_sentence": "Already fine."}`
	payload, err := decodeReply(raw)
	if err != nil {
		t.Fatalf("decodeReply failed: %v", err)
	}
	if len(payload.Corrections) != 0 {
		t.Errorf("expected no corrections, got %d", len(payload.Corrections))
	}
}

func TestDecodeReplyNoJSON(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace", "   \n  "},
		{"prose only", "I could not find any errors in that sentence."},
		{"array not object", `[1, 2, 3]`},
		{"truncated object", `{"corrections": [`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeReply(tc.raw)
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("expected *DecodeError, got %T: %v", err, err)
			}
		})
	}
}

func TestDecodeReplySchemaViolations(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"missing correct_sentence", `{"corrections": []}`},
		{"empty correct_sentence", `{"corrections": [], "correct_sentence": ""}`},
		{"missing corrections", `{"correct_sentence": "Fine."}`},
		{"correction missing field", `{"corrections": [{"wrong_word": "a", "correct_word": "b"}], "correct_sentence": "Fine."}`},
		{"correction wrong type", `{"corrections": [{"wrong_word": 1, "correct_word": "b", "reason_of_error": "c"}], "correct_sentence": "Fine."}`},
		{"corrections not array", `{"corrections": "none", "correct_sentence": "Fine."}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeReply(tc.raw)
			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("expected *SchemaError, got %T: %v", err, err)
			}
			if schemaErr.Raw != tc.raw {
				t.Errorf("SchemaError did not retain raw reply")
			}
		})
	}
}

func TestResponseFormatIsValidJSON(t *testing.T) {
	format := ResponseFormat()
	if len(format) == 0 {
		t.Fatal("response format is empty")
	}
	// The schema wrapper must parse; providers embed it verbatim.
	if format[0] != '{' {
		t.Errorf("response format is not a JSON object: %s", format)
	}
}
