package correct

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/jackzampolin/redpen/internal/providers"
)

func TestCorrectBatchOrderAndLength(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = `{"corrections": [], "correct_sentence": "Fine."}`
	svc := newTestService(t, mock)

	sentences := []string{
		"First sentence.",
		"Second sentence.",
		"Third sentence.",
		"Fourth sentence.",
		"Fifth sentence.",
	}
	results := svc.CorrectBatch(context.Background(), sentences)

	if len(results) != len(sentences) {
		t.Fatalf("expected %d results, got %d", len(sentences), len(results))
	}
	for i, result := range results {
		if result == nil {
			t.Fatalf("result %d is nil", i)
		}
		if result.OriginalSentence != sentences[i] {
			t.Errorf("result %d out of order: got %q, want %q", i, result.OriginalSentence, sentences[i])
		}
	}
	if mock.Calls() != len(sentences) {
		t.Errorf("expected %d completion calls, got %d", len(sentences), mock.Calls())
	}
}

func TestCorrectBatchIsolatesFailures(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = `{"corrections": [], "correct_sentence": "Fine."}`
	mock.FailWhen = func(req *providers.CompletionRequest) error {
		if strings.Contains(req.Prompt, "poison") {
			return providers.StatusError(404, fmt.Errorf("model not found"))
		}
		return nil
	}
	svc := newTestService(t, mock)

	sentences := []string{
		"A good sentence.",
		"A poison sentence.",
		"Another good sentence.",
	}
	results := svc.CorrectBatch(context.Background(), sentences)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if results[0].CorrectSentence != "Fine." {
		t.Errorf("result 0 should have succeeded: %+v", results[0])
	}
	if results[2].CorrectSentence != "Fine." {
		t.Errorf("result 2 should have succeeded: %+v", results[2])
	}

	failed := results[1]
	if !strings.HasPrefix(failed.CorrectSentence, "Error: ") {
		t.Errorf("failed item should carry an Error: placeholder, got %q", failed.CorrectSentence)
	}
	if failed.OriginalSentence != sentences[1] {
		t.Errorf("failed item lost its original sentence: %q", failed.OriginalSentence)
	}
	if failed.Corrections == nil || len(failed.Corrections) != 0 {
		t.Errorf("failed item should have an empty corrections slice: %+v", failed.Corrections)
	}
}

func TestCorrectBatchEmptyItemPlaceholder(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = `{"corrections": [], "correct_sentence": "Fine."}`
	svc := newTestService(t, mock)

	results := svc.CorrectBatch(context.Background(), []string{"Good.", ""})

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if !strings.HasPrefix(results[1].CorrectSentence, "Error: ") {
		t.Errorf("empty item should yield an error placeholder, got %q", results[1].CorrectSentence)
	}
	if !strings.Contains(results[1].CorrectSentence, "input text is empty") {
		t.Errorf("placeholder should name the failure, got %q", results[1].CorrectSentence)
	}
}

func TestCorrectBatchEmptyInput(t *testing.T) {
	mock := providers.NewMockClient()
	svc := newTestService(t, mock)

	results := svc.CorrectBatch(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected no results for empty batch, got %d", len(results))
	}
}
