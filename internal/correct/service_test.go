package correct

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/jackzampolin/redpen/internal/providers"
)

func newTestService(t *testing.T, mock *providers.MockClient) *Service {
	t.Helper()
	svc, err := NewService(ServiceConfig{
		Client:     mock,
		RetryDelay: time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc
}

func TestCorrectSuccess(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = `{
		"corrections": [
			{"wrong_word": "Thiss", "correct_word": "This", "reason_of_error": "Spelling error"},
			{"wrong_word": "somee", "correct_word": "some", "reason_of_error": "Spelling error"},
			{"wrong_word": "mistaks", "correct_word": "mistakes", "reason_of_error": "Spelling error"}
		],
		"correct_sentence": "This sentence has some spelling mistakes."
	}`
	svc := newTestService(t, mock)

	sentence := "Thiss sentence has somee spelling mistaks."
	result, err := svc.Correct(context.Background(), sentence)
	if err != nil {
		t.Fatalf("Correct failed: %v", err)
	}

	if result.OriginalSentence != sentence {
		t.Errorf("original sentence not preserved verbatim: %q", result.OriginalSentence)
	}
	if result.CorrectSentence != "This sentence has some spelling mistakes." {
		t.Errorf("wrong corrected sentence: %q", result.CorrectSentence)
	}
	if len(result.Corrections) != 3 {
		t.Fatalf("expected 3 corrections, got %d", len(result.Corrections))
	}
	if result.Corrections[0].WrongWord != "Thiss" {
		t.Errorf("unexpected first correction: %+v", result.Corrections[0])
	}
	if mock.Calls() != 1 {
		t.Errorf("expected 1 completion call, got %d", mock.Calls())
	}
}

func TestCorrectEmptyInput(t *testing.T) {
	mock := providers.NewMockClient()
	svc := newTestService(t, mock)

	for _, input := range []string{"", "   ", "\n\t"} {
		_, err := svc.Correct(context.Background(), input)
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("input %q: expected ErrEmptyInput, got %v", input, err)
		}
	}
	if mock.Calls() != 0 {
		t.Errorf("empty input should not reach the client, got %d calls", mock.Calls())
	}
}

func TestCorrectNilCorrectionsBecomesEmptySlice(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = `{"corrections": [], "correct_sentence": "Already fine."}`
	svc := newTestService(t, mock)

	result, err := svc.Correct(context.Background(), "Already fine.")
	if err != nil {
		t.Fatalf("Correct failed: %v", err)
	}
	if result.Corrections == nil {
		t.Error("corrections should be an empty slice, not nil")
	}
	if len(result.Corrections) != 0 {
		t.Errorf("expected no corrections, got %d", len(result.Corrections))
	}
}

func TestCorrectRetriesTransientThenSucceeds(t *testing.T) {
	mock := providers.NewMockClient()
	mock.Failures = []error{
		providers.Transient(fmt.Errorf("connection refused")),
		providers.StatusError(503, fmt.Errorf("model loading")),
	}
	mock.ResponseText = `{"corrections": [], "correct_sentence": "Fine."}`
	svc := newTestService(t, mock)

	result, err := svc.Correct(context.Background(), "Fine.")
	if err != nil {
		t.Fatalf("Correct failed after transient errors: %v", err)
	}
	if result.CorrectSentence != "Fine." {
		t.Errorf("wrong corrected sentence: %q", result.CorrectSentence)
	}
	if mock.Calls() != 3 {
		t.Errorf("expected 3 calls (2 failures + 1 success), got %d", mock.Calls())
	}
}

func TestCorrectExhaustsTransientRetries(t *testing.T) {
	mock := providers.NewMockClient()
	mock.FailAlways = providers.Transient(fmt.Errorf("connection refused"))
	svc := newTestService(t, mock)

	_, err := svc.Correct(context.Background(), "Some sentence.")

	var connErr *ConnectivityError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected *ConnectivityError, got %T: %v", err, err)
	}
	if connErr.Attempts != 3 {
		t.Errorf("expected 3 attempts reported, got %d", connErr.Attempts)
	}
	if mock.Calls() != 3 {
		t.Errorf("expected exactly 3 calls, got %d", mock.Calls())
	}
}

func TestCorrectPermanentFailureNotRetried(t *testing.T) {
	mock := providers.NewMockClient()
	mock.FailAlways = providers.StatusError(404, fmt.Errorf("model not found"))
	svc := newTestService(t, mock)

	_, err := svc.Correct(context.Background(), "Some sentence.")

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected *ServiceError, got %T: %v", err, err)
	}
	if mock.Calls() != 1 {
		t.Errorf("permanent failure should abort after 1 call, got %d", mock.Calls())
	}
}

func TestCorrectMalformedReply(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = "I'm sorry, I can't help with that."
	svc := newTestService(t, mock)

	_, err := svc.Correct(context.Background(), "Some sentence.")

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *DecodeError, got %T: %v", err, err)
	}
	if mock.Calls() != 1 {
		t.Errorf("decode failures must not be retried, got %d calls", mock.Calls())
	}
}

func TestCorrectSchemaViolatingReply(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = `{"corrections": []}`
	svc := newTestService(t, mock)

	_, err := svc.Correct(context.Background(), "Some sentence.")

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %T: %v", err, err)
	}
	if mock.Calls() != 1 {
		t.Errorf("schema failures must not be retried, got %d calls", mock.Calls())
	}
}

func TestCorrectContextCanceled(t *testing.T) {
	mock := providers.NewMockClient()
	mock.Latency = 50 * time.Millisecond
	mock.ResponseText = `{"corrections": [], "correct_sentence": "Fine."}`
	svc := newTestService(t, mock)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Correct(ctx, "Some sentence.")
	var connErr *ConnectivityError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected *ConnectivityError for canceled context, got %T: %v", err, err)
	}
}

func TestCorrectIdempotent(t *testing.T) {
	mock := providers.NewMockClient()
	mock.ResponseText = `{
		"corrections": [{"wrong_word": "somee", "correct_word": "some", "reason_of_error": "Spelling error"}],
		"correct_sentence": "This has some errors."
	}`
	svc := newTestService(t, mock)

	sentence := "This has somee errors."
	first, err := svc.Correct(context.Background(), sentence)
	if err != nil {
		t.Fatalf("first Correct failed: %v", err)
	}
	second, err := svc.Correct(context.Background(), sentence)
	if err != nil {
		t.Fatalf("second Correct failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ across identical calls:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestNewServiceRequiresClient(t *testing.T) {
	if _, err := NewService(ServiceConfig{}); err == nil {
		t.Fatal("expected error when client is nil")
	}
}
