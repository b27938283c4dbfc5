package providers

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

const MockClientName = "mock"

// MockClient is a deterministic CompletionClient for testing.
type MockClient struct {
	// Configurable behavior
	Latency      time.Duration
	ResponseText string

	// Failures are returned in order, one per call, before successes begin.
	Failures []error

	// FailAlways, when set, is returned on every call.
	FailAlways error

	// FailWhen, when set, is consulted per request; a non-nil return fails
	// that call. Useful for content-dependent failure scripting.
	FailWhen func(req *CompletionRequest) error

	// State
	requestCount atomic.Int64
}

// NewMockClient creates a new mock client with sensible defaults.
func NewMockClient() *MockClient {
	return &MockClient{
		ResponseText: "mock response",
	}
}

// Name returns the client identifier.
func (c *MockClient) Name() string {
	return MockClientName
}

// Calls returns how many times Complete has been invoked.
func (c *MockClient) Calls() int {
	return int(c.requestCount.Load())
}

// Complete returns the scripted outcome for this call.
func (c *MockClient) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResult, error) {
	start := time.Now()
	count := c.requestCount.Add(1)

	if c.Latency > 0 {
		select {
		case <-time.After(c.Latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if c.FailAlways != nil {
		return nil, c.FailAlways
	}
	if int(count) <= len(c.Failures) {
		return nil, c.Failures[count-1]
	}
	if c.FailWhen != nil {
		if err := c.FailWhen(req); err != nil {
			return nil, err
		}
	}

	promptTokens := len(req.Prompt) / 4 // Rough estimate
	completionTokens := len(c.ResponseText) / 4

	return &CompletionResult{
		Content:          c.ResponseText,
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		ExecutionTime:    time.Since(start),
		Provider:         MockClientName,
		ModelUsed:        req.Model,
		RequestID:        fmt.Sprintf("mock-%d", count),
	}, nil
}

// Verify interface
var _ CompletionClient = (*MockClient)(nil)
