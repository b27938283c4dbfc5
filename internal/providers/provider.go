package providers

import (
	"context"
	"encoding/json"
	"time"
)

// CompletionClient is the interface to an external text-completion service.
// Implementations perform exactly one call per Complete invocation and never
// retry internally; retry policy lives with the caller.
type CompletionClient interface {
	// Complete sends a completion request and returns the raw textual reply.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResult, error)

	// Name returns the client identifier (e.g., "ollama").
	Name() string
}

// CompletionRequest is a request to a completion service.
type CompletionRequest struct {
	// System is an optional system instruction.
	System string `json:"system,omitempty"`

	// Prompt is the user instruction text.
	Prompt string `json:"prompt"`

	// Model selection (uses client default if empty).
	Model string `json:"model,omitempty"`

	// Format is an optional JSON schema constraining the reply shape.
	// Passed through to backends that support structured output.
	Format json.RawMessage `json:"format,omitempty"`

	// Generation parameters
	Temperature float64 `json:"temperature,omitempty"`

	// Request tracking
	RequestID string `json:"-"`
}

// CompletionResult is the complete response from a completion call.
type CompletionResult struct {
	// Content is the raw textual reply. It may contain prose or code fences
	// around the requested payload; decoding is the caller's concern.
	Content string `json:"content"`

	// Token counts
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`

	// Timing
	ExecutionTime time.Duration `json:"execution_time"`

	// Provider info
	Provider  string `json:"provider"`
	ModelUsed string `json:"model_used"`

	// Request tracking
	RequestID string `json:"request_id"`
}
