package correct

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/jackzampolin/redpen/internal/providers"
)

const (
	defaultMaxAttempts      = 3
	defaultRetryDelay       = time.Second
	defaultMaxRetryDelay    = 10 * time.Second
	defaultRequestTimeout   = 120 * time.Second
	defaultBatchConcurrency = 4
)

// ServiceConfig holds configuration for a correction Service.
type ServiceConfig struct {
	// Client is the completion backend. Required.
	Client providers.CompletionClient
	// Model overrides the client's default model when set.
	Model string
	// MaxAttempts is the total attempt budget per logical call (default: 3).
	MaxAttempts uint
	// RetryDelay is the base backoff delay between attempts (default: 1s).
	RetryDelay time.Duration
	// RequestTimeout bounds each individual attempt (default: 120s).
	RequestTimeout time.Duration
	// BatchConcurrency limits in-flight items during batch correction (default: 4).
	BatchConcurrency int
	// Logger is the structured logger to use.
	Logger *slog.Logger
}

// Service owns the end-to-end contract for correcting sentences: it builds
// the prompt, drives the retried completion call, decodes and validates the
// reply, and assembles the Result.
type Service struct {
	client         providers.CompletionClient
	model          string
	maxAttempts    uint
	retryDelay     time.Duration
	requestTimeout time.Duration
	concurrency    int
	logger         *slog.Logger
}

// NewService creates a correction service around the given completion client.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("completion client is required")
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = defaultRetryDelay
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.BatchConcurrency <= 0 {
		cfg.BatchConcurrency = defaultBatchConcurrency
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Service{
		client:         cfg.Client,
		model:          cfg.Model,
		maxAttempts:    cfg.MaxAttempts,
		retryDelay:     cfg.RetryDelay,
		requestTimeout: cfg.RequestTimeout,
		concurrency:    cfg.BatchConcurrency,
		logger:         cfg.Logger,
	}, nil
}

// Correct corrects a single sentence. All failure modes surface as classified
// errors: ErrEmptyInput, *ConnectivityError, *ServiceError, *DecodeError or
// *SchemaError. On success the Result carries the verbatim input as
// OriginalSentence and a non-empty CorrectSentence.
func (s *Service) Correct(ctx context.Context, sentence string) (*Result, error) {
	if strings.TrimSpace(sentence) == "" {
		return nil, ErrEmptyInput
	}

	req := &providers.CompletionRequest{
		System: SystemPrompt(),
		Prompt: UserPrompt(sentence),
		Model:  s.model,
		Format: ResponseFormat(),
	}

	completion, err := s.invoke(ctx, req)
	if err != nil {
		return nil, err
	}

	payload, err := decodeReply(completion.Content)
	if err != nil {
		s.logger.Error("failed to decode completion reply",
			"provider", completion.Provider, "error", err)
		return nil, err
	}

	corrections := payload.Corrections
	if corrections == nil {
		corrections = []Correction{}
	}

	s.logger.Info("sentence corrected",
		"provider", completion.Provider,
		"model", completion.ModelUsed,
		"corrections", len(corrections))

	return &Result{
		Corrections:      corrections,
		CorrectSentence:  payload.CorrectSentence,
		OriginalSentence: sentence,
	}, nil
}

// invoke performs one logical completion call: up to maxAttempts tries with
// exponential backoff, retrying only transient failures. Each attempt is
// independently timeout-bounded.
func (s *Service) invoke(ctx context.Context, req *providers.CompletionRequest) (*providers.CompletionResult, error) {
	result, err := retry.DoWithData(
		func() (*providers.CompletionResult, error) {
			callCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
			defer cancel()
			return s.client.Complete(callCtx, req)
		},
		retry.Context(ctx),
		retry.Attempts(s.maxAttempts),
		retry.Delay(s.retryDelay),
		retry.MaxDelay(defaultMaxRetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(providers.IsTransient),
		retry.OnRetry(func(attempt uint, err error) {
			s.logger.Warn("completion attempt failed",
				"attempt", attempt+1, "max_attempts", s.maxAttempts, "error", err)
		}),
	)
	if err == nil {
		return result, nil
	}

	if providers.IsTransient(err) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return nil, &ConnectivityError{Attempts: s.maxAttempts, Err: err}
	}
	return nil, &ServiceError{Err: err}
}
