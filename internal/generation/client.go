package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/ideaforge-api/internal/redact"
)

// SleepFunc waits for d or until ctx is done, whichever comes first. It
// returns ctx.Err() when the wait was cut short.
type SleepFunc func(ctx context.Context, d time.Duration) error

// ResilientClient executes prompts against a Provider with a per-attempt
// deadline and exponential backoff between retryable failures. It holds no
// per-call state and is safe for concurrent use.
type ResilientClient struct {
	provider Provider
	logger   *slog.Logger
	observer Observer
	sleep    SleepFunc
}

// ClientOption configures a ResilientClient.
type ClientOption func(*ResilientClient)

// WithObserver reports attempts and backoffs to o.
func WithObserver(o Observer) ClientOption {
	return func(c *ResilientClient) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithSleep replaces the backoff wait. Used by tests to avoid real delays.
func WithSleep(fn SleepFunc) ClientOption {
	return func(c *ResilientClient) {
		if fn != nil {
			c.sleep = fn
		}
	}
}

// NewResilientClient creates a client for provider.
func NewResilientClient(provider Provider, logger *slog.Logger, opts ...ClientOption) *ResilientClient {
	if provider == nil {
		panic("provider cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &ResilientClient{
		provider: provider,
		logger:   logger.With("component", "resilient_client", "provider", provider.Name()),
		observer: noopObserver{},
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Execute sends prompt to the provider, retrying retryable failures.
//
// It makes at most max(1, cfg.MaxRetries) attempts. Each attempt is bounded by
// cfg.Timeout. Between attempts it waits cfg.RetryDelay * 2^(attempt-1); no
// wait follows the final attempt. A non-retryable failure is returned
// immediately, and after the last attempt the last classified failure is
// returned. If ctx ends, no further attempt or wait is started and a TIMEOUT
// failure is returned.
func (c *ResilientClient) Execute(ctx context.Context, prompt string, cfg Config) (*ProviderResponse, error) {
	completion := Completion{
		Model:       cfg.Model,
		Prompt:      prompt,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}

	maxAttempts := cfg.attempts()
	var lastErr *ProviderError

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		c.logger.DebugContext(ctx, "sending provider request",
			"attempt", attempt,
			"max_attempts", maxAttempts,
			"model", cfg.Model)

		start := time.Now()
		resp, err := c.attempt(ctx, completion, cfg.Timeout)
		elapsed := time.Since(start)

		if err == nil {
			c.observer.ObserveAttempt(c.provider.Name(), attempt, elapsed, nil)
			if attempt > 1 {
				c.logger.InfoContext(ctx, "provider request succeeded after retry",
					"attempt", attempt)
			}
			return resp, nil
		}

		lastErr = Classify(err)
		c.observer.ObserveAttempt(c.provider.Name(), attempt, elapsed, lastErr)

		c.logger.WarnContext(ctx, "provider request failed",
			"attempt", attempt,
			"max_attempts", maxAttempts,
			"kind", lastErr.Kind,
			"retryable", lastErr.Retryable,
			"duration_ms", elapsed.Milliseconds(),
			"detail", redact.String(lastErr.Detail()))

		if ctx.Err() != nil {
			return nil, c.aborted(ctx, err)
		}
		if !lastErr.Retryable {
			return nil, lastErr
		}
		if attempt == maxAttempts {
			break
		}

		delay := backoffDelay(cfg.RetryDelay, attempt)
		c.observer.ObserveBackoff(c.provider.Name(), delay)
		c.logger.InfoContext(ctx, "retrying provider request",
			"next_attempt", attempt+1,
			"delay_ms", delay.Milliseconds())

		if sleepErr := c.sleep(ctx, delay); sleepErr != nil {
			return nil, c.aborted(ctx, sleepErr)
		}
	}

	c.logger.ErrorContext(ctx, "provider request failed after all attempts",
		"attempts", maxAttempts,
		"kind", lastErr.Kind)
	return nil, lastErr
}

// attempt runs a single provider call under its own deadline. The deadline
// is released when the call returns.
func (c *ResilientClient) attempt(
	ctx context.Context,
	completion Completion,
	timeout time.Duration,
) (*ProviderResponse, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return c.provider.Complete(attemptCtx, completion)
}

func (c *ResilientClient) aborted(ctx context.Context, cause error) *ProviderError {
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(cause, ctxErr) {
		cause = fmt.Errorf("%w: %w", ctxErr, cause)
	}
	c.logger.WarnContext(ctx, "provider request abandoned",
		"reason", redact.Error(cause))
	return NewProviderError(KindTimeout, cause)
}

// backoffDelay returns base * 2^(attempt-1).
func backoffDelay(base time.Duration, attempt int) time.Duration {
	return base * time.Duration(1<<uint(attempt-1))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
