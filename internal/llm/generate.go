package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/career-assistant/internal/types"
)

// Client wraps a Completer with per-call timeout and exponential-backoff
// retry for transient failures. Auth and option failures are terminal.
type Client struct {
	completer Completer
	cfg       Config
}

// NewClient creates a generation client over the given completer.
func NewClient(completer Completer, cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = DefaultConfig().BaseBackoff
	}
	if cfg.BackoffMultiplier < 1 {
		cfg.BackoffMultiplier = DefaultConfig().BackoffMultiplier
	}
	return &Client{completer: completer, cfg: cfg}
}

// Generate sends the request payload to the completion service and
// returns the literal generated text. Cancelling ctx abandons the call:
// no retry loop is left pending and no result is delivered.
func (c *Client) Generate(ctx context.Context, req *types.GenerationRequest) (string, error) {
	payload := Payload{
		SystemInstructions: req.SystemInstructions,
		UserPayload:        req.UserPayload,
	}

	backoff := c.cfg.BaseBackoff
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("generation cancelled: %w", err)
		}

		callCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
		text, err := c.completer.Complete(callCtx, payload)
		cancel()

		if err == nil {
			return text, nil
		}

		// Caller cancellation wins over any other classification.
		if ctx.Err() != nil {
			return "", fmt.Errorf("generation cancelled: %w", ctx.Err())
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return "", &TimeoutError{Timeout: c.cfg.Timeout}
		}

		switch classify(err) {
		case classAuth:
			return "", &AuthError{Cause: err}
		case classTransient:
			if attempt >= c.cfg.MaxRetries {
				return "", &TransientError{Attempts: attempt + 1, Cause: err}
			}
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", fmt.Errorf("generation cancelled: %w", ctx.Err())
			}
			backoff = time.Duration(float64(backoff) * c.cfg.BackoffMultiplier)
		default:
			return "", fmt.Errorf("generation failed: %w", err)
		}
	}
}

// Close releases the underlying completer.
func (c *Client) Close() error {
	return c.completer.Close()
}
