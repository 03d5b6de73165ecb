package llm

import (
	"errors"
	"fmt"
	"time"

	"google.golang.org/api/googleapi"

	"github.com/jonathan/career-assistant/internal/types"
)

// TimeoutError reports that a single completion call exceeded the
// configured per-call timeout.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("generation timed out after %s", e.Timeout)
}

// Stage implements types.StagedError.
func (e *TimeoutError) Stage() types.Stage { return types.StageGenerate }

// TransientError reports that retry-eligible failures (service
// unavailable, rate limited) exhausted the retry budget.
type TransientError struct {
	Attempts int
	Cause    error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient service error after %d attempts: %v", e.Attempts, e.Cause)
}

func (e *TransientError) Unwrap() error { return e.Cause }

// Stage implements types.StagedError.
func (e *TransientError) Stage() types.Stage { return types.StageGenerate }

// AuthError is terminal: surfaced immediately, never retried.
type AuthError struct {
	Cause error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %v", e.Cause)
}

func (e *AuthError) Unwrap() error { return e.Cause }

// Stage implements types.StagedError.
func (e *AuthError) Stage() types.Stage { return types.StageGenerate }

// errorClass buckets remote failures for retry policy.
type errorClass int

const (
	classTerminal errorClass = iota
	classTransient
	classAuth
)

// classify maps a remote error onto the retry policy. Rate limiting and
// server-side unavailability are transient; auth failures are terminal.
func classify(err error) errorClass {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case 429, 500, 502, 503, 504:
			return classTransient
		case 401, 403:
			return classAuth
		}
	}
	return classTerminal
}
