package dispatch

import (
	"fmt"

	"github.com/jonathan/career-assistant/internal/types"
)

// AuthError reports that the SMTP server rejected the sender's
// credentials. Surfaced immediately; never retried.
type AuthError struct {
	Cause error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("smtp authentication failed: %v", e.Cause)
}

func (e *AuthError) Unwrap() error { return e.Cause }

// Stage implements types.StagedError.
func (e *AuthError) Stage() types.Stage { return types.StageDispatch }

// RecipientError reports that the server refused the recipient address.
type RecipientError struct {
	Recipient string
	Cause     error
}

func (e *RecipientError) Error() string {
	return fmt.Sprintf("recipient %q refused: %v", e.Recipient, e.Cause)
}

func (e *RecipientError) Unwrap() error { return e.Cause }

// Stage implements types.StagedError.
func (e *RecipientError) Stage() types.Stage { return types.StageDispatch }

// TransportError reports that the SMTP endpoint could not be reached or
// the session failed before the message was accepted.
type TransportError struct {
	Host  string
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("smtp transport to %s unavailable: %v", e.Host, e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }

// Stage implements types.StagedError.
func (e *TransportError) Stage() types.Stage { return types.StageDispatch }
