// Package server provides the HTTP REST API for the career assistant.
package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/career-assistant/internal/dispatch"
	"github.com/jonathan/career-assistant/internal/extract"
	"github.com/jonathan/career-assistant/internal/llm"
	"github.com/jonathan/career-assistant/internal/prompt"
)

// ErrSessionNotFound indicates the session ID is unknown or expired.
type ErrSessionNotFound struct {
	ID string
}

func (e *ErrSessionNotFound) Error() string {
	return "session not found: " + e.ID
}

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return "validation error: " + e.Field + " - " + e.Message
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var (
		sessionErr   *ErrSessionNotFound
		validationEr *ErrValidation
		contextErr   *prompt.InvalidContextError
		optionErr    *prompt.InvalidOptionError
		extractErr   *extract.ExtractionError
		timeoutErr   *llm.TimeoutError
		transientErr *llm.TransientError
		llmAuthErr   *llm.AuthError
		smtpAuthErr  *dispatch.AuthError
		recipientErr *dispatch.RecipientError
		transportErr *dispatch.TransportError
	)
	switch {
	case errors.As(err, &sessionErr):
		return http.StatusNotFound
	case errors.As(err, &validationEr),
		errors.As(err, &contextErr),
		errors.As(err, &optionErr),
		errors.As(err, &extractErr):
		return http.StatusBadRequest
	case errors.As(err, &timeoutErr):
		return http.StatusGatewayTimeout
	case errors.As(err, &transientErr):
		return http.StatusServiceUnavailable
	case errors.As(err, &llmAuthErr), errors.As(err, &smtpAuthErr):
		return http.StatusBadGateway
	case errors.As(err, &recipientErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &transportErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
