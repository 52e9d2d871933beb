// Package apierror provides the error taxonomy and response envelope for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"net/http"
)

// Kind classifies an error into the HTTP status it maps to.
type Kind int

const (
	KindValidation   Kind = iota // caller-fixable input → 400
	KindNotFound                 // referenced entity absent → 404
	KindInvalidState             // operation violates current entity state → 400
	KindConflict                 // state conflict (e.g. stage with weights) → 409
	KindInternal                 // infrastructure / unexpected → 500
)

// Error is the canonical API error: a kind plus a client-safe message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Status returns the HTTP status code for the error kind.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindInvalidState:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func Validation(msg string) *Error   { return &Error{Kind: KindValidation, Message: msg} }
func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Message: msg} }
func InvalidState(msg string) *Error { return &Error{Kind: KindInvalidState, Message: msg} }
func Conflict(msg string) *Error     { return &Error{Kind: KindConflict, Message: msg} }
func Internal(msg string) *Error     { return &Error{Kind: KindInternal, Message: msg} }

// StatusOf maps any error to its HTTP status; non-API errors are 500.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status()
	}
	return http.StatusInternalServerError
}

// Envelope is the failure payload: {"success": false, "error": "..."}.
type Envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// New builds the failure envelope for a message.
func New(msg string) Envelope { return Envelope{Success: false, Error: msg} }

// From builds the failure envelope for an error, masking non-API errors so
// internals never reach the client.
func From(err error) Envelope {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return New(apiErr.Message)
	}
	return New("Erro interno do servidor")
}
