package model

import (
	"fmt"
	"net/http"
)

// Kind classifies a failure of one of the pipelines.
type Kind string

const (
	KindInvalidImage          Kind = "invalid_image"
	KindInternal              Kind = "internal_error"
	KindUnauthorized          Kind = "unauthorized"
	KindInvalidInput          Kind = "invalid_input"
	KindConversionEngineError Kind = "conversion_engine_error"
	KindNoOutputProduced      Kind = "no_output_produced"
	KindAmbiguousOutput       Kind = "ambiguous_output"
)

// HTTPStatus maps a kind onto the status code reported to clients.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindInvalidImage, KindInvalidInput:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindInternal, KindConversionEngineError, KindNoOutputProduced, KindAmbiguousOutput:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified failure. Message is safe to show to clients; Err is
// the underlying cause and is only meant for logs.
type Error struct {
	Kind    Kind
	Message string
	Reason  string
	Err     error
}

func NewError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// WithReason attaches a short sub-reason such as "timeout".
func (e *Error) WithReason(reason string) *Error {
	e.Reason = reason

	return e
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}
