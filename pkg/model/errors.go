package model

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a pipeline failure.
type ErrorKind string

const (
	KindFormat            ErrorKind = "format_error"
	KindModelDetection    ErrorKind = "model_detection_error"
	KindUnknownCalculator ErrorKind = "unknown_calculator_error"
	KindInconsistentData  ErrorKind = "inconsistent_data_error"
	KindGeographyLoad     ErrorKind = "geography_load_error"
)

func (k ErrorKind) String() string {
	return string(k)
}

// HTTPStatus is the status the web layer reports for this kind.
// Only geography failures are the server's fault.
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindFormat, KindModelDetection, KindUnknownCalculator:
		return http.StatusBadRequest
	case KindInconsistentData:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// IsClientError reports whether the failure was caused by the submitted input.
func (k ErrorKind) IsClientError() bool {
	return k.HTTPStatus() < http.StatusInternalServerError
}

// Sentinels for errors.Is matching against a kind.
var (
	ErrFormat            = &Error{Kind: KindFormat}
	ErrModelDetection    = &Error{Kind: KindModelDetection}
	ErrUnknownCalculator = &Error{Kind: KindUnknownCalculator}
	ErrInconsistentData  = &Error{Kind: KindInconsistentData}
	ErrGeographyLoad     = &Error{Kind: KindGeographyLoad}
)

// Error is the single failure type returned by the admixture pipeline.
// Message is meant to be shown to the submitting user as is.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrFormat) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapError(cause error, kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// KindOf returns the kind of a pipeline error, or "" for foreign errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// MessageOf returns the user facing message of a pipeline error.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
