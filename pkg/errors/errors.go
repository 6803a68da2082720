package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Domain errors
var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrValidation          = errors.New("validation failed")
	ErrSubmissionInFlight  = errors.New("submission already in progress")
	ErrNotFound            = errors.New("resource not found")
	ErrMissingLoanID       = errors.New("loan id is missing")
	ErrMissingAccountID    = errors.New("account id is missing")
	ErrBackendUnavailable  = errors.New("backend unavailable")
	ErrUnexpectedResponse  = errors.New("unexpected backend response")
	ErrStateNotInitialized = errors.New("state not initialized")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeSubmissionInFlight = "SUBMISSION_IN_FLIGHT"
	ErrCodeBackendError       = "BACKEND_ERROR"
	ErrCodeCacheError         = "CACHE_ERROR"
	ErrCodeStateError         = "STATE_ERROR"
)

// FieldError is a single inline form error.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects field-level failures that block a submission.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Message returns the message recorded for field, or "".
func (e *ValidationError) Message(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// NewValidationError creates a validation error for a single field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// RequestError is a failed call to the backend carrying the server message.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Message
}

func (e *RequestError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrBackendUnavailable:
		return e.Status >= http.StatusInternalServerError
	}
	return false
}

// NewRequestError creates a request error from a backend status and message
func NewRequestError(status int, message string) *RequestError {
	return &RequestError{Status: status, Message: message}
}

func WrapBackendError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeBackendError,
		"backend request failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}

func WrapStateError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeStateError,
		"state store operation failed",
		err,
	)
}

func WrapSubmissionInFlight(key string) *BusinessError {
	return NewBusinessError(
		ErrCodeSubmissionInFlight,
		fmt.Sprintf("A submission for %s is already in progress", key),
		ErrSubmissionInFlight,
	)
}
