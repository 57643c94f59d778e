package core

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an AppError and determines its HTTP status.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindBusinessRule
)

// Stable error codes of the API.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeBusinessRule = "BUSINESS_RULE_VIOLATION"
	CodeInternal     = "INTERNAL_SERVER_ERROR"
)

// Reasons of business rule violations.
const (
	ReasonNoCopiesAvailable = "NO_COPIES_AVAILABLE"
	ReasonDuplicateCheckout = "DUPLICATE_CHECKOUT"
	ReasonAlreadyReturned   = "ALREADY_RETURNED"
	ReasonCopiesOnLoan      = "COPIES_ON_LOAN"
)

// MessageInternal is what clients see for unexpected failures.
const MessageInternal = "An unexpected error occurred. Please try again later."

// AppError is an error with a stable machine readable code and a message safe to show to clients.
// Cause keeps the underlying error for logs and errors.Is, it is never sent to clients outside of
// development.
type AppError struct {
	Kind    Kind
	Code    string
	Reason  string
	Message string
	Fields  map[string][]string
	Cause   error
}

func (e *AppError) Error() string {
	var b strings.Builder

	b.WriteString(e.Code)
	if e.Reason != "" {
		b.WriteString("/" + e.Reason)
	}
	b.WriteString(": " + e.Message)

	if e.Cause != nil {
		b.WriteString(": " + e.Cause.Error())
	}

	return b.String()
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode is the HTTP status of the error kind.
func (e *AppError) StatusCode() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindBusinessRule:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// IsBusinessOutcome reports whether the error is an expected rejection rather than a failure.
func (e *AppError) IsBusinessOutcome() bool {
	return e.Kind != KindInternal
}

// NotFound creates the error for a missing resource.
func NotFound(resource string, key any) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with id '%v' was not found.", resource, key),
	}
}

// Conflict creates the error for a natural key that is already taken.
func Conflict(message string) *AppError {
	return &AppError{Kind: KindConflict, Code: CodeConflict, Message: message}
}

// BusinessRule creates the error for a violated business rule with its reason code.
func BusinessRule(reason, message string) *AppError {
	return &AppError{Kind: KindBusinessRule, Code: CodeBusinessRule, Reason: reason, Message: message}
}

// Validation creates the error for invalid input with per-field messages.
func Validation(fields map[string][]string) *AppError {
	return &AppError{Kind: KindValidation, Code: CodeValidation, Message: "Validation failed", Fields: fields}
}

// ValidationField creates a validation error for a single field.
func ValidationField(field, message string) *AppError {
	return Validation(map[string][]string{field: {message}})
}

// Unauthorized creates the error for missing or invalid credentials.
func Unauthorized(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Code: CodeUnauthorized, Message: message}
}

// Forbidden creates the error for an authenticated caller without permission.
func Forbidden(message string) *AppError {
	return &AppError{Kind: KindForbidden, Code: CodeForbidden, Message: message}
}

// Internal wraps an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{Kind: KindInternal, Code: CodeInternal, Message: MessageInternal, Cause: cause}
}

// WithCause returns a copy of the error carrying cause.
func (e *AppError) WithCause(cause error) *AppError {
	c := *e
	c.Cause = cause

	return &c
}

// AsAppError finds the first AppError in the chain of err.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}

	return nil, false
}

// ToAppError returns the AppError in the chain of err, or wraps err as Internal.
func ToAppError(err error) *AppError {
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}

	return Internal(err)
}

// IsKind reports whether err carries an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	appErr, ok := AsAppError(err)

	return ok && appErr.Kind == kind
}

// HasReason reports whether err carries a business rule violation with the given reason.
func HasReason(err error, reason string) bool {
	appErr, ok := AsAppError(err)

	return ok && appErr.Kind == KindBusinessRule && appErr.Reason == reason
}
