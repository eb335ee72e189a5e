package models

import "net/http"

type ErrorKind int

const (
	ErrValidation ErrorKind = iota
	ErrConflict
	ErrNotFound
	ErrAuth
	ErrForbidden
	ErrRateLimit
	ErrStorage
)

// AppError is the failure type every service returns. Controllers map Kind to
// an HTTP status; Details carries per-field messages (e.g. one entry per
// invalid variant) so a client sees every problem at once.
type AppError struct {
	Kind    ErrorKind
	Message string
	Details []string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Status() int {
	switch e.Kind {
	case ErrValidation, ErrConflict:
		return http.StatusBadRequest
	case ErrNotFound:
		return http.StatusNotFound
	case ErrAuth:
		return http.StatusUnauthorized
	case ErrForbidden:
		return http.StatusForbidden
	case ErrRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func NewValidationError(message string, details ...string) *AppError {
	return &AppError{Kind: ErrValidation, Message: message, Details: details}
}

func NewConflictError(message string) *AppError {
	return &AppError{Kind: ErrConflict, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: ErrNotFound, Message: message}
}

func NewAuthError(message string) *AppError {
	return &AppError{Kind: ErrAuth, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Kind: ErrForbidden, Message: message}
}

func NewRateLimitError(message string) *AppError {
	return &AppError{Kind: ErrRateLimit, Message: message}
}

func NewStorageError(message string) *AppError {
	return &AppError{Kind: ErrStorage, Message: message}
}
