package utils

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an AppError so handlers can map it to a status code
// and clients can branch on it without parsing messages.
type ErrorKind string

const (
	KindValidation ErrorKind = "VALIDATION"
	KindPermission ErrorKind = "PERMISSION"
	KindConflict   ErrorKind = "CONFLICT"
	KindNotFound   ErrorKind = "NOT_FOUND"
)

// AppError is the error type surfaced by all service operations.
type AppError struct {
	Kind    ErrorKind
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func ValidationError(format string, args ...interface{}) error {
	return &AppError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func PermissionError(format string, args ...interface{}) error {
	return &AppError{Kind: KindPermission, Message: fmt.Sprintf(format, args...)}
}

func ConflictError(format string, args ...interface{}) error {
	return &AppError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func NotFoundError(format string, args ...interface{}) error {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func isKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

func IsValidation(err error) bool { return isKind(err, KindValidation) }
func IsPermission(err error) bool { return isKind(err, KindPermission) }
func IsConflict(err error) bool   { return isKind(err, KindConflict) }
func IsNotFound(err error) bool   { return isKind(err, KindNotFound) }
