package utils

import (
	"errors"
	"fmt"
)

// Kind classifies a business-rule failure. Every kind aborts the operation
// with no stored effect and can be retried with corrected input.
type Kind string

const (
	KindNotFound        Kind = "NOT_FOUND"
	KindAlreadyExists   Kind = "ALREADY_EXISTS"
	KindUnauthorized    Kind = "UNAUTHORIZED"
	KindSelfDealing     Kind = "SELF_DEALING"
	KindInactive        Kind = "INACTIVE"
	KindAlreadyReviewed Kind = "ALREADY_REVIEWED"
	KindInvalidArgument Kind = "INVALID_ARGUMENT"
	KindTransferFailed  Kind = "TRANSFER_FAILED"
)

// AppError carries a Kind and a human-readable message.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// Is matches any AppError of the same kind, so callers can compare against
// the sentinels below regardless of message.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Common application errors used across services.
var (
	ErrNotFound        = &AppError{Kind: KindNotFound, Message: "not found"}
	ErrAlreadyExists   = &AppError{Kind: KindAlreadyExists, Message: "already exists"}
	ErrUnauthorized    = &AppError{Kind: KindUnauthorized, Message: "unauthorized"}
	ErrSelfDealing     = &AppError{Kind: KindSelfDealing, Message: "self dealing"}
	ErrInactive        = &AppError{Kind: KindInactive, Message: "inactive"}
	ErrAlreadyReviewed = &AppError{Kind: KindAlreadyReviewed, Message: "already reviewed"}
	ErrInvalidArgument = &AppError{Kind: KindInvalidArgument, Message: "invalid argument"}
	ErrTransferFailed  = &AppError{Kind: KindTransferFailed, Message: "transfer failed"}

	ErrInvalidToken       = errors.New("INVALID_TOKEN")
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
)

// NewError builds an AppError of the given kind with a formatted message.
func NewError(kind Kind, format string, args ...any) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError builds an AppError that keeps the underlying cause.
func WrapError(kind Kind, err error, format string, args ...any) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of err, or "" if err is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}
