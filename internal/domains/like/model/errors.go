package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeMalformed        = "LIKE001"
	ErrCodeStaleReference   = "LIKE002"
	ErrCodeStoreUnavailable = "LIKE003"
)

// Repository-level errors
var (
	ErrLikeAlreadyExists = errors.New("like already exists")
	ErrLikeNotFound      = errors.New("like not found")
)

// Service-level errors
var (
	ErrMalformed = errors.New("malformed like request")

	// The artifact disappeared while the edge was being created
	ErrStaleReference = errors.New("artifact no longer exists")

	ErrTransientStore = errors.New("like store temporarily unavailable")
)

// LikeError carries a stable code for the HTTP layer
type LikeError struct {
	Code    string
	Message string
	Err     error
}

func (e *LikeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *LikeError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewMalformedError(message string) *LikeError {
	return &LikeError{
		Code:    ErrCodeMalformed,
		Message: message,
		Err:     ErrMalformed,
	}
}

func NewStaleReferenceError() *LikeError {
	return &LikeError{
		Code:    ErrCodeStaleReference,
		Message: "Artifact no longer exists",
		Err:     ErrStaleReference,
	}
}

// NewTransientError keeps cause in the chain for logging
func NewTransientError(cause error) *LikeError {
	return &LikeError{
		Code:    ErrCodeStoreUnavailable,
		Message: "Like store temporarily unavailable",
		Err:     fmt.Errorf("%w: %w", ErrTransientStore, cause),
	}
}
