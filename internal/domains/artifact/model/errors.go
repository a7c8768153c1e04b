package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeArtifactNotFound = "ART001"
	ErrCodeNotOwner         = "ART002"
	ErrCodeStoreUnavailable = "ART003"
	ErrCodeInvalidID        = "ART004"
)

// Repository-level errors
var (
	ErrArtifactNotFound = errors.New("artifact not found")

	// The row exists but the decrement would take like_count below zero
	ErrLikeCountUnderflow = errors.New("like count would become negative")

	// AdjustLikeCount only accepts +1 / -1
	ErrInvalidDelta = errors.New("like count delta must be +1 or -1")
)

// Service-level errors
var (
	ErrNotOwner          = errors.New("artifact belongs to another seller")
	ErrInvalidArtifactID = errors.New("invalid artifact id")
)

// ArtifactError carries a stable code for the HTTP layer
type ArtifactError struct {
	Code    string
	Message string
	Err     error
}

func (e *ArtifactError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ArtifactError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewArtifactNotFoundError() *ArtifactError {
	return &ArtifactError{
		Code:    ErrCodeArtifactNotFound,
		Message: "Artifact not found",
		Err:     ErrArtifactNotFound,
	}
}

func NewNotOwnerError() *ArtifactError {
	return &ArtifactError{
		Code:    ErrCodeNotOwner,
		Message: "You can only manage your own artifacts",
		Err:     ErrNotOwner,
	}
}

func NewInvalidIDError() *ArtifactError {
	return &ArtifactError{
		Code:    ErrCodeInvalidID,
		Message: "Invalid artifact id",
		Err:     ErrInvalidArtifactID,
	}
}
