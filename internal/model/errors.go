// Package model provides core data types for recdesk.
package model

import (
	"errors"
	"fmt"
)

// Error types for recdesk operations
var (
	ErrValidation     = errors.New("validation failed")
	ErrRemote         = errors.New("record service request failed")
	ErrRecordNotFound = errors.New("record not found")
	ErrInvalidID      = errors.New("invalid record ID")
	ErrInvalidMode    = errors.New("invalid edit mode")
)

// ValidationError describes user input that was rejected before any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
