package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidPassword is returned when a password doesn't meet requirements.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrUnauthorized is returned when an operation is not permitted
	// for the calling user.
	ErrUnauthorized = errors.New("unauthorized operation")

	// ErrPremiumRequired is returned when a feature is gated behind a
	// premium subscription. Wrap with the feature name via NewPremiumError.
	ErrPremiumRequired = errors.New("premium subscription required")

	// ErrInvalidScheduleType is returned when a task schedule type is not
	// one of the recognized values.
	ErrInvalidScheduleType = errors.New("invalid schedule type")
)

// FieldError is a validation error that names the offending field.
// It wraps ErrValidation so errors.Is(err, ErrValidation) holds.
type FieldError struct {
	Field   string
	Message string
}

// Error implements the error interface for FieldError.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap makes FieldError match ErrValidation under errors.Is.
func (e *FieldError) Unwrap() error {
	return ErrValidation
}

// NewFieldError creates a validation error for a specific field.
func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}

// PremiumError is returned when a premium-gated feature is requested by a
// non-premium user. It carries the feature name for the UI layer.
type PremiumError struct {
	Feature string
}

// Error implements the error interface for PremiumError.
func (e *PremiumError) Error() string {
	return fmt.Sprintf("premium subscription required for %s", e.Feature)
}

// Unwrap makes PremiumError match ErrPremiumRequired under errors.Is.
func (e *PremiumError) Unwrap() error {
	return ErrPremiumRequired
}

// NewPremiumError creates a PremiumError for the named feature.
func NewPremiumError(feature string) *PremiumError {
	return &PremiumError{Feature: feature}
}
