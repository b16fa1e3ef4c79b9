package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")

	ErrValidation = errors.New("validation failed")

	ErrInvalidDate = errors.New("invalid date")

	ErrScheduleComputation = errors.New("schedule computation failed")

	ErrInternalServer = errors.New("internal server error")
)

type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func NewValidationError(field, message string) error {
	return fmt.Errorf("%w: %w", ErrValidation, &ValidationError{Field: field, Message: message})
}

// WrapValidationError keeps cause reachable through errors.Is, e.g. ErrInvalidDate.
func WrapValidationError(field, message string, cause error) error {
	return fmt.Errorf("%w: %w", ErrValidation, &ValidationError{Field: field, Message: message, Cause: cause})
}

type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func WrapComputationError(cause error, message string) error {
	return &AppError{
		Code:    "SCHEDULE_ERROR",
		Message: message,
		Cause:   fmt.Errorf("%w: %w", ErrScheduleComputation, cause),
	}
}
