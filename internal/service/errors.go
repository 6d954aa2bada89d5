package service

import (
	"errors"
	"fmt"

	"github.com/nutrilens/backend/internal/nutrition"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = nutrition.ErrInvalidInput
	ErrModelUnavailable = errors.New("analysis model unavailable")
	ErrModelTimeout     = errors.New("analysis model timed out")
	ErrUnauthorized     = errors.New("invalid credentials")
	ErrEmailTaken       = errors.New("email already in use")
	ErrValidation       = errors.New("validation failed")
)

// ValidationError reports a rejected write. It matches ErrValidation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
