package usecase

import (
	"errors"
	"fmt"

	"bilemo-api/pkg/utils"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrRelatedNotFound    = errors.New("related entity not found")
	ErrValidation         = errors.New("validation failed")
	ErrForbidden          = errors.New("access denied")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrConflict           = errors.New("already exists")
	ErrUnauthorized       = errors.New("unauthorized")
)

// ValidationError carries field level messages. It matches ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", utils.FormatValidationErrors(e.Fields))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func validate(data any) error {
	if errs := utils.ValidateStruct(data); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
