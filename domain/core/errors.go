package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Argument and data errors
	ErrInvalidArgument = errors.New("invalid argument")
	ErrEmptyDataset    = errors.New("empty dataset")
	ErrSchemaMismatch  = errors.New("schema mismatch")
	ErrColumnNotFound  = fmt.Errorf("%w: column not found", ErrSchemaMismatch)

	// Output errors
	ErrIOFailure = errors.New("io failure")
)

// Error constructors with context
func NewInvalidArgumentError(field string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidArgument, field, reason)
}

func NewEmptyDatasetError(operation string) error {
	return fmt.Errorf("%w: %s needs at least one row", ErrEmptyDataset, operation)
}

func NewNoValuesError(column string) error {
	return fmt.Errorf("%w: column %s has no non-missing values", ErrEmptyDataset, column)
}

func NewColumnNotFoundError(column string) error {
	return fmt.Errorf("%w: %s", ErrColumnNotFound, column)
}
