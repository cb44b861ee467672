package errors

import (
	stderrors "errors"
	"fmt"

	"healthlab/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is match an AppError against the domain sentinel for its code,
// so callers can test kinds without caring which layer produced the error.
func (e *AppError) Is(target error) bool {
	sentinel, ok := codeSentinels[e.Code]
	return ok && sentinel == target
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    codeFor(err),
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// GetCode returns the error code if it's an AppError, otherwise returns "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid   = "CONFIG_INVALID"
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeEmptyDataset    = "EMPTY_DATASET"
	CodeSchemaMismatch  = "SCHEMA_MISMATCH"
	CodeIOFailure       = "IO_FAILURE"
	CodeInternalError   = "INTERNAL_ERROR"
)

var codeSentinels = map[string]error{
	CodeInvalidArgument: core.ErrInvalidArgument,
	CodeEmptyDataset:    core.ErrEmptyDataset,
	CodeSchemaMismatch:  core.ErrSchemaMismatch,
	CodeIOFailure:       core.ErrIOFailure,
}

// codeFor classifies a plain error by the domain sentinel it wraps
func codeFor(err error) string {
	switch {
	case stderrors.Is(err, core.ErrInvalidArgument):
		return CodeInvalidArgument
	case stderrors.Is(err, core.ErrEmptyDataset):
		return CodeEmptyDataset
	case stderrors.Is(err, core.ErrSchemaMismatch):
		return CodeSchemaMismatch
	case stderrors.Is(err, core.ErrIOFailure):
		return CodeIOFailure
	default:
		return CodeInternalError
	}
}

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InvalidArgument(message string) *AppError {
	return New(CodeInvalidArgument, message)
}

func SchemaMismatch(message string) *AppError {
	return New(CodeSchemaMismatch, message)
}

func IOFailure(target string, cause error) *AppError {
	return &AppError{
		Code:    CodeIOFailure,
		Message: fmt.Sprintf("failed to write %s", target),
		Cause:   cause,
	}
}

func ReadFailure(source string, cause error) *AppError {
	return &AppError{
		Code:    CodeIOFailure,
		Message: fmt.Sprintf("failed to read %s", source),
		Cause:   cause,
	}
}

