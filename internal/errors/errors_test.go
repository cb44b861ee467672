package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"healthlab/domain/core"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorMatchesDomainSentinel(t *testing.T) {
	err := IOFailure("chart.png", fmt.Errorf("permission denied"))

	assert.True(t, stderrors.Is(err, core.ErrIOFailure))
	assert.False(t, stderrors.Is(err, core.ErrEmptyDataset))
	assert.Equal(t, CodeIOFailure, GetCode(err))
	assert.Equal(t, "failed to write chart.png: permission denied", err.Error())
}

func TestWrapClassifiesPlainErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"invalid argument", core.NewInvalidArgumentError("n", "must be positive"), CodeInvalidArgument},
		{"empty dataset", core.NewEmptyDatasetError("summary"), CodeEmptyDataset},
		{"missing column", core.NewColumnNotFoundError("age"), CodeSchemaMismatch},
		{"unclassified", fmt.Errorf("boom"), CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := Wrap(tt.err, "context")
			assert.Equal(t, tt.code, GetCode(wrapped))
			assert.True(t, stderrors.Is(wrapped, tt.err))
		})
	}
}

func TestWrapKeepsCodeOfNestedAppError(t *testing.T) {
	inner := ConfigInvalid("HEALTH_DATA_FILE is required")
	outer := Wrapf(inner, "failed to load %s", "config")

	assert.Equal(t, CodeConfigInvalid, GetCode(outer))
	assert.Equal(t, "failed to load config: HEALTH_DATA_FILE is required", outer.Error())
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestGetCodeUnknown(t *testing.T) {
	assert.Equal(t, "UNKNOWN", GetCode(fmt.Errorf("plain")))
	assert.Equal(t, CodeSchemaMismatch, GetCode(fmt.Errorf("wrapped: %w", SchemaMismatch("x"))))
}
