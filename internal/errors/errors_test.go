//nolint:revive // Package name matches the package it tests
package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	assert.NotEqual(t, ErrValidation, ErrPermission)
	assert.NotEqual(t, ErrValidation, ErrNotFound)
	assert.NotEqual(t, ErrNotFound, ErrDuplicate)
}

func TestDetailErrorError(t *testing.T) {
	detail := &DetailError{
		Type:     "not found",
		Message:  "license source missing",
		Location: "LICENSE",
		Context:  map[string]string{"Section": "obsi2"},
		Hint:     "check the licenses list",
	}

	output := detail.Error()

	assert.Contains(t, output, "Error: not found")
	assert.Contains(t, output, "Location: LICENSE")
	assert.Contains(t, output, "Section: obsi2")
	assert.Contains(t, output, "license source missing")
	assert.Contains(t, output, "Hint: check the licenses list")
}

func TestDetailErrorUnwrap(t *testing.T) {
	detail := &DetailError{
		Type:    "test",
		Message: "test message",
		Cause:   ErrValidation,
	}

	assert.True(t, errors.Is(detail, ErrValidation))
	assert.Equal(t, ErrValidation, detail.Unwrap())
}

func TestNewDuplicateError(t *testing.T) {
	err := NewDuplicateError("obsi2.util", "util.lua", "util/init.lua")

	assert.True(t, errors.Is(err, ErrDuplicate))
	assert.Contains(t, err.Error(), "util.lua")
	assert.Contains(t, err.Error(), "util/init.lua")
}

func TestFromFS(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"not exist", fmt.Errorf("open x: %w", fs.ErrNotExist), ErrNotFound},
		{"permission", fmt.Errorf("open x: %w", fs.ErrPermission), ErrPermission},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromFS(tt.err, "reading x", "x")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel))
			assert.True(t, errors.Is(err, tt.err), "original cause must stay reachable")
		})
	}

	t.Run("other errors are wrapped", func(t *testing.T) {
		base := errors.New("disk on fire")
		err := FromFS(base, "reading x", "x")
		assert.ErrorIs(t, err, base)
		assert.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, FromFS(nil, "reading x", "x"))
	})
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("invalid value", "obsi-bundle.yaml", "extension must look like .lua")

	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var detail *DetailError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, "validation failed", detail.Type)
	assert.Equal(t, "obsi-bundle.yaml", detail.Location)
}

func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrValidation, "schema check failed")

	assert.True(t, errors.Is(wrapped, ErrValidation))
	assert.Contains(t, wrapped.Error(), "schema check failed")
}
