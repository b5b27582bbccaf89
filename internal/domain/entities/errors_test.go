package entities

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversionError(t *testing.T) {
	t.Run("message includes path and cause", func(t *testing.T) {
		cause := errors.New("zip: not a valid zip file")
		err := NewInvalidFormatError("/tmp/fake.pptx", cause)

		assert.Contains(t, err.Error(), "/tmp/fake.pptx")
		assert.Contains(t, err.Error(), "not a valid zip file")
		assert.Equal(t, ErrorTypeInvalidFormat, err.Type)
	})

	t.Run("unwraps cause", func(t *testing.T) {
		err := NewNotFoundError("/missing.pptx", fs.ErrNotExist)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("render error has no path", func(t *testing.T) {
		err := NewRenderError(errors.New("bad markup"))
		assert.Equal(t, ErrorTypeRender, err.Type)
		assert.NotContains(t, err.Error(), ": :")
	})
}

func TestErrorTypeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ConversionErrorType
	}{
		{"not found", NewNotFoundError("x", nil), ErrorTypeNotFound},
		{"invalid format", NewInvalidFormatError("x", nil), ErrorTypeInvalidFormat},
		{"destination", NewDestinationError("x", nil), ErrorTypeDestination},
		{"cancelled", NewCancelledError(nil), ErrorTypeCancelled},
		{"plain error", errors.New("nope"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorTypeOf(tt.err))
		})
	}
}

func TestErrorPredicates(t *testing.T) {
	require.True(t, IsNotFound(NewNotFoundError("x", nil)))
	require.False(t, IsNotFound(NewInvalidFormatError("x", nil)))

	// Predicates see through wrapping.
	wrapped := &ConversionError{
		Type:    ErrorTypeInvalidFormat,
		Message: "outer",
		Cause:   errors.New("inner"),
	}
	require.True(t, IsInvalidFormat(wrapped))
}
