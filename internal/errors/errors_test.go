package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	baseErr := errors.New("base error")

	t.Run("wrap non-nil error", func(t *testing.T) {
		wrapped := Wrap(baseErr, "wrapped")
		require.Error(t, wrapped)
		assert.Equal(t, "wrapped: base error", wrapped.Error())
		assert.True(t, Is(wrapped, baseErr))
	})

	t.Run("wrap nil error", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, "wrapped"))
	})
}

func TestCodedError(t *testing.T) {
	errInvalidKeyLength := NewCoded(ErrInvalidInput, "error.invalid_key_length", "invalid key length")

	t.Run("message includes kind", func(t *testing.T) {
		assert.Equal(t, "invalid input: invalid key length", errInvalidKeyLength.Error())
	})

	t.Run("unwraps to kind", func(t *testing.T) {
		wrapped := Wrap(errInvalidKeyLength, "failed to generate rsa key")
		assert.True(t, Is(wrapped, ErrInvalidInput))
		assert.True(t, Is(wrapped, errInvalidKeyLength))
		assert.False(t, Is(wrapped, ErrEncryption))
	})

	t.Run("equal codes match", func(t *testing.T) {
		other := NewCoded(ErrInvalidInput, "error.invalid_key_length", "a different message")
		assert.True(t, Is(other, errInvalidKeyLength))

		different := NewCoded(ErrInvalidInput, "error.missing_value", "missing value")
		assert.False(t, Is(different, errInvalidKeyLength))
	})

	t.Run("code of", func(t *testing.T) {
		wrapped := fmt.Errorf("outer: %w", errInvalidKeyLength)
		assert.Equal(t, "error.invalid_key_length", CodeOf(wrapped))
		assert.Equal(t, "", CodeOf(ErrNotFound))
	})

	t.Run("nil kind", func(t *testing.T) {
		err := NewCoded(nil, "error.x", "plain")
		assert.Equal(t, "plain", err.Error())
	})
}

func TestAs(t *testing.T) {
	err := Wrap(NewCoded(ErrInvalidInput, "error.missing_value", "missing value"), "set")

	var coded *CodedError
	require.True(t, As(err, &coded))
	assert.Equal(t, "error.missing_value", coded.Code)
}

func TestJoin(t *testing.T) {
	err := Join(ErrPersistence, ErrNotFound)
	assert.True(t, Is(err, ErrPersistence))
	assert.True(t, Is(err, ErrNotFound))
}
