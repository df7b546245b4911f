package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindClassification(t *testing.T) {
	err := Validation("reason too long")
	require.True(t, Is(err, KindValidation))
	require.False(t, Is(err, KindNotFound))
	require.Equal(t, "VALIDATION", err.Code())

	_, ok := KindOf(errors.New("plain"))
	require.False(t, ok)
}

func TestTransientWrapping(t *testing.T) {
	cause := errors.New("connection refused")
	err := Transient("search failed", cause)

	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "search failed")
	require.Contains(t, err.Error(), "connection refused")

	wrapped := fmt.Errorf("handler: %w", err)
	require.True(t, Is(wrapped, KindTransient))
}
