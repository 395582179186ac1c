package entity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorIsMatchesByKind(t *testing.T) {
	err := NewError(KindDecode, "binarize", errors.New("bad header"))
	wrapped := fmt.Errorf("transcribe: %w", err)

	require.ErrorIs(t, wrapped, ErrDecode)
	require.NotErrorIs(t, wrapped, ErrInference)
	require.Equal(t, KindDecode, KindOf(wrapped))
	require.Contains(t, wrapped.Error(), "bad header")
}

func TestErrorUnwrapKeepsCause(t *testing.T) {
	cause := errors.New("session closed")
	err := NewError(KindInference, "classify", cause)
	require.ErrorIs(t, err, cause)
}

func TestKindOfForeignError(t *testing.T) {
	require.Equal(t, KindUnknown, KindOf(errors.New("boom")))
}
