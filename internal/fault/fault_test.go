package fault

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestWrap_NilCause ensures wrapping a nil error stays nil.
func TestWrap_NilCause(t *testing.T) {
	t.Parallel()

	require.NoError(t, Wrap(KindIO, "read marker", nil))
}

// TestError_Message checks rendering with and without a cause.
func TestError_Message(t *testing.T) {
	t.Parallel()

	require.EqualError(t, New(KindNotFound, "no appimage asset"), "no appimage asset")
	require.EqualError(t, Wrap(KindIO, "read marker", os.ErrPermission), "read marker: permission denied")
}

// TestKindOf_And_Is verifies kind lookup through fmt.Errorf wrapping and nested faults.
func TestKindOf_And_Is(t *testing.T) {
	t.Parallel()

	inner := Wrap(KindParse, "parse version", errors.New("bad"))
	outer := fmt.Errorf("fetch latest: %w", Wrap(KindFormat, "extract version", inner))

	kind, ok := KindOf(outer)
	require.True(t, ok)
	require.Equal(t, KindFormat, kind)

	require.True(t, Is(outer, KindFormat))
	require.True(t, Is(outer, KindParse))
	require.False(t, Is(outer, KindNetwork))

	_, ok = KindOf(errors.New("plain"))
	require.False(t, ok)
	require.False(t, Is(nil, KindIO))
}

// TestChain splits a wrapped error into its context layers.
func TestChain(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("run updater: %w",
		Wrap(KindIO, "write marker", os.ErrPermission))

	require.Equal(t, []string{"run updater", "write marker", "permission denied"}, Chain(err))
	require.Empty(t, Chain(nil))
}

// TestKind_String covers every named kind.
func TestKind_String(t *testing.T) {
	t.Parallel()

	require.Equal(t, "io", KindIO.String())
	require.Equal(t, "inconsistent state", KindInconsistentState.String())
	require.Equal(t, "unknown", Kind(0).String())
}
