package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// TestFromContext_FallsBackToGlobal ensures an empty context yields the global logger.
func TestFromContext_FallsBackToGlobal(t *testing.T) {
	t.Parallel()

	require.Same(t, global, FromContext(context.Background()))
}

// TestWithNameAndKV verifies scoped loggers carry their name and fields.
func TestWithNameAndKV(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	ctx := ToContext(context.Background(), zap.New(core).Sugar())

	ctx = WithName(ctx, "nvim-updater")
	ctx = WithKV(ctx, "run", 1)

	InfoKV(ctx, "Polling", "url", "https://example.com")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "nvim-updater", entries[0].LoggerName)
	require.Equal(t, "Polling", entries[0].Message)
	require.Equal(t, map[string]any{"run": int64(1), "url": "https://example.com"}, entries[0].ContextMap())
}
