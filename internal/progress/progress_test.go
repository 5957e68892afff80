package progress

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/oshokin/nvim-updater/internal/logger"
)

// TestFormatBytes checks unit boundaries.
func TestFormatBytes(t *testing.T) {
	t.Parallel()

	require.Equal(t, "0 B", formatBytes(0))
	require.Equal(t, "1023 B", formatBytes(1023))
	require.Equal(t, "1.0 KiB", formatBytes(1024))
	require.Equal(t, "1.5 MiB", formatBytes(3*512*1024))
}

// TestBar_Draws renders the byte counters and terminates the line on Finish.
func TestBar_Draws(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	clock := time.Unix(1000, 0)
	bar := NewBar(&buf)
	bar.now = func() time.Time { return clock }

	ctx := context.Background()
	bar.Start(ctx, 2048)

	clock = clock.Add(2 * time.Second)
	bar.Update(ctx, 1024)
	bar.Update(ctx, 2048)
	bar.Finish(ctx)

	out := buf.String()
	require.Contains(t, out, "1.0 KiB/2.0 KiB")
	require.Contains(t, out, "2.0 KiB/2.0 KiB")
	require.Contains(t, out, "[2s]")
	require.Contains(t, out, "(512 B/s, 2s)")
	require.Contains(t, out, "(1.0 KiB/s, 0s)")
	require.True(t, strings.HasSuffix(out, "\n"))
	// Every redraw clears the rest of the previous line.
	require.Equal(t, strings.Count(out, "\r"), strings.Count(out, "\r\x1b[K"))
	require.Equal(t, 4, strings.Count(out, "\r\x1b[K"))
}

// TestLog_Steps emits one line per completed tenth.
func TestLog_Steps(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	ctx := logger.ToContext(context.Background(), zap.New(core).Sugar())

	l := NewLog()
	l.Start(ctx, 100)

	for written := int64(1); written <= 100; written++ {
		l.Update(ctx, written)
	}

	l.Finish(ctx)

	require.Len(t, logs.FilterMessage("Download started").All(), 1)
	require.Len(t, logs.FilterMessage("Download progress").All(), logSteps)
}

// TestForFile_NonTerminal falls back to log lines for nil and regular files.
func TestForFile_NonTerminal(t *testing.T) {
	t.Parallel()

	require.IsType(t, new(Log), ForFile(nil))
}
