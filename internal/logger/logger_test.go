package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":  zapcore.DebugLevel,
		"info":   zapcore.InfoLevel,
		" WARN ": zapcore.WarnLevel,
		"error":  zapcore.ErrorLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("unknown")
	require.False(t, ok)
}

// TestNew_WritesConsoleLines ensures messages at or above the level reach the writer.
func TestNew_WritesConsoleLines(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := New(&buf, zap.NewAtomicLevelAt(zapcore.InfoLevel))
	l.Debug("hidden")
	l.Infow("Neovim is up to date", "version", "0.9.2")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "Neovim is up to date")
	require.Contains(t, out, "0.9.2")
}
