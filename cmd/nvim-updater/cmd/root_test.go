package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/nvim-updater/internal/fault"
)

// TestPrintError renders every layer of the chain.
func TestPrintError(t *testing.T) {
	var buf bytes.Buffer

	err := fmt.Errorf("get latest release: %w",
		fault.Wrap(fault.KindNetwork, "request release feed", errors.New("connection refused")))

	printError(&buf, err)

	out := buf.String()
	require.Contains(t, out, "Error: get latest release")
	require.Contains(t, out, "Caused by:")
	require.Contains(t, out, "0: request release feed")
	require.Contains(t, out, "1: connection refused")
	// A non-terminal writer gets no escape sequences.
	require.NotContains(t, out, "\x1b[")
}

// TestPrintError_Single omits the cause section for root failures.
func TestPrintError_Single(t *testing.T) {
	var buf bytes.Buffer

	printError(&buf, fault.New(fault.KindNotFound, "no release asset"))

	require.Contains(t, buf.String(), "Error: no release asset")
	require.NotContains(t, buf.String(), "Caused by")
}

// TestConfigCommand prints the fixed configuration.
func TestConfigCommand(t *testing.T) {
	var buf bytes.Buffer

	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"config"})

	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	require.Contains(t, buf.String(), "artifact_path: /opt/neovim/nvim.appimage")
	require.Contains(t, buf.String(), "user_agent: request")
}

// TestRootCommand_RejectsArguments keeps the entry point argument-free.
func TestRootCommand_RejectsArguments(t *testing.T) {
	rootCmd.SetArgs([]string{"unexpected"})

	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
	})

	require.Error(t, rootCmd.Execute())
}
