package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/oshokin/nvim-updater/internal/config"
	"github.com/oshokin/nvim-updater/internal/fault"
	"github.com/oshokin/nvim-updater/internal/logger"
	"github.com/oshokin/nvim-updater/internal/progress"
	"github.com/oshokin/nvim-updater/internal/service/updater"
	"github.com/oshokin/nvim-updater/internal/version"
)

// errorColor highlights the failure report.
var errorColor = lipgloss.Color("#EF4444")

var (
	// rootCmd checks the installed Neovim AppImage and upgrades it when a newer release exists.
	rootCmd = &cobra.Command{
		Use:   "nvim-updater",
		Short: "Keep the Neovim AppImage up to date",
		Long: `Checks the installed Neovim AppImage against the latest GitHub release and
upgrades it when a newer version is published.

The installed version is read from ` + config.DefaultMarkerPath + ` and the AppImage is
installed to ` + config.DefaultArtifactPath + `. There are no flags and no configuration file.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			cfg := config.Default()
			if level, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
				logger.SetLevel(level)
			}

			options := &updater.Options{
				Config:   cfg,
				Reporter: progress.ForFile(os.Stdout),
			}

			outcome, err := updater.Run(ctx, options)
			if err != nil {
				return err
			}

			logger.DebugKV(ctx, "Run finished", "outcome", outcome.String())

			return nil
		},
	}

	// configCmd prints the fixed configuration.
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the fixed paths and feed settings as YAML.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.Marshal(config.Default())
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	}
)

// Execute runs the nvim-updater CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError writes the causal chain of err, one context per line.
func printError(w io.Writer, err error) {
	chain := fault.Chain(err)
	if len(chain) == 0 {
		return
	}

	var report strings.Builder

	report.WriteString("Error: " + chain[0])

	if len(chain) > 1 {
		report.WriteString("\n\nCaused by:")

		for i, cause := range chain[1:] {
			fmt.Fprintf(&report, "\n    %d: %s", i, cause)
		}
	}

	// The color profile follows w, not stdout.
	style := lipgloss.NewRenderer(w).NewStyle().Bold(true).Foreground(errorColor)

	_, _ = fmt.Fprintln(w, style.Render(report.String()))
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(configCmd)
}
