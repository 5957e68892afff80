package progress

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/term"
)

// Reporter receives cumulative progress of a single transfer.
type Reporter interface {
	// Start announces the expected total size in bytes.
	Start(ctx context.Context, total int64)
	// Update reports the bytes written so far. It never exceeds total.
	Update(ctx context.Context, written int64)
	// Finish marks the transfer as complete.
	Finish(ctx context.Context)
}

// ForFile picks a bar when f is a terminal and log lines otherwise.
//
//nolint:ireturn // Callers only need the Reporter behavior.
func ForFile(f *os.File) Reporter {
	if f != nil && term.IsTerminal(int(f.Fd())) {
		return NewBar(f)
	}

	return NewLog()
}

// Nop discards all progress.
type Nop struct{}

// Start implements Reporter.
func (Nop) Start(context.Context, int64) {}

// Update implements Reporter.
func (Nop) Update(context.Context, int64) {}

// Finish implements Reporter.
func (Nop) Finish(context.Context) {}

// formatBytes formats a byte count in human-readable format.
func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}

	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
