package progress

import (
	"context"

	"github.com/oshokin/nvim-updater/internal/logger"
)

// logSteps is how many progress lines a full transfer produces.
const logSteps = 10

// Log writes a status line each time another tenth of the transfer completes.
type Log struct {
	total    int64
	lastStep int64
}

// NewLog creates a log reporter.
func NewLog() *Log {
	return new(Log)
}

// Start implements Reporter.
func (l *Log) Start(ctx context.Context, total int64) {
	l.total = total
	l.lastStep = 0

	logger.InfoKV(ctx, "Download started", "total", formatBytes(total))
}

// Update implements Reporter.
func (l *Log) Update(ctx context.Context, written int64) {
	if l.total <= 0 {
		return
	}

	step := written * logSteps / l.total
	if step <= l.lastStep {
		return
	}

	l.lastStep = step

	logger.InfoKV(ctx, "Download progress",
		"written", formatBytes(written), "total", formatBytes(l.total), "percent", step*100/logSteps)
}

// Finish implements Reporter.
func (l *Log) Finish(ctx context.Context) {
	logger.Debug(ctx, "Download finished")
}
