package progress

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

const (
	barWidth = 50
	// clearLine erases what is left of a longer previous draw.
	clearLine = "\x1b[K"
)

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

// Bar redraws a single-line progress bar on a terminal.
type Bar struct {
	w       io.Writer
	model   progress.Model
	started time.Time
	total   int64
	written int64
	now     func() time.Time
}

// NewBar creates a bar drawing to w.
func NewBar(w io.Writer) *Bar {
	return &Bar{
		w: w,
		model: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(barWidth),
			progress.WithFillCharacters('#', '-'),
			progress.WithoutPercentage(),
		),
		now: time.Now,
	}
}

// Start implements Reporter.
func (b *Bar) Start(_ context.Context, total int64) {
	b.total = total
	b.written = 0
	b.started = b.now()
	b.draw()
}

// Update implements Reporter.
func (b *Bar) Update(_ context.Context, written int64) {
	b.written = written
	b.draw()
}

// Finish implements Reporter.
func (b *Bar) Finish(_ context.Context) {
	b.draw()
	_, _ = fmt.Fprintln(b.w)
}

// draw renders "[elapsed] bar written/total (rate, eta)" over the current line.
func (b *Bar) draw() {
	elapsed := b.now().Sub(b.started).Truncate(time.Second)

	_, _ = fmt.Fprintf(b.w, "\r%s%s %s %s %s",
		clearLine,
		dimStyle.Render("["+elapsed.String()+"]"),
		b.model.ViewAs(b.fraction()),
		labelStyle.Render(formatBytes(b.written)+"/"+formatBytes(b.total)),
		dimStyle.Render(b.rate()),
	)
}

func (b *Bar) fraction() float64 {
	if b.total <= 0 {
		return 1
	}

	return float64(b.written) / float64(b.total)
}

// rate returns "(speed/s, eta)" once any time has passed.
func (b *Bar) rate() string {
	seconds := b.now().Sub(b.started).Seconds()
	if seconds <= 0 || b.written == 0 {
		return ""
	}

	perSecond := float64(b.written) / seconds
	eta := time.Duration(float64(b.total-b.written) / perSecond * float64(time.Second)).Truncate(time.Second)

	return fmt.Sprintf("(%s/s, %s)", formatBytes(int64(perSecond)), eta)
}
