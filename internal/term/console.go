package term

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"

	"github.com/charmbracelet/lipgloss"

	"github.com/wvtest/wvtool/pkg/protocol"
)

// Printer is the plain console sink: styled lines straight to the writer,
// no progress display. Used for non-interactive output and log replay.
type Printer struct {
	out   io.Writer
	theme Theme
	width int
}

// NewPrinter creates a direct console on out.
func NewPrinter(out io.Writer, theme Theme, width int) *Printer {
	return &Printer{out: out, theme: theme, width: width}
}

// Print writes one styled line.
func (p *Printer) Print(line protocol.Line) {
	fmt.Fprintln(p.out, FormatLine(p.theme, line, p.width))
}

// PrintText writes one plain text line.
func (p *Printer) PrintText(text string) {
	fmt.Fprintln(p.out, text)
}

// SetProgress is a no-op: a plain printer has no progress display.
func (p *Printer) SetProgress(string) {}

// Progress is a no-op.
func (p *Printer) Progress() {}

// ClearProgress is a no-op.
func (p *Printer) ClearProgress() {}

// Close flushes nothing; the printer does not own the writer.
func (p *Printer) Close() error { return nil }

// ForceColor overrides terminal detection so styles render even when output
// is not a TTY (the --color flag).
func ForceColor() {
	lipgloss.SetColorProfile(termenv.ANSI256)
}
