// Package processor is the streaming core: it consumes classified protocol
// lines one at a time, tracks the open test section, accumulates per-section
// and run-wide counters, and drives console output and report records at
// section boundaries.
package processor

import (
	"fmt"
	"io"
	"time"

	"github.com/wvtest/wvtool/pkg/junit"
	"github.com/wvtest/wvtool/pkg/protocol"
)

// Verbosity selects how much of the stream reaches the console.
type Verbosity int

const (
	// Summary prints one line per section, pass or fail.
	Summary Verbosity = iota + 1
	// Normal prints one line for passing sections and the full captured
	// text for failing ones.
	Normal
	// Verbose echoes every line as it arrives.
	Verbose
)

// Console is the terminal sink used for immediate echo, finalization output
// and the progress indicator. Implementations decide styling and whether a
// progress display exists at all; the processor only says when.
type Console interface {
	// Print writes one classified line, styled per its kind.
	Print(line protocol.Line)
	// PrintText writes one plain text line.
	PrintText(text string)
	// SetProgress replaces the progress message.
	SetProgress(message string)
	// Progress advances the progress indicator.
	Progress()
	// ClearProgress removes the progress display.
	ClearProgress()
}

// Options configures a Processor.
type Options struct {
	Verbosity Verbosity

	// Console receives echo, finalization output and progress updates; nil
	// discards all console output (report-only runs).
	Console Console

	// Report enables the JUnit document when non-nil; Done serializes it to
	// ReportOut. ReportPrefix is prepended to generated class names.
	Report       *junit.Builder
	ReportOut    io.Writer
	ReportPrefix string
	Hostname     string

	// LogDir, when set, receives one log file per section. The directory
	// must exist.
	LogDir string

	// Now is the clock; nil means time.Now. Injected so tests control
	// durations.
	Now func() time.Time
}

// Processor owns the run state. Single writer, no concurrent use: callers
// feeding it from multiple goroutines must serialize ProcessLine/Append.
type Processor struct {
	classifier *protocol.Classifier
	opts       Options
	now        func() time.Time

	implicit     *protocol.HeaderLine
	current      *section
	entries      []protocol.Line // verbatim log of the active section
	showProgress bool

	testCount       int
	testFailedCount int
}

// New creates a Processor. The classifier is injected so prefixed streams
// reuse one compiled grammar across commands.
func New(classifier *protocol.Classifier, opts Options) *Processor {
	if opts.Verbosity == 0 {
		opts.Verbosity = Normal
	}
	if opts.Console == nil {
		opts.Console = nopConsole{}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Processor{classifier: classifier, opts: opts, now: now}
}

// SetImplicitTitle installs the header synthesized if content arrives before
// any explicit header. Used at most once per installation: it is discarded
// as soon as an explicit header or any non-blank line is seen.
func (p *Processor) SetImplicitTitle(title, location string) {
	p.implicit = &protocol.HeaderLine{Title: title, Location: location}
}

// ShowProgress toggles the interactive progress indicator for non-verbose
// output. Meaningful only while supervising a live command.
func (p *Processor) ShowProgress(on bool) {
	p.showProgress = on
}

// ProcessLine classifies one raw line and appends it.
func (p *Processor) ProcessLine(raw string) {
	p.Append(p.classifier.Classify(raw))
}

// Append records one classified line: materializes the implicit header if
// needed, dispatches section state changes, buffers the verbatim text, and
// performs the verbosity-dependent echo. Echo and logging never affect
// aggregation state.
func (p *Processor) Append(line protocol.Line) {
	if p.implicit != nil {
		switch line.(type) {
		case protocol.HeaderLine:
			p.implicit = nil
		default:
			if line.String() != "" {
				header := *p.implicit
				p.implicit = nil
				p.openSection(&header)
				p.entries = append(p.entries, header)
			}
		}
	}

	switch v := line.(type) {
	case protocol.HeaderLine:
		p.openSection(&v)
	case protocol.CheckLine:
		p.addCheck(v)
	}

	p.entries = append(p.entries, line)

	if p.opts.Verbosity == Verbose {
		p.opts.Console.Print(line)
	} else if p.showProgress {
		p.opts.Console.Progress()
	}

	if p.current != nil && p.current.log != nil {
		fmt.Fprintln(p.current.log, logForm(line))
	}
}

// Done finalizes any open section, emits the report if enabled, prints the
// run summary, and reports whether every section passed.
func (p *Processor) Done() (bool, error) {
	p.openSection(nil)

	if p.opts.Report != nil && p.opts.ReportOut != nil {
		if _, err := p.opts.Report.Document().WriteTo(p.opts.ReportOut); err != nil {
			return false, fmt.Errorf("writing report: %w", err)
		}
	}

	p.opts.Console.PrintText(fmt.Sprintf("%d %s, %d %s.",
		p.testCount, plural("test", p.testCount),
		p.testFailedCount, plural("failure", p.testFailedCount)))

	return p.testFailedCount == 0, nil
}

// TestCount returns the number of finalized sections so far.
func (p *Processor) TestCount() int { return p.testCount }

// TestFailedCount returns the number of finalized sections with at least
// one failed check.
func (p *Processor) TestFailedCount() int { return p.testFailedCount }

func plural(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// nopConsole stands in when no console sink is configured.
type nopConsole struct{}

func (nopConsole) Print(protocol.Line) {}
func (nopConsole) PrintText(string)    {}
func (nopConsole) SetProgress(string)  {}
func (nopConsole) Progress()           {}
func (nopConsole) ClearProgress()      {}
