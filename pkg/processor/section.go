package processor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wvtest/wvtool/pkg/junit"
	"github.com/wvtest/wvtool/pkg/protocol"
)

// section is the state of the one open test group. At most one exists at a
// time; it is discarded at finalization.
type section struct {
	header    protocol.HeaderLine
	start     time.Time
	lastCheck time.Time // zero until the first check

	checkCount       int
	checkFailedCount int

	log *os.File
}

var logNameSanitizer = strings.NewReplacer(" ", "_", "/", "_")

// openSection finalizes the open section if any, then opens a new one for
// header. A nil header (end of input) only finalizes.
func (p *Processor) openSection(header *protocol.HeaderLine) {
	if p.current != nil {
		p.finalizeSection()
	}
	if header == nil {
		return
	}

	s := &section{header: *header, start: p.now()}

	if p.showProgress && p.opts.Verbosity < Verbose {
		p.opts.Console.SetProgress(header.AsCheck("").String())
	}

	if p.opts.LogDir != "" {
		name := fmt.Sprintf("%04d-%s-%s.log",
			p.testCount+1,
			logNameSanitizer.Replace(header.Location),
			logNameSanitizer.Replace(strings.ToLower(header.Title)))
		f, err := os.Create(filepath.Join(p.opts.LogDir, name))
		if err != nil {
			logrus.WithError(err).Warnf("cannot open section log %s", name)
		} else {
			s.log = f
		}
	}

	p.current = s
}

// addCheck applies one check line to the open section: counters, timing,
// and the eventual report case.
func (p *Processor) addCheck(check protocol.CheckLine) {
	s := p.current
	if s == nil {
		// No section and no implicit header to materialize; the line is
		// still captured verbatim by Append.
		return
	}

	s.checkCount++
	if !check.OK() {
		s.checkFailedCount++
	}

	now := p.now()
	prev := s.start
	if !s.lastCheck.IsZero() {
		prev = s.lastCheck
	}
	s.lastCheck = now

	if p.opts.Report != nil {
		var failure *junit.Failure
		if !check.OK() {
			failure = &junit.Failure{Kind: "WvTest check", Message: check.Description}
		}
		p.opts.Report.AddCase(junit.Testcase{
			Classname: junit.Classname(p.opts.ReportPrefix, s.header.Location, s.header.Title),
			Name:      check.Description,
			Seconds:   now.Sub(prev).Seconds(),
			Failure:   failure,
		})
	}
}

// finalizeSection snapshots the report record, prints per the verbosity and
// outcome, folds the section into the run counters, and resets state. The
// section contributes to testFailedCount exactly once, here.
func (p *Processor) finalizeSection() {
	s := p.current
	now := p.now()

	if p.opts.Report != nil {
		p.opts.Report.CloseSuite(junit.Testsuite{
			Tests:     s.checkCount,
			Failures:  s.checkFailedCount,
			Errors:    0,
			Hostname:  p.opts.Hostname,
			Name:      junit.Classname(p.opts.ReportPrefix, s.header.Location, s.header.Title),
			Seconds:   now.Sub(s.start).Seconds(),
			Timestamp: now,
			SystemOut: p.plainText(),
		})
	}

	if s.checkFailedCount > 0 {
		if p.showProgress && p.opts.Verbosity < Verbose {
			p.opts.Console.ClearProgress()
		}
		switch {
		case p.opts.Verbosity == Normal:
			for _, entry := range p.entries {
				p.opts.Console.Print(entry)
			}
		case p.opts.Verbosity < Normal:
			p.opts.Console.Print(s.header.AsCheck("FAILED"))
		}
		p.testFailedCount++
	} else if p.opts.Verbosity <= Normal {
		if p.showProgress && p.opts.Verbosity < Verbose {
			p.opts.Console.ClearProgress()
		}
		p.opts.Console.Print(s.header.AsCheck("ok"))
	}
	p.testCount++

	p.entries = p.entries[:0]
	if s.log != nil {
		if err := s.log.Close(); err != nil {
			logrus.WithError(err).Warn("closing section log")
		}
	}
	p.current = nil
}

// plainText renders the captured section verbatim, one line per entry, with
// a trailing newline.
func (p *Processor) plainText() string {
	var sb strings.Builder
	for _, entry := range p.entries {
		sb.WriteString(entry.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// logForm renders a line for the per-section log file: no styling, check
// results dot-aligned to column 80.
func logForm(line protocol.Line) string {
	check, ok := line.(protocol.CheckLine)
	if !ok {
		return line.String()
	}
	text := check.Prefix + "! " + check.Description + " "
	if pad := 80 - len(text); pad > 0 {
		text += strings.Repeat(".", pad)
	}
	return text + " " + check.Result
}
