// Package junit builds the JUnit-compatible XML report emitted at the end
// of a run. Records are immutable snapshots; serialization happens once,
// in WriteTo.
package junit

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Failure describes one failed check within a case.
type Failure struct {
	Kind    string
	Message string
	Text    string
}

// Testcase is one check: name is the check description, Seconds the time
// since the previous check (or the section start).
type Testcase struct {
	Classname string
	Name      string
	Seconds   float64
	Failure   *Failure
}

// Testsuite is the snapshot of one finalized test section.
type Testsuite struct {
	Tests     int
	Failures  int
	Errors    int
	Hostname  string
	Name      string
	Seconds   float64
	Timestamp time.Time
	Cases     []Testcase
	SystemOut string
}

// Testsuites is the document root: an ordered collection of suites.
type Testsuites struct {
	Suites []Testsuite
}

// Classname derives a suite/case class name from a section location and
// title. Dots in the location are flattened so the location/title boundary
// stays unambiguous in dotted-name consumers.
func Classname(prefix, location, title string) string {
	return prefix + strings.ReplaceAll(location, ".", "_") + "." + title
}

// Builder accumulates cases for the open section and finalized suites for
// the whole run.
type Builder struct {
	pending []Testcase
	suites  []Testsuite
}

func NewBuilder() *Builder {
	return &Builder{}
}

// AddCase records one case for the suite currently being built.
func (b *Builder) AddCase(c Testcase) {
	b.pending = append(b.pending, c)
}

// CloseSuite finalizes the open suite: the pending cases are attached and
// the pending list is reset.
func (b *Builder) CloseSuite(s Testsuite) {
	s.Cases = b.pending
	b.pending = nil
	b.suites = append(b.suites, s)
}

// Document returns the assembled report. Pure transform, no I/O.
func (b *Builder) Document() Testsuites {
	return Testsuites{Suites: b.suites}
}

// WriteTo serializes the document. Timestamps are emitted at second
// precision, sub-second part truncated.
func (d Testsuites) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	sb.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\" ?>\n")
	sb.WriteString("<testsuites>\n")
	for _, s := range d.Suites {
		writeSuite(&sb, s)
	}
	sb.WriteString("</testsuites>\n")

	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

func writeSuite(sb *strings.Builder, s Testsuite) {
	fmt.Fprintf(sb,
		"<testsuite tests=\"%d\" errors=\"%d\" failures=\"%d\" hostname=\"%s\" name=\"%s\" time=\"%.3f\" timestamp=\"%s\">\n",
		s.Tests, s.Errors, s.Failures,
		escapeAttr(s.Hostname), escapeAttr(s.Name),
		s.Seconds, s.Timestamp.Format("2006-01-02T15:04:05"))
	sb.WriteString("<properties>\n</properties>\n")
	for _, c := range s.Cases {
		writeCase(sb, c)
	}
	fmt.Fprintf(sb, "<system-out>%s</system-out>\n", escapeText(s.SystemOut))
	sb.WriteString("</testsuite>\n")
}

func writeCase(sb *strings.Builder, c Testcase) {
	fmt.Fprintf(sb, "<testcase classname=\"%s\" name=\"%s\" time=\"%.3f\">\n",
		escapeAttr(c.Classname), escapeAttr(c.Name), c.Seconds)
	if f := c.Failure; f != nil {
		fmt.Fprintf(sb, "<failure type=\"%s\" message=\"%s\">%s</failure>\n",
			escapeAttr(f.Kind), escapeAttr(f.Message), escapeText(f.Text))
	}
	sb.WriteString("</testcase>\n")
}
