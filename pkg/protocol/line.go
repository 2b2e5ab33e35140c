// Package protocol classifies raw test output into the WvTest line grammar.
package protocol

import (
	"fmt"
	"strings"
)

// ResultOK is the only result token that denotes a passing check.
const ResultOK = "ok"

// Line is one classified line of test output. String renders the line back
// in its wire form, without any terminal styling.
type Line interface {
	String() string
}

// PlainLine is the catch-all: any text that matches no other kind.
type PlainLine struct {
	Text string
}

func (l PlainLine) String() string { return l.Text }

// HeaderLine opens a named test section: `Testing "<title>" in <location>:`.
type HeaderLine struct {
	Prefix   string
	Title    string
	Location string
}

func (l HeaderLine) String() string {
	return fmt.Sprintf("%sTesting \"%s\" in %s:", l.Prefix, l.Title, l.Location)
}

// AsCheck collapses the header into a one-line check with the given result
// token, used for the per-section summary line.
func (l HeaderLine) AsCheck(result string) CheckLine {
	return CheckLine{Description: l.Location + "  " + l.Title, Result: result}
}

// CheckLine is one assertion outcome: `! <description> <result>`.
type CheckLine struct {
	Prefix      string
	Description string
	Result      string
}

func (l CheckLine) String() string {
	return fmt.Sprintf("%s! %s %s", l.Prefix, l.Description, l.Result)
}

// OK reports whether the result token denotes success.
func (l CheckLine) OK() bool { return l.Result == ResultOK }

// NewCheck builds a synthesized check line. Trailing spaces and dots are
// stripped from the description so padding dots don't stack up.
func NewCheck(description, result string) CheckLine {
	return CheckLine{
		Description: strings.TrimRight(description, " ."),
		Result:      result,
	}
}

// TagLine is an out-of-band marker: `wvtest: <payload>`. Passed through
// verbatim, never counted.
type TagLine struct {
	Prefix  string
	Payload string
}

func (l TagLine) String() string { return fmt.Sprintf("%swvtest: %s", l.Prefix, l.Payload) }
