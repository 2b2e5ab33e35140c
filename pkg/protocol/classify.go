package protocol

import (
	"fmt"
	"regexp"
	"strings"
)

// Classifier assigns each raw line to exactly one Line kind.
//
// Match order is a contract: checks first, then headers, then tags, then the
// plain catch-all. Check and header patterns are the most specific (trailing
// result token, `Testing ... in ...:` suffix) and would be shadowed by the
// catch-all in any other order.
type Classifier struct {
	check  *regexp.Regexp
	header *regexp.Regexp
	tag    *regexp.Regexp
}

// NewClassifier compiles the line grammar. prefix is an optional regexp
// fragment matched (and captured) before the protocol marker on check,
// header and tag lines; pass "" for unprefixed streams.
func NewClassifier(prefix string) (*Classifier, error) {
	check, err := regexp.Compile(`^(` + prefix + `)!\s*(.*?)\s+(\S+)$`)
	if err != nil {
		return nil, fmt.Errorf("compiling check pattern: %w", err)
	}
	header, err := regexp.Compile(`^(` + prefix + `)Testing "(.*)" in (.*):$`)
	if err != nil {
		return nil, fmt.Errorf("compiling header pattern: %w", err)
	}
	tag, err := regexp.Compile(`^(` + prefix + `)wvtest:\s*(.*)$`)
	if err != nil {
		return nil, fmt.Errorf("compiling tag pattern: %w", err)
	}
	return &Classifier{check: check, header: header, tag: tag}, nil
}

// Classify maps one raw line to its Line kind. It trims trailing whitespace
// first and always returns a value: PlainLine matches anything.
func (c *Classifier) Classify(raw string) Line {
	raw = strings.TrimRight(raw, " \t\r\n")

	if m := c.check.FindStringSubmatch(raw); m != nil {
		return CheckLine{Prefix: m[1], Description: m[2], Result: m[3]}
	}
	if m := c.header.FindStringSubmatch(raw); m != nil {
		return HeaderLine{Prefix: m[1], Title: m[2], Location: m[3]}
	}
	if m := c.tag.FindStringSubmatch(raw); m != nil {
		return TagLine{Prefix: m[1], Payload: m[2]}
	}
	return PlainLine{Text: raw}
}
