package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustClassifier(t *testing.T, prefix string) *Classifier {
	t.Helper()
	c, err := NewClassifier(prefix)
	require.NoError(t, err)
	return c
}

func TestClassify_CheckLine_CapturesDescriptionAndResult(t *testing.T) {
	t.Parallel()
	c := mustClassifier(t, "")

	line := c.Classify("! opening the database ok")
	check, ok := line.(CheckLine)
	require.True(t, ok, "expected CheckLine, got %T", line)
	assert.Equal(t, "opening the database", check.Description)
	assert.Equal(t, "ok", check.Result)
	assert.True(t, check.OK())
}

func TestClassify_CheckLine_NonOKTokenIsFailure(t *testing.T) {
	t.Parallel()
	c := mustClassifier(t, "")

	check := c.Classify("! something broke FAILED").(CheckLine)
	assert.Equal(t, "FAILED", check.Result)
	assert.False(t, check.OK())
}

func TestClassify_HeaderLine_CapturesTitleAndLocation(t *testing.T) {
	t.Parallel()
	c := mustClassifier(t, "")

	line := c.Classify(`Testing "copy on write" in t/fs.t:`)
	header, ok := line.(HeaderLine)
	require.True(t, ok, "expected HeaderLine, got %T", line)
	assert.Equal(t, "copy on write", header.Title)
	assert.Equal(t, "t/fs.t", header.Location)
}

func TestClassify_TagLine_CapturesPayload(t *testing.T) {
	t.Parallel()
	c := mustClassifier(t, "")

	tag := c.Classify("wvtest: ignore this marker").(TagLine)
	assert.Equal(t, "ignore this marker", tag.Payload)
}

func TestClassify_AnythingElse_IsPlain(t *testing.T) {
	t.Parallel()
	c := mustClassifier(t, "")

	for _, raw := range []string{
		"",
		"some random output",
		"Testing without quotes in here",
	} {
		line := c.Classify(raw)
		_, isPlain := line.(PlainLine)
		assert.True(t, isPlain, "%q should be plain, got %T", raw, line)
	}
}

func TestClassify_OrderIsCheckBeforeHeaderBeforeTag(t *testing.T) {
	t.Parallel()
	c := mustClassifier(t, "")

	// A line matching the check grammar must classify as a check even when a
	// later pattern could also match it.
	line := c.Classify(`! Testing "x" in y: ok`)
	_, isCheck := line.(CheckLine)
	assert.True(t, isCheck, "check pattern must win, got %T", line)
}

func TestClassify_IsIdempotent(t *testing.T) {
	t.Parallel()
	c := mustClassifier(t, "")

	raw := "! repeatable classification ok"
	first := c.Classify(raw)
	second := c.Classify(raw)
	assert.Equal(t, first, second)
}

func TestClassify_TrailingWhitespaceIsTrimmed(t *testing.T) {
	t.Parallel()
	c := mustClassifier(t, "")

	check := c.Classify("! trailing space ok \r\n").(CheckLine)
	assert.Equal(t, "trailing space", check.Description)
	assert.Equal(t, "ok", check.Result)
}

func TestClassify_PrefixAppliesToAllStructuredKinds(t *testing.T) {
	t.Parallel()
	c := mustClassifier(t, `\[sub\] `)

	check, ok := c.Classify("[sub] ! prefixed check ok").(CheckLine)
	require.True(t, ok)
	assert.Equal(t, "[sub] ", check.Prefix)
	assert.Equal(t, "prefixed check", check.Description)

	header, ok := c.Classify(`[sub] Testing "a" in b:`).(HeaderLine)
	require.True(t, ok)
	assert.Equal(t, "[sub] ", header.Prefix)

	tag, ok := c.Classify("[sub] wvtest: note").(TagLine)
	require.True(t, ok)
	assert.Equal(t, "[sub] ", tag.Prefix)

	// Unprefixed structured lines no longer match and fall through to plain.
	_, isPlain := c.Classify("! unprefixed check ok").(PlainLine)
	assert.True(t, isPlain)
}

func TestNewClassifier_BadPrefix_ReturnsError(t *testing.T) {
	t.Parallel()
	_, err := NewClassifier("(unclosed")
	assert.Error(t, err)
}

func TestLine_String_RoundTripsWireForm(t *testing.T) {
	t.Parallel()
	c := mustClassifier(t, "")

	for _, raw := range []string{
		"! check one ok",
		`Testing "foo" in bar:`,
		"wvtest: marker",
		"plain text line",
	} {
		assert.Equal(t, raw, c.Classify(raw).String())
	}
}

func TestNewCheck_StripsTrailingDotsAndSpaces(t *testing.T) {
	t.Parallel()
	check := NewCheck("waiting for socket... ", "FAILED")
	assert.Equal(t, "waiting for socket", check.Description)
	assert.False(t, check.OK())
}

func TestHeaderLine_AsCheck_JoinsLocationAndTitle(t *testing.T) {
	t.Parallel()
	h := HeaderLine{Title: "foo", Location: "bar"}
	check := h.AsCheck("ok")
	assert.Equal(t, "bar  foo", check.Description)
	assert.Equal(t, "ok", check.Result)
}
