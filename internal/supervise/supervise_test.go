//go:build unix

package supervise

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wvtest/wvtool/pkg/processor"
	"github.com/wvtest/wvtool/pkg/protocol"
)

type recordingConsole struct {
	lines []string
}

func (c *recordingConsole) Print(line protocol.Line) { c.lines = append(c.lines, line.String()) }
func (c *recordingConsole) PrintText(text string)    { c.lines = append(c.lines, text) }
func (c *recordingConsole) SetProgress(string)       {}
func (c *recordingConsole) Progress()                {}
func (c *recordingConsole) ClearProgress()           {}

func (c *recordingConsole) all() string { return strings.Join(c.lines, "\n") }

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newRunProcessor(t *testing.T) (*processor.Processor, *recordingConsole) {
	t.Helper()
	classifier, err := protocol.NewClassifier("")
	require.NoError(t, err)
	console := &recordingConsole{}
	p := processor.New(classifier, processor.Options{Console: console})
	return p, console
}

func TestRun_When_CommandEmitsChecks_Processes_Them(t *testing.T) {
	p, console := newRunProcessor(t)

	err := Run([]string{"sh", "-c",
		`echo 'Testing "one" in t/one.t:'; echo '! first check ok'`,
	}, p, Options{Log: quietLogger()})
	require.NoError(t, err)

	ok, err := p.Done()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, p.TestCount())
	assert.Equal(t, 0, p.TestFailedCount())
	assert.Contains(t, console.all(), "first check")
}

func TestRun_When_OutputPrecedesHeader_UsesPreambleSection(t *testing.T) {
	p, _ := newRunProcessor(t)

	err := Run([]string{"sh", "-c", "echo warming up; echo '! late check ok'"},
		p, Options{Log: quietLogger()})
	require.NoError(t, err)

	ok, err := p.Done()
	require.NoError(t, err)
	assert.True(t, ok)
	// The preamble section plus its check count as one test.
	assert.Equal(t, 1, p.TestCount())
}

func TestRun_When_ExitCodeNonZero_SynthesizesFailedCheck(t *testing.T) {
	p, console := newRunProcessor(t)

	err := Run([]string{"sh", "-c", "exit 3"}, p, Options{Log: quietLogger()})
	require.NoError(t, err)

	ok, err := p.Done()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, p.TestFailedCount())
	assert.Contains(t, console.all(), "returned non-zero exit code 3")
	assert.Contains(t, console.all(), "FAILED")
}

func TestRun_When_CommandKilledBySignal_ReportsSignal(t *testing.T) {
	p, console := newRunProcessor(t)

	err := Run([]string{"sh", "-c", "kill -TERM $$"}, p, Options{Log: quietLogger()})
	require.NoError(t, err)

	ok, err := p.Done()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, console.all(), "terminated by signal 15")
}

func TestRun_When_CommandGoesQuiet_WatchdogFires(t *testing.T) {
	p, console := newRunProcessor(t)

	start := time.Now()
	err := Run([]string{"sh", "-c", "sleep 30"}, p, Options{
		Timeout: 200 * time.Millisecond,
		Log:     quietLogger(),
	})
	require.NoError(t, err)
	require.Less(t, time.Since(start), 10*time.Second, "watchdog should have killed the command")

	ok, err := p.Done()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, console.all(), "Alarm timed out!")
	assert.Contains(t, console.all(), "terminated by signal")
}

func TestRun_When_CommandMissing_ReturnsError(t *testing.T) {
	t.Parallel()
	p, _ := newRunProcessor(t)

	err := Run([]string{"wvtool-no-such-binary"}, p, Options{Log: quietLogger()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start")
}

func TestRun_When_CommandEmpty_ReturnsError(t *testing.T) {
	t.Parallel()
	p, _ := newRunProcessor(t)

	err := Run(nil, p, Options{Log: quietLogger()})
	require.Error(t, err)
}
