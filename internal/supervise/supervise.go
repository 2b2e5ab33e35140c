// Package supervise runs a test command under a watchdog and feeds its
// merged output into a result processor. A command that goes quiet for too
// long, exits non-zero, or dies on a signal is recorded as a failed check
// rather than silently dropped.
package supervise

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wvtest/wvtool/pkg/processor"
	"github.com/wvtest/wvtool/pkg/protocol"
)

const toolName = "wvtool"

// killGracePeriod is how long a signalled process group gets before SIGKILL.
const killGracePeriod = 2 * time.Second

// Options control a supervised run.
type Options struct {
	// Timeout is the watchdog interval: when the command produces no output
	// for this long, a synthesized FAILED check is recorded and the process
	// group is terminated. Zero disables the watchdog.
	Timeout time.Duration

	// MaxLineLength bounds a single output line; longer lines abort the scan.
	MaxLineLength int

	Log *logrus.Logger
}

// Run executes command with stdout and stderr merged, feeding every output
// line to p. Output that precedes the first test header lands in an implicit
// "Preamble of <cmd>" section. SIGINT and SIGTERM are forwarded to the
// child's process group so interactive interrupts reach the whole test tree.
//
// A non-zero exit or a fatal signal is recorded on p as one synthesized
// FAILED check, not returned as an error; Run returns an error only for
// infrastructure failures (command not found, pipe setup, wait).
func Run(command []string, p *processor.Processor, opts Options) error {
	if len(command) == 0 {
		return errors.New("supervise: empty command")
	}
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	maxLine := opts.MaxLineLength
	if maxLine <= 0 {
		maxLine = 1024 * 1024
	}

	cmdLine := strings.Join(command, " ")
	p.ShowProgress(true)
	p.SetImplicitTitle("Preamble of "+cmdLine, toolName)

	cmd := exec.Command(command[0], command[1:]...)
	cmd.Env = os.Environ()
	setProcessGroup(cmd)

	// One pipe carries both streams so check lines interleave with the
	// diagnostics printed around them, in the order the command wrote them.
	pr, pw, err := os.Pipe()
	if err != nil {
		return fmt.Errorf("supervise: create output pipe: %w", err)
	}
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		_ = pr.Close()
		_ = pw.Close()
		return fmt.Errorf("supervise: start %q: %w", cmdLine, err)
	}
	// The child owns its copy of the write end; ours must go so the reader
	// sees EOF when the child exits.
	_ = pw.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, getInterruptSignals()...)
	defer signal.Stop(sigChan)

	lines := make(chan string)
	scanErrCh := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(pr)
		scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLine)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		scanErrCh <- scanner.Err()
	}()

	var timer *time.Timer
	var watchdog <-chan time.Time
	if opts.Timeout > 0 {
		timer = time.NewTimer(opts.Timeout)
		defer timer.Stop()
		watchdog = timer.C
	}

	var killTimer *time.Timer
	scheduleKill := func() {
		if killTimer == nil {
			killTimer = time.AfterFunc(killGracePeriod, func() {
				_ = killProcessGroupHard(cmd)
			})
		}
	}
	defer func() {
		if killTimer != nil {
			killTimer.Stop()
		}
	}()

read:
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				break read
			}
			if timer != nil {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(opts.Timeout)
			}
			p.ProcessLine(line)
		case <-watchdog:
			watchdog = nil
			secs := int(opts.Timeout / time.Second)
			p.ProcessLine(fmt.Sprintf(
				"! %s: Alarm timed out!  No test output for %d seconds.  FAILED",
				toolName, secs))
			log.WithField("timeout", opts.Timeout).Warn("no output from command, terminating it")
			if err := killProcessGroup(cmd, terminateSignal()); err != nil {
				log.WithError(err).Debug("terminate process group")
			}
			scheduleKill()
		case sig := <-sigChan:
			log.WithField("signal", sig).Debug("forwarding signal to process group")
			if err := killProcessGroup(cmd, sig); err != nil {
				log.WithError(err).Debug("forward signal")
			}
			scheduleKill()
		}
	}
	if scanErr := <-scanErrCh; scanErr != nil {
		log.WithError(scanErr).Warn("reading command output")
	}
	_ = pr.Close()

	waitErr := cmd.Wait()
	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return fmt.Errorf("supervise: wait for %q: %w", cmdLine, waitErr)
		}
		desc := fmt.Sprintf("%s: Program '%s' %s", toolName, cmdLine, exitDetail(exitErr))
		p.Append(protocol.NewCheck(desc, "FAILED"))
	}
	return nil
}
