//go:build !unix

package supervise

import (
	"fmt"
	"os"
	"os/exec"
)

// setProcessGroup is a no-op on non-Unix platforms.
func setProcessGroup(cmd *exec.Cmd) {
	// No process group support on this platform
}

// killProcessGroup sends a signal directly to the process on non-Unix platforms.
func killProcessGroup(cmd *exec.Cmd, sig os.Signal) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Signal(sig)
}

// killProcessGroupHard kills the process directly on non-Unix platforms.
func killProcessGroupHard(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}

// terminateSignal is the signal the watchdog uses to stop a hung command.
func terminateSignal() os.Signal {
	return os.Kill
}

// getInterruptSignals returns the signals forwarded to the child.
func getInterruptSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}

// exitDetail describes an unsuccessful exit for the synthesized check.
func exitDetail(exitErr *exec.ExitError) string {
	return fmt.Sprintf("returned non-zero exit code %d", exitErr.ExitCode())
}
