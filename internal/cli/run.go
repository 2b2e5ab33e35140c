package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/wvtest/wvtool/internal/supervise"
)

func newRunCommand(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run -- command [args...]",
		Short: "Run and supervise a command producing WvTest output",
		Long: `Run spawns the command in its own process group with stdout and stderr
merged, streams its output through the result processor, and guards it with
a watchdog: when the command produces no output for --timeout seconds it is
terminated and the timeout recorded as a failed check. A non-zero exit or a
fatal signal also counts as one failed check.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, f, true)
			if err != nil {
				return err
			}
			if err := supervise.Run(args, s.proc, superviseOptions(s)); err != nil {
				_ = s.finish()
				return err
			}
			return s.finish()
		},
	}
}

func newRunAllCommand(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "runall script [script...]",
		Short: "Run multiple scripts/binaries through one report",
		Long: `Runall executes each script in turn under the same supervision as run,
feeding all of their output into a single report with one summary and, when
requested, one JUnit XML document.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, f, true)
			if err != nil {
				return err
			}
			for _, script := range args {
				if err := supervise.Run([]string{script}, s.proc, superviseOptions(s)); err != nil {
					_ = s.finish()
					return err
				}
			}
			return s.finish()
		},
	}
}

func superviseOptions(s *session) supervise.Options {
	return supervise.Options{
		Timeout: time.Duration(s.cfg.Timeout) * time.Second,
		Log:     s.log,
	}
}
