// Package cli wires the cobra commands: a root carrying the shared report
// flags and the run, runall and format subcommands feeding one processor.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wvtest/wvtool/internal/config"
	"github.com/wvtest/wvtool/internal/version"
)

// ErrTestsFailed marks a run whose checks failed; the summary line already
// told the user, so Execute maps it to the exit code silently.
var ErrTestsFailed = errors.New("tests failed")

type rootFlags struct {
	verbose     bool
	summary     bool
	width       int
	timeout     int
	junitXML    string
	junitPrefix string
	logDir      string
	color       bool
	noColor     bool
	debug       bool
}

// NewRootCommand creates the root cobra command for wvtool.
func NewRootCommand() *cobra.Command {
	f := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "wvtool",
		Short: "Versatile WvTest protocol tool",
		Long: `wvtool runs, supervises and reformats programs that speak the WvTest
output protocol. It colorizes check results, folds passing sections into
single lines, counts tests and failures, and can export JUnit compatible
XML for CI systems.`,
		Version:       fmt.Sprintf("%s (%s, %s)", version.Version, version.CommitHash, version.BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "do not hide output of successful tests")
	pf.BoolVarP(&f.summary, "summary", "s", false, "print just one line per testing section")
	pf.IntVarP(&f.width, "width", "w", 0, "override terminal width")
	pf.IntVar(&f.timeout, "timeout", config.DefaultTimeout, "timeout in seconds for any test output")
	pf.StringVar(&f.junitXML, "junit-xml", "", "write JUnit compatible XML to `FILE`")
	pf.StringVar(&f.junitPrefix, "junit-prefix", "", "prefix to prepend to generated class names")
	pf.StringVar(&f.logDir, "logdir", "", "store per-section test logs in `DIR`")
	pf.BoolVar(&f.color, "color", false, "force color output")
	pf.BoolVar(&f.noColor, "no-color", false, "disable color output")
	pf.BoolVar(&f.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(newRunCommand(f))
	cmd.AddCommand(newRunAllCommand(f))
	cmd.AddCommand(newFormatCommand(f))

	return cmd
}

// cliFlags converts the parsed cobra flags into the config layer's merge
// input, marking which ones the user actually set.
func cliFlags(cmd *cobra.Command, f *rootFlags) config.CliFlags {
	changed := cmd.Flags().Changed
	flags := config.CliFlags{
		Timeout:     f.timeout,
		NoColor:     f.noColor,
		ForceColor:  f.color,
		Width:       f.width,
		LogDir:      f.logDir,
		JUnitXML:    f.junitXML,
		JUnitPrefix: f.junitPrefix,
		Debug:       f.debug,

		TimeoutSet:    changed("timeout"),
		NoColorSet:    changed("no-color"),
		ForceColorSet: changed("color"),
		WidthSet:      changed("width"),
		DebugSet:      changed("debug"),
	}
	switch {
	case f.verbose:
		flags.Verbosity = "verbose"
	case f.summary:
		flags.Verbosity = "summary"
	}
	return flags
}

// Execute runs the CLI and returns the process exit code: 0 on success,
// 1 when tests failed, 2 for usage and infrastructure errors.
func Execute() int {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		if errors.Is(err, ErrTestsFailed) {
			return 1
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}
