package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wvtest/wvtool/internal/config"
	"github.com/wvtest/wvtool/internal/term"
	"github.com/wvtest/wvtool/pkg/junit"
	"github.com/wvtest/wvtool/pkg/processor"
	"github.com/wvtest/wvtool/pkg/protocol"
)

// console is what a session needs from its terminal sink.
type console interface {
	processor.Console
	Close() error
}

// session bundles everything a subcommand needs to feed one processor:
// resolved config, logger, the chosen console and the optional report file.
type session struct {
	cfg      *config.Resolved
	log      *logrus.Logger
	console  console
	proc     *processor.Processor
	junitOut *os.File
}

// newSession resolves the configuration and builds the processing pipeline.
// interactive selects the live progress console when stdout is a terminal;
// format passes false since replaying a file needs no progress display.
func newSession(cmd *cobra.Command, f *rootFlags, interactive bool) (*session, error) {
	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())

	cfg, err := config.Resolve(cliFlags(cmd, f), log)
	if err != nil {
		return nil, err
	}
	if cfg.Debug {
		log.SetLevel(logrus.DebugLevel)
	}

	out := cmd.OutOrStdout()
	theme := term.DefaultTheme()
	switch {
	case cfg.NoColor:
		theme = term.MonoTheme()
	case cfg.ForceColor:
		term.ForceColor()
	case !term.IsTTY(out):
		theme = term.MonoTheme()
	}
	width := cfg.Width
	if width <= 0 {
		width = term.Width(out, 0)
	}

	var sink console
	if interactive && term.IsTTY(out) && cfg.Verbosity != "verbose" {
		sink = term.NewLive(out, theme, width)
	} else {
		sink = term.NewPrinter(out, theme, width)
	}

	classifier, err := protocol.NewClassifier(cfg.Prefix)
	if err != nil {
		_ = sink.Close()
		return nil, fmt.Errorf("compile protocol prefix %q: %w", cfg.Prefix, err)
	}

	opts := processor.Options{
		Verbosity:    verbosityLevel(cfg.Verbosity),
		Console:      sink,
		ReportPrefix: cfg.JUnitPrefix,
		LogDir:       cfg.LogDir,
	}

	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
			_ = sink.Close()
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}

	var junitOut *os.File
	if cfg.JUnitXML != "" {
		junitOut, err = os.Create(cfg.JUnitXML)
		if err != nil {
			_ = sink.Close()
			return nil, fmt.Errorf("create JUnit XML file: %w", err)
		}
		opts.Report = junit.NewBuilder()
		opts.ReportOut = junitOut
		opts.Hostname, _ = os.Hostname()
	}

	return &session{
		cfg:      cfg,
		log:      log,
		console:  sink,
		proc:     processor.New(classifier, opts),
		junitOut: junitOut,
	}, nil
}

// finish finalizes the run: closes the open section, writes the report,
// prints the summary and maps failed checks to ErrTestsFailed.
func (s *session) finish() error {
	ok, err := s.proc.Done()
	if cerr := s.console.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if s.junitOut != nil {
		if cerr := s.junitOut.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if err != nil {
		return err
	}
	if !ok {
		return ErrTestsFailed
	}
	return nil
}

func verbosityLevel(s string) processor.Verbosity {
	switch s {
	case "summary":
		return processor.Summary
	case "verbose":
		return processor.Verbose
	default:
		return processor.Normal
	}
}
