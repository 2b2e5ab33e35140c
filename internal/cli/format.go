package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newFormatCommand(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "format [file...]",
		Short: "Reformat, highlight and summarize WvTest protocol output",
		Long: `Format replays previously captured WvTest output: files named on the
command line, or stdin when none are given. Output preceding the first test
header is collected under an implicit "Preamble" section.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, f, false)
			if err != nil {
				return err
			}
			if err := formatInputs(cmd, s, args); err != nil {
				_ = s.finish()
				return err
			}
			return s.finish()
		},
	}
}

func formatInputs(cmd *cobra.Command, s *session, files []string) error {
	if len(files) == 0 {
		s.proc.SetImplicitTitle("Preamble", "stdin")
		return feedLines(s, cmd.InOrStdin())
	}
	for _, name := range files {
		file, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		s.proc.SetImplicitTitle("Preamble", name)
		err = feedLines(s, file)
		_ = file.Close()
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
	}
	return nil
}

func feedLines(s *session, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), 1024*1024)
	for scanner.Scan() {
		s.proc.ProcessLine(scanner.Text())
	}
	return scanner.Err()
}
