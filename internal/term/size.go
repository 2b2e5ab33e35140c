package term

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Width returns the terminal width for w, or fallback when w is not a
// terminal or the size cannot be read.
func Width(w io.Writer, fallback int) int {
	if fallback <= 0 {
		fallback = 80
	}
	f, ok := w.(*os.File)
	if !ok {
		return fallback
	}
	tw, _, err := term.GetSize(int(f.Fd()))
	if err != nil || tw <= 0 {
		return fallback
	}
	return tw
}
