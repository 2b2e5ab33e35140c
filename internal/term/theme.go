// Package term renders classified protocol lines to a terminal: styling,
// result-column alignment, and the live progress display for supervised
// runs.
package term

import "github.com/charmbracelet/lipgloss"

// Theme defines the styles applied to rendered protocol lines.
type Theme struct {
	Name    string
	Header  lipgloss.Style // section header lines
	Pass    lipgloss.Style // `ok` result tokens
	Fail    lipgloss.Style // any other result token
	Muted   lipgloss.Style // progress spinner
}

// DefaultTheme returns the colored theme: bold headers, bold green/red
// result tokens.
func DefaultTheme() Theme {
	return Theme{
		Name:   "default",
		Header: lipgloss.NewStyle().Bold(true),
		Pass:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")), // bright green
		Fail:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),  // bright red
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("242")),           // gray
	}
}

// MonoTheme returns an unstyled theme for --no-color, NO_COLOR and
// non-terminal output.
func MonoTheme() Theme {
	return Theme{
		Name:   "mono",
		Header: lipgloss.NewStyle(),
		Pass:   lipgloss.NewStyle(),
		Fail:   lipgloss.NewStyle(),
		Muted:  lipgloss.NewStyle(),
	}
}
