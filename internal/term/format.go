package term

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/wvtest/wvtool/pkg/protocol"
)

// resultSpace is the room reserved at the right edge for the result token.
const resultSpace = 10

// FormatLine renders one classified line with theme styling. Check results
// are dot-aligned to the right edge; headers are emphasized; everything
// else passes through verbatim.
func FormatLine(theme Theme, line protocol.Line, width int) string {
	switch v := line.(type) {
	case protocol.HeaderLine:
		return theme.Header.Render(v.String())
	case protocol.CheckLine:
		return formatCheck(theme, v, width)
	default:
		return line.String()
	}
}

// formatCheck pads the description with dots so the result token lands
// resultSpace columns before the edge of the last occupied row.
func formatCheck(theme Theme, check protocol.CheckLine, width int) string {
	if width <= 0 {
		width = 80
	}
	text := check.Prefix + "! " + check.Description + " "

	w := runewidth.StringWidth(text)
	rows := (w + resultSpace + width - 1) / width
	if pad := rows*width - resultSpace - w; pad > 0 {
		text += strings.Repeat(".", pad)
	}

	style := theme.Fail
	if check.OK() {
		style = theme.Pass
	}
	return text + " " + style.Render(check.Result)
}
