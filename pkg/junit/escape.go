package junit

import (
	"fmt"
	"strings"
)

// The encoding/xml escaper replaces characters outside the XML range with
// U+FFFD, but report consumers expect numeric references for control
// characters and no NUL at all, so the escaping here is explicit.

// escapeText escapes a string for text-node position. NUL is stripped
// (forbidden in XML even as a reference); control characters other than
// tab, newline and carriage return become numeric references.
func escapeText(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r == 0:
			// dropped entirely
		case r == '&':
			sb.WriteString("&amp;")
		case r == '<':
			sb.WriteString("&lt;")
		case r == '>':
			sb.WriteString("&gt;")
		case r < 0x20 && r != '\t' && r != '\n' && r != '\r':
			fmt.Fprintf(&sb, "&#x%X;", r)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// escapeAttr escapes a string for attribute position: like escapeText, plus
// the double quote used as the attribute delimiter.
func escapeAttr(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r == 0:
			// dropped entirely
		case r == '&':
			sb.WriteString("&amp;")
		case r == '<':
			sb.WriteString("&lt;")
		case r == '>':
			sb.WriteString("&gt;")
		case r == '"':
			sb.WriteString("&quot;")
		case r < 0x20 && r != '\t' && r != '\n' && r != '\r':
			fmt.Fprintf(&sb, "&#x%X;", r)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
