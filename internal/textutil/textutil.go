// Package textutil prepares untrusted text for display in the terminal.
package textutil

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// Sanitize makes arbitrary text safe to interpolate into rendered output.
// Escape sequences are removed, line breaks and tabs become single spaces
// and any other control characters are dropped.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	s = ansi.Strip(s)

	var b strings.Builder
	b.Grow(len(s))
	lastSpace := false
	for _, r := range s {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		case unicode.IsControl(r):
			// dropped
		default:
			b.WriteRune(r)
			lastSpace = r == ' '
		}
	}
	return strings.TrimSpace(b.String())
}

// Hyperlink wraps text in an OSC 8 hyperlink. Terminals without support
// render the text alone. The URL is sanitised; text is expected to be.
func Hyperlink(url, text string) string {
	url = Sanitize(url)
	if url == "" {
		return text
	}
	return ansi.SetHyperlink(url) + text + ansi.ResetHyperlink()
}

// Truncate shortens s to width cells with an ellipsis, aware of escape sequences.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
