package textutil

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "holiday.jpg", "holiday.jpg"},
		{"empty", "", ""},
		{"colour escape", "\x1b[31mred\x1b[0m", "red"},
		{"osc title", "a\x1b]0;pwned\x07b", "ab"},
		{"newlines collapse", "line one\n\nline two", "line one line two"},
		{"bell and backspace", "x\a\by", "xy"},
		{"unicode kept", "Strand – Küste", "Strand – Küste"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestHyperlink(t *testing.T) {
	got := Hyperlink("https://example.com/item", "open")
	if !strings.Contains(got, "https://example.com/item") {
		t.Errorf("hyperlink missing url: %q", got)
	}
	if !strings.Contains(got, "open") {
		t.Errorf("hyperlink missing text: %q", got)
	}

	if got := Hyperlink("", "open"); got != "open" {
		t.Errorf("empty url should return text, got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	got := Truncate("a rather long file name.jpg", 10)
	if !strings.HasSuffix(got, "…") {
		t.Errorf("expected ellipsis, got %q", got)
	}
	if got := Truncate("anything", 0); got != "" {
		t.Errorf("zero width should be empty, got %q", got)
	}
}
