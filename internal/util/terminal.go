package util

import (
	"fmt"
	"os"

	"github.com/chzyer/readline"
)

// MakeHyperlink wraps displayText in an OSC 8 hyperlink to url. Terminals without
// OSC 8 support show displayText alone.
func MakeHyperlink(url, displayText string) string {
	// BEL terminator; ST (\033\\) is less widely supported.
	return fmt.Sprintf("\033]8;;%s\a%s\033]8;;\a", url, displayText)
}

// TruncateText truncates s to maxLen runes, appending "…" if truncated.
func TruncateText(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return "…"
	}
	return string(runes[:maxLen-1]) + "…"
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return readline.IsTerminal(int(f.Fd()))
}
