package strings

import (
	"strings"
)

// DefaultCellMaxLen is the default width of a value cell in table output.
const DefaultCellMaxLen = 48

// MinTruncateLen is the smallest width TruncateCell accepts. Anything below
// leaves no room for a character plus the ellipsis.
const MinTruncateLen = 4

const ellipsis = "..."

// TruncateCell turns s into a single line of at most maxLen runes. Runs of
// whitespace, newlines included, collapse into one space; a value that is
// still too long is cut and ends with "...". maxLen is clamped to
// MinTruncateLen.
func TruncateCell(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-len(ellipsis)]) + ellipsis
	}
	return s
}

// FirstLine returns the first non-blank line of s, trimmed, with an
// ellipsis when further lines follow. Callback bodies are summarized this
// way.
func FirstLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	first := strings.TrimSpace(lines[0])
	if len(lines) > 1 {
		return first + " " + ellipsis
	}
	return first
}
