package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Pad right-pads s with spaces to the given display width. East Asian wide
// characters count as two cells.
func Pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// NonEmptyOrDash returns "-" for empty/whitespace strings.
func NonEmptyOrDash(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "-"
	}
	return value
}

// TruncateWithEllipsis cuts value to at most max display cells, ending in
// "..." when anything was removed.
func TruncateWithEllipsis(value string, max int) string {
	if max <= 0 {
		return ""
	}
	value = strings.TrimSpace(value)
	if lipgloss.Width(value) <= max {
		return value
	}
	limit := max - 3
	suffix := "..."
	if max <= 3 {
		limit, suffix = max, ""
	}
	var b strings.Builder
	used := 0
	for _, r := range value {
		rw := lipgloss.Width(string(r))
		if used+rw > limit {
			break
		}
		b.WriteRune(r)
		used += rw
	}
	return b.String() + suffix
}
