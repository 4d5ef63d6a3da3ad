package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/marcus/reflect/internal/styles"
)

// KeyHints renders alternating key/description pairs as a hint line,
// e.g. KeyHints("enter", "open", "esc", "back").
func KeyHints(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, styles.KeyHint.Render(pairs[i])+" "+styles.Muted.Render(pairs[i+1]))
	}
	return strings.Join(parts, "  ")
}

// Truncate shortens s to width display cells, adding an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// PadRight pads s with spaces to width display cells.
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}
