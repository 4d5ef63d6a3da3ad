// Package ui holds the shared dialog builders and screen compositing
// helpers used by the app.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/reflect/internal/styles"
)

// dimStyle renders background content behind dialogs. Existing ANSI codes
// are stripped first since SGR 2 (faint) does not combine reliably with
// colored text.
func dimStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.TextSubtle)
}

func maxLineWidth(lines []string) int {
	w := 0
	for _, line := range lines {
		w = max(w, ansi.StringWidth(line))
	}
	return w
}

// dimLine strips ANSI codes and dims the text.
func dimLine(s string) string {
	return dimStyle().Render(ansi.Strip(s))
}

// compositeRow places modalLine over bgLine at column modalStartX, with the
// background on either side dimmed.
func compositeRow(bgLine, modalLine string, modalStartX, modalWidth, totalWidth int) string {
	var result strings.Builder

	stripped := ansi.Strip(bgLine)
	bgWidth := ansi.StringWidth(stripped)

	if modalStartX > 0 {
		leftSeg := ansi.Truncate(stripped, modalStartX, "")
		leftWidth := ansi.StringWidth(leftSeg)
		result.WriteString(dimStyle().Render(leftSeg))
		if leftWidth < modalStartX {
			result.WriteString(strings.Repeat(" ", modalStartX-leftWidth))
		}
	}

	result.WriteString(modalLine)

	rightStartX := modalStartX + modalWidth
	if rightStartX < totalWidth && bgWidth > rightStartX {
		rightSeg := ansi.Cut(stripped, rightStartX, bgWidth)
		result.WriteString(dimStyle().Render(rightSeg))
	}

	return result.String()
}

// screenLines splits background into rows, padded to height.
func screenLines(background string, height int) []string {
	lines := strings.Split(background, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

// OverlayModal centers modal over a dimmed copy of background. The
// result has exactly height rows.
func OverlayModal(background, modal string, width, height int) string {
	bgLines := screenLines(background, height)
	modalLines := strings.Split(modal, "\n")

	modalWidth := maxLineWidth(modalLines)
	startX := max(0, (width-modalWidth)/2)
	startY := max(0, (height-len(modalLines))/2)

	result := make([]string, height)
	for y := range result {
		if i := y - startY; i >= 0 && i < len(modalLines) {
			result[y] = compositeRow(bgLines[y], modalLines[i], startX, modalWidth, width)
		} else {
			result[y] = dimLine(bgLines[y])
		}
	}
	return strings.Join(result, "\n")
}

// OverlayBottomRight draws box over the bottom-right corner of
// background without dimming it. Used for toasts.
func OverlayBottomRight(background, box string, width, height int) string {
	bgLines := screenLines(background, height)
	boxLines := strings.Split(box, "\n")
	boxWidth := maxLineWidth(boxLines)
	startX := max(0, width-boxWidth-1)
	startY := max(0, height-len(boxLines)-1)

	for i, line := range boxLines {
		y := startY + i
		if y >= len(bgLines) {
			break
		}
		bg := bgLines[y]
		left := ansi.Truncate(bg, startX, "")
		if w := ansi.StringWidth(left); w < startX {
			left += strings.Repeat(" ", startX-w)
		}
		right := ""
		if end := startX + boxWidth; ansi.StringWidth(bg) > end {
			right = ansi.Cut(bg, end, ansi.StringWidth(bg))
		}
		bgLines[y] = left + line + right
	}
	return strings.Join(bgLines, "\n")
}
