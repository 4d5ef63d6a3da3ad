package palette

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/marcus/reflect/internal/editor"
	"github.com/marcus/reflect/internal/styles"
)

// keyColumnWidth is the fixed width for the key column to ensure alignment.
// Fits "shift+tab" (9 chars) + KeyHint padding (2) + 1 buffer.
const keyColumnWidth = 12

const nameColumnWidth = 20

// View renders the command palette.
func (m Model) View() string {
	var b strings.Builder

	// Calculate width
	width := min(80, m.width-4)
	if width < 40 {
		width = 40
	}

	// Header with search input
	// Calculate content width (inside padding)
	contentWidth := width - 4

	promptPrefix := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render(">")
	escChip := styles.KeyHint.Render("esc")
	inputWidth := contentWidth - lipgloss.Width(promptPrefix) - lipgloss.Width(escChip) - 3
	paddedInput := lipgloss.NewStyle().Width(inputWidth).Render(m.textInput.View())
	b.WriteString(fmt.Sprintf("%s %s %s", promptPrefix, paddedInput, escChip))
	b.WriteString("\n")

	// Context badge
	b.WriteString(styles.BarChip.Render(m.activeContext))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", contentWidth))
	b.WriteString("\n")

	total := len(m.filtered)
	visibleEnd := min(m.offset+m.maxVisible, total)

	// Show scroll-up indicator if content above
	if m.offset > 0 {
		b.WriteString(styles.Muted.Render(fmt.Sprintf("  ↑ %d more above", m.offset)))
		b.WriteString("\n")
	}

	for i := m.offset; i < visibleEnd; i++ {
		b.WriteString(m.renderEntry(m.filtered[i], i == m.cursor, contentWidth))
		b.WriteString("\n")
	}

	// Show scroll-down indicator if content below
	if visibleEnd < total {
		b.WriteString(styles.Muted.Render(fmt.Sprintf("  ↓ %d more below", total-visibleEnd)))
		b.WriteString("\n")
	}

	// Empty state
	if total == 0 {
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render("No matching commands"))
		b.WriteString("\n")
	}

	content := strings.TrimRight(b.String(), "\n")
	return styles.ModalBox.Width(width).Render(content)
}

// renderEntry renders a single palette entry.
func (m Model) renderEntry(entry PaletteEntry, selected bool, maxWidth int) string {
	// Key column - render as pill/chip using KeyHint style
	keyStr := ""
	if entry.Key != "" {
		keyStr = styles.PaletteKey.Render(entry.Key)
	}
	if w := lipgloss.Width(keyStr); w < keyColumnWidth {
		keyStr += strings.Repeat(" ", keyColumnWidth-w)
	}

	nameStr := lipgloss.NewStyle().Width(nameColumnWidth).Render(highlightMatches(entry.Name, entry.MatchRanges))

	// Account for: 2 leading spaces + key column + name column + 2 separators
	descWidth := maxWidth - keyColumnWidth - nameColumnWidth - 4
	desc := entry.Description
	if descWidth > 3 {
		desc = runewidth.Truncate(desc, descWidth, "...")
	}
	descStr := styles.Subtitle.Render(desc)

	line := fmt.Sprintf("  %s %s %s", keyStr, nameStr, descStr)

	if selected {
		return styles.PaletteEntrySelected.Width(maxWidth).Render(line)
	}
	return styles.PaletteEntry.Width(maxWidth).Render(line)
}

// highlightMatches applies highlighting to matched characters.
func highlightMatches(text string, ranges []MatchRange) string {
	if len(ranges) == 0 {
		return text
	}

	var result strings.Builder
	lastEnd := 0

	for _, r := range ranges {
		if r.End > len(text) || r.Start < lastEnd {
			break
		}
		// Add non-matched part
		result.WriteString(text[lastEnd:r.Start])
		// Add matched part with highlighting
		result.WriteString(styles.FuzzyMatchChar.Render(text[r.Start:r.End]))
		lastEnd = r.End
	}

	// Add remaining text
	result.WriteString(text[lastEnd:])
	return result.String()
}

// RenderSlashMenu renders the slash command popup for the editor.
// cursor indexes cmds; query is the text typed after the slash.
func RenderSlashMenu(cmds []editor.Command, cursor int, query string, maxVisible, width int) string {
	var b strings.Builder

	header := styles.Muted.Render("/" + query)
	b.WriteString(header)
	b.WriteString("\n")

	if len(cmds) == 0 {
		b.WriteString(styles.Muted.Render("No matching commands"))
		return styles.ModalBox.Padding(0, 1).Width(width).Render(b.String())
	}

	offset := 0
	if maxVisible > 0 && cursor >= maxVisible {
		offset = cursor - maxVisible + 1
	}
	end := len(cmds)
	if maxVisible > 0 {
		end = min(offset+maxVisible, len(cmds))
	}

	inner := width - 4
	for i := offset; i < end; i++ {
		c := cmds[i]
		name := lipgloss.NewStyle().Width(12).Render(c.Name)
		desc := runewidth.Truncate(c.Description, max(0, inner-14), "...")
		line := fmt.Sprintf(" %s %s", name, styles.Subtitle.Render(desc))
		if i == cursor {
			line = styles.PaletteEntrySelected.Width(inner).Render(line)
		} else {
			line = styles.PaletteEntry.Width(inner).Render(line)
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if end < len(cmds) {
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render(fmt.Sprintf(" ↓ %d more", len(cmds)-end)))
	}

	return styles.ModalBox.Padding(0, 1).Width(width).Render(b.String())
}
