package modal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/reflect/internal/styles"
)

// hintLine fits inside DefaultWidth without wrapping.
const hintLine = "Tab switch · Enter confirm · Esc cancel"

type renderedSection struct {
	content    string
	height     int
	focusables []FocusableInfo
}

// renderSections renders every section at contentWidth and collects the
// focusable ids in order.
func (m *Modal) renderSections(contentWidth int) ([]renderedSection, []string) {
	focusID := m.currentFocusID()
	rendered := make([]renderedSection, 0, len(m.sections))
	var focusIDs []string

	for _, s := range m.sections {
		res := s.Render(contentWidth, focusID)
		rendered = append(rendered, renderedSection{
			content:    res.Content,
			height:     measureHeight(res.Content),
			focusables: res.Focusables,
		})
		for _, f := range res.Focusables {
			focusIDs = append(focusIDs, f.ID)
		}
	}
	return rendered, focusIDs
}

func (m *Modal) buildLayout(screenW, screenH int) string {
	maxWidth := max(1, screenW-4)
	minWidth := min(MinModalWidth, maxWidth)
	modalWidth := clamp(m.width, minWidth, maxWidth)
	contentWidth := max(1, modalWidth-ModalPadding)

	headerLines := 0
	if m.title != "" {
		headerLines = 2
	}
	footerLines := 0
	if m.showHints {
		footerLines++
	}
	if m.customFooter != "" {
		footerLines += strings.Count(m.customFooter, "\n") + 1
	}
	maxViewportHeight := max(1, desiredModalInnerHeight(screenH)-headerLines-footerLines)

	rendered, focusIDs := m.renderSections(contentWidth)
	if len(m.focusIDs) == 0 && len(focusIDs) > 0 {
		// First render: focus is only known now, so draw again with the
		// first focusable focused.
		m.focusIDs = focusIDs
		m.focusIdx = 0
		rendered, focusIDs = m.renderSections(contentWidth)
	}
	m.focusIDs = focusIDs
	if len(m.focusIDs) > 0 && m.focusIdx >= len(m.focusIDs) {
		m.focusIdx = 0
	}

	visible := filterVisible(rendered)
	contentHeight := totalHeight(visible)

	// Leave a column for the scrollbar when content overflows.
	needsScrollbar := contentHeight > maxViewportHeight
	if needsScrollbar && contentWidth > 1 {
		rendered, focusIDs = m.renderSections(contentWidth - 1)
		m.focusIDs = focusIDs
		visible = filterVisible(rendered)
		contentHeight = totalHeight(visible)
		needsScrollbar = contentHeight > maxViewportHeight
	}

	m.focusPositions = make(map[string]focusablePos, len(focusIDs))
	y := 0
	for _, r := range visible {
		for _, f := range r.focusables {
			m.focusPositions[f.ID] = focusablePos{y: y + f.OffsetY, height: f.Height}
		}
		y += r.height
	}

	parts := make([]string, 0, len(visible))
	for _, r := range visible {
		parts = append(parts, r.content)
	}
	fullContent := strings.Join(parts, "\n")

	viewportHeight := maxViewportHeight
	pad := true
	if contentHeight <= maxViewportHeight {
		viewportHeight = max(1, contentHeight)
		pad = false
	}
	m.lastViewportH = viewportHeight
	m.scrollOffset = clamp(m.scrollOffset, 0, max(0, contentHeight-viewportHeight))

	viewport := sliceLines(fullContent, m.scrollOffset, viewportHeight, pad)
	if needsScrollbar {
		viewport = lipgloss.JoinHorizontal(lipgloss.Top, viewport,
			renderScrollbar(contentHeight, m.scrollOffset, viewportHeight))
	}

	var inner strings.Builder
	if m.title != "" {
		inner.WriteString(renderTitleLine(m.title, m.variant))
		inner.WriteString("\n")
	}
	inner.WriteString(viewport)
	if m.showHints {
		inner.WriteString("\n")
		inner.WriteString(styles.Muted.Render(hintLine))
	}
	if m.customFooter != "" {
		inner.WriteString("\n")
		inner.WriteString(m.customFooter)
	}

	return m.modalStyle(modalWidth).Render(inner.String())
}

func filterVisible(sections []renderedSection) []renderedSection {
	visible := make([]renderedSection, 0, len(sections))
	for _, r := range sections {
		if r.content != "" || r.height > 0 {
			visible = append(visible, r)
		}
	}
	return visible
}

func totalHeight(sections []renderedSection) int {
	h := 0
	for _, r := range sections {
		h += r.height
	}
	return h
}

// renderScrollbar draws a one-column track with a proportional thumb.
func renderScrollbar(total, offset, height int) string {
	if height < 1 || total < 1 {
		return ""
	}
	thumb := clamp(height*height/total, 1, height)
	maxOffset := max(1, total-height)
	pos := clamp(offset*(height-thumb)/maxOffset, 0, height-thumb)

	track := lipgloss.NewStyle().Foreground(styles.TextSubtle).Render("│")
	bar := lipgloss.NewStyle().Foreground(styles.TextMuted).Render("┃")

	lines := make([]string, height)
	for i := range height {
		if i >= pos && i < pos+thumb {
			lines[i] = bar
		} else {
			lines[i] = track
		}
	}
	return strings.Join(lines, "\n")
}

func variantColor(v Variant) lipgloss.Color {
	switch v {
	case VariantDanger:
		return styles.Error
	case VariantWarning:
		return styles.Warning
	case VariantInfo:
		return styles.Info
	}
	return styles.Primary
}

func (m *Modal) modalStyle(width int) lipgloss.Style {
	return styles.ModalBox.
		BorderForeground(variantColor(m.variant)).
		Width(width)
}

func renderTitleLine(title string, variant Variant) string {
	style := styles.ModalTitle
	if variant != VariantDefault {
		style = style.Foreground(variantColor(variant))
	}
	return style.Render(title)
}

// desiredModalInnerHeight leaves room for the border and a margin.
func desiredModalInnerHeight(screenH int) int {
	return max(1, screenH-6)
}

// sliceLines returns height lines of content starting at offset,
// optionally padded with blank lines.
func sliceLines(content string, offset, height int, padToHeight bool) string {
	lines := strings.Split(content, "\n")
	if offset >= len(lines) {
		offset = max(0, len(lines)-1)
	}
	lines = lines[offset:]
	if len(lines) > height {
		lines = lines[:height]
	}
	if padToHeight {
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	return strings.Join(lines, "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
