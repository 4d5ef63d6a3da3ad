package app

import (
	"github.com/marcus/reflect/internal/state"
)

const (
	headerHeight = 1
	footerHeight = 1
	minWidth     = 60
	minHeight    = 16

	// title and meta rows above the textarea, status row below it
	editorChromeRows = 3
)

// contentHeight is the height of the panel row between header and footer.
func (m *Model) contentHeight() int {
	h := m.height - headerHeight
	if m.cfg.UI.ShowFooter {
		h -= footerHeight
	}
	return max(0, h)
}

// paneWidths returns the outer widths of the sidebar, editor and preview
// panels. A hidden panel has width 0.
func (m *Model) paneWidths() (sidebar, editorW, previewW int) {
	sidebar = clampInt(m.sidebarWidth, minSidebarWidth, m.maxSidebarWidth())
	rest := max(0, m.width-sidebar)
	switch m.previewMode {
	case state.PreviewHidden:
		return sidebar, rest, 0
	case state.PreviewOnly:
		return sidebar, 0, rest
	}
	editorW = rest / 2
	return sidebar, editorW, rest - editorW
}

// resizeWidgets fits the inputs, textarea and preview to the layout.
func (m *Model) resizeWidgets() {
	if !m.ready {
		return
	}
	sw, ew, pw := m.paneWidths()
	inner := max(1, m.contentHeight()-2)

	m.filterInput.Width = max(1, sw-4-3)

	if ew > 0 {
		w := max(1, ew-4)
		m.titleInput.Width = max(1, w-1)
		m.searchInput.Width = max(1, w-len(m.searchInput.Prompt)-12)
		h := inner - editorChromeRows - m.slashHeight()
		if m.searching {
			h--
		}
		m.textarea.SetWidth(w)
		m.textarea.SetHeight(max(1, h))
	}

	if pw > 0 {
		w := max(1, pw-4)
		if w != m.preview.Width {
			m.previewFor = 0
		}
		m.preview.Width = w
		m.preview.Height = max(1, inner-1)
	} else {
		m.preview.Width = 0
	}
}
