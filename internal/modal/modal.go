// Package modal builds keyboard-driven dialogs out of declarative sections.
package modal

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Modal is a dialog assembled from sections. Focusable elements are
// discovered on Render, so Render must run before HandleKey.
type Modal struct {
	title         string
	variant       Variant
	width         int
	sections      []Section
	showHints     bool
	primaryAction string
	customFooter  string

	focusIdx     int
	focusIDs     []string
	scrollOffset int

	focusPositions map[string]focusablePos
	lastViewportH  int
}

// focusablePos is a focusable element's line span within the full content.
type focusablePos struct {
	y      int
	height int
}

// New creates a Modal with the given title and options.
func New(title string, opts ...Option) *Modal {
	m := &Modal{
		title:     title,
		variant:   VariantDefault,
		width:     DefaultWidth,
		showHints: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddSection appends a section. Returns the modal for chaining.
func (m *Modal) AddSection(s Section) *Modal {
	m.sections = append(m.sections, s)
	return m
}

// Title returns the modal title.
func (m *Modal) Title() string { return m.title }

// Render lays out the modal for a screen of the given size.
func (m *Modal) Render(screenW, screenH int) string {
	return m.buildLayout(screenW, screenH)
}

// HandleKey processes keyboard input and returns the triggered action:
// "cancel" for Esc, the focused element's action for Enter, or "".
func (m *Modal) HandleKey(msg tea.KeyMsg) (action string, cmd tea.Cmd) {
	switch msg.String() {
	case "esc":
		return "cancel", nil

	case "tab":
		m.cycleFocus(1)
		return "", nil

	case "shift+tab":
		m.cycleFocus(-1)
		return "", nil

	case "enter":
		focusID := m.currentFocusID()
		if focusID == "" {
			return "", nil
		}
		action, cmd = m.routeToFocusedSection(msg)
		if action != "" {
			return action, cmd
		}
		if m.primaryAction != "" {
			return m.primaryAction, cmd
		}
		return focusID, cmd

	default:
		return m.routeToFocusedSection(msg)
	}
}

// Update forwards non-key messages (cursor blink and the like) to the
// focused section.
func (m *Modal) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		_, cmd := m.HandleKey(key)
		return cmd
	}
	_, cmd := m.routeToFocusedSection(msg)
	return cmd
}

// ScrollBy adjusts the scroll offset; clamped on the next Render.
func (m *Modal) ScrollBy(delta int) { m.scrollOffset += delta }

// SetFocus focuses the element with the given id, if present.
func (m *Modal) SetFocus(id string) {
	for i, fid := range m.focusIDs {
		if fid == id {
			m.focusIdx = i
			return
		}
	}
}

// FocusedID returns the focused element id.
func (m *Modal) FocusedID() string {
	return m.currentFocusID()
}

// Reset clears focus and scroll.
func (m *Modal) Reset() {
	m.focusIdx = 0
	m.scrollOffset = 0
}

func (m *Modal) currentFocusID() string {
	if len(m.focusIDs) == 0 {
		return ""
	}
	if m.focusIdx < 0 || m.focusIdx >= len(m.focusIDs) {
		return m.focusIDs[0]
	}
	return m.focusIDs[m.focusIdx]
}

func (m *Modal) cycleFocus(delta int) {
	if len(m.focusIDs) == 0 {
		return
	}
	m.focusIdx = (m.focusIdx + delta + len(m.focusIDs)) % len(m.focusIDs)
	m.scrollToFocused()
}

// scrollToFocused keeps the focused element inside the viewport.
func (m *Modal) scrollToFocused() {
	id := m.currentFocusID()
	if id == "" || m.focusPositions == nil || m.lastViewportH <= 0 {
		return
	}
	pos, ok := m.focusPositions[id]
	if !ok {
		return
	}
	if pos.y < m.scrollOffset {
		m.scrollOffset = pos.y
	}
	if pos.y+pos.height > m.scrollOffset+m.lastViewportH {
		m.scrollOffset = pos.y + pos.height - m.lastViewportH
	}
}

func (m *Modal) routeToFocusedSection(msg tea.Msg) (string, tea.Cmd) {
	focusID := m.currentFocusID()
	if focusID == "" {
		return "", nil
	}
	for _, section := range m.sections {
		action, cmd := section.Update(msg, focusID)
		if action != "" || cmd != nil {
			return action, cmd
		}
	}
	return "", nil
}
