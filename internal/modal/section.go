package modal

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/reflect/internal/styles"
)

// Section is one block of modal content.
type Section interface {
	// Render draws the section at contentWidth. focusID is the currently
	// focused element so the section can highlight it.
	Render(contentWidth int, focusID string) RenderedSection
	// Update handles a message while focusID is focused. A non-empty
	// action is returned to the modal's caller.
	Update(msg tea.Msg, focusID string) (string, tea.Cmd)
}

// RenderedSection is the output of Section.Render.
type RenderedSection struct {
	Content    string
	Focusables []FocusableInfo
}

// FocusableInfo locates a focusable element relative to its section.
type FocusableInfo struct {
	ID      string
	OffsetX int
	OffsetY int
	Width   int
	Height  int
}

// measureHeight counts lines, ignoring trailing newlines.
func measureHeight(content string) int {
	content = strings.TrimRight(content, "\n")
	if content == "" {
		return 0
	}
	return strings.Count(content, "\n") + 1
}

// Text

type textSection struct {
	text string
}

// Text renders wrapped body text.
func Text(s string) Section {
	return &textSection{text: s}
}

func (s *textSection) Render(contentWidth int, _ string) RenderedSection {
	return RenderedSection{Content: styles.Body.Width(contentWidth).Render(s.text)}
}

func (s *textSection) Update(tea.Msg, string) (string, tea.Cmd) { return "", nil }

// Spacer

type spacerSection struct{}

// Spacer renders one blank line.
func Spacer() Section { return spacerSection{} }

func (spacerSection) Render(int, string) RenderedSection {
	return RenderedSection{Content: " "}
}

func (spacerSection) Update(tea.Msg, string) (string, tea.Cmd) { return "", nil }

// When

type whenSection struct {
	cond  func() bool
	inner Section
}

// When renders inner only while cond returns true.
func When(cond func() bool, inner Section) Section {
	return &whenSection{cond: cond, inner: inner}
}

func (s *whenSection) Render(contentWidth int, focusID string) RenderedSection {
	if !s.cond() {
		return RenderedSection{}
	}
	return s.inner.Render(contentWidth, focusID)
}

func (s *whenSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if !s.cond() {
		return "", nil
	}
	return s.inner.Update(msg, focusID)
}

// Buttons

// ButtonDef describes one button.
type ButtonDef struct {
	Label  string
	ID     string
	danger bool
}

// ButtonOption configures a ButtonDef.
type ButtonOption func(*ButtonDef)

// BtnDanger renders the button with the destructive style.
func BtnDanger() ButtonOption {
	return func(b *ButtonDef) { b.danger = true }
}

// Btn creates a button definition.
func Btn(label, id string, opts ...ButtonOption) ButtonDef {
	b := ButtonDef{Label: label, ID: id}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

type buttonsSection struct {
	buttons []ButtonDef
}

// Buttons renders a row of buttons, each focusable.
func Buttons(buttons ...ButtonDef) Section {
	return &buttonsSection{buttons: buttons}
}

func (s *buttonsSection) Render(_ int, focusID string) RenderedSection {
	var sb strings.Builder
	focusables := make([]FocusableInfo, 0, len(s.buttons))
	x := 0
	for i, b := range s.buttons {
		if i > 0 {
			sb.WriteString("  ")
			x += 2
		}
		var style lipgloss.Style
		switch {
		case b.danger && b.ID == focusID:
			style = styles.ButtonDangerFocused
		case b.danger:
			style = styles.ButtonDanger
		case b.ID == focusID:
			style = styles.ButtonFocused
		default:
			style = styles.Button
		}
		rendered := style.Render(b.Label)
		w := ansi.StringWidth(rendered)
		sb.WriteString(rendered)
		focusables = append(focusables, FocusableInfo{ID: b.ID, OffsetX: x, Width: w, Height: 1})
		x += w
	}
	return RenderedSection{Content: sb.String(), Focusables: focusables}
}

func (s *buttonsSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || key.String() != "enter" {
		return "", nil
	}
	for _, b := range s.buttons {
		if b.ID == focusID {
			return b.ID, nil
		}
	}
	return "", nil
}

// Input

type inputSection struct {
	id    string
	label string
	input *textinput.Model
}

// Input renders a single-line text input.
func Input(id string, ti *textinput.Model) Section {
	return &inputSection{id: id, input: ti}
}

// InputWithLabel renders a label line above a text input.
func InputWithLabel(id, label string, ti *textinput.Model) Section {
	return &inputSection{id: id, label: label, input: ti}
}

func (s *inputSection) Render(contentWidth int, focusID string) RenderedSection {
	if focusID == s.id {
		s.input.Focus()
	} else {
		s.input.Blur()
	}
	s.input.Width = max(1, contentWidth-ansi.StringWidth(s.input.Prompt)-1)

	offsetY := 0
	var sb strings.Builder
	if s.label != "" {
		sb.WriteString(styles.Subtitle.Render(s.label))
		sb.WriteString("\n")
		offsetY = 1
	}
	sb.WriteString(s.input.View())
	return RenderedSection{
		Content: sb.String(),
		Focusables: []FocusableInfo{{
			ID:      s.id,
			OffsetY: offsetY,
			Width:   contentWidth,
			Height:  1,
		}},
	}
}

func (s *inputSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if focusID != s.id {
		return "", nil
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		return "", nil
	}
	var cmd tea.Cmd
	*s.input, cmd = s.input.Update(msg)
	return "", cmd
}
