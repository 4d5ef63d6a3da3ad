// Package palette implements the command palette and the slash command menu.
package palette

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/reflect/internal/keymap"
)

const defaultMaxVisible = 12

// CommandSelectedMsg is sent when the user picks a palette entry.
type CommandSelectedMsg struct {
	CommandID string
}

// ClosedMsg is sent when the palette is dismissed without a selection.
type ClosedMsg struct{}

// MatchRange is a byte range of Name that matched the query.
type MatchRange struct {
	Start, End int
}

// PaletteEntry is one command shown in the palette.
type PaletteEntry struct {
	ID          string
	Name        string
	Description string
	Key         string
	MatchRanges []MatchRange
	score       int
}

// Model is the command palette state.
type Model struct {
	textInput     textinput.Model
	keymap        *keymap.Registry
	activeContext string

	entries  []PaletteEntry
	filtered []PaletteEntry

	cursor     int
	offset     int
	maxVisible int
	width      int
	height     int
}

// New creates a closed palette.
func New() Model {
	ti := textinput.New()
	ti.Placeholder = "Type a command..."
	ti.Prompt = ""
	ti.CharLimit = 64
	return Model{textInput: ti, maxVisible: defaultMaxVisible, width: 80}
}

// Open fills the palette from km's commands. Keys shown are the ones
// bound in context.
func (m *Model) Open(km *keymap.Registry, context string) tea.Cmd {
	m.keymap = km
	m.activeContext = context
	m.entries = m.entries[:0]
	for _, c := range km.Commands() {
		e := PaletteEntry{ID: c.ID, Name: c.Name, Description: c.Description}
		if keys := km.KeysForCommand(c.ID, context); len(keys) > 0 {
			e.Key = keys[0]
		}
		m.entries = append(m.entries, e)
	}
	m.textInput.SetValue("")
	m.refilter()
	return m.textInput.Focus()
}

// SetSize sets the available screen size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.maxVisible = defaultMaxVisible
	if height > 0 && height-10 < m.maxVisible {
		m.maxVisible = max(3, height-10)
	}
}

// Query returns the current filter text.
func (m Model) Query() string { return m.textInput.Value() }

// Filtered returns the entries matching the query, best first.
func (m Model) Filtered() []PaletteEntry { return m.filtered }

// Cursor returns the selected index into Filtered.
func (m Model) Cursor() int { return m.cursor }

// Update handles key input while the palette is open.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	cmdID := ""
	if m.keymap != nil {
		cmdID, _ = m.keymap.Lookup(key.String(), keymap.ContextPalette)
	}
	switch cmdID {
	case keymap.CmdCancel:
		m.textInput.Blur()
		return m, func() tea.Msg { return ClosedMsg{} }
	case keymap.CmdSelect:
		if m.cursor < len(m.filtered) {
			id := m.filtered[m.cursor].ID
			m.textInput.Blur()
			return m, func() tea.Msg { return CommandSelectedMsg{CommandID: id} }
		}
		return m, nil
	case keymap.CmdCursorUp:
		m.moveCursor(-1)
		return m, nil
	case keymap.CmdCursorDown:
		m.moveCursor(1)
		return m, nil
	}

	prev := m.textInput.Value()
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	if m.textInput.Value() != prev {
		m.refilter()
	}
	return m, cmd
}

func (m *Model) moveCursor(delta int) {
	if len(m.filtered) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.filtered)) % len(m.filtered)
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.maxVisible {
		m.offset = m.cursor - m.maxVisible + 1
	}
}

func (m *Model) refilter() {
	m.filtered = FilterEntries(m.entries, m.textInput.Value())
	m.cursor = 0
	m.offset = 0
}

// FilterEntries returns entries matching query, best match first.
// Name substrings beat description substrings, which beat a fuzzy
// subsequence match on the name.
func FilterEntries(entries []PaletteEntry, query string) []PaletteEntry {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]PaletteEntry, 0, len(entries))
	for _, e := range entries {
		e.MatchRanges = nil
		if q == "" {
			out = append(out, e)
			continue
		}
		name := strings.ToLower(e.Name)
		switch {
		case strings.HasPrefix(name, q):
			e.score = 0
			e.MatchRanges = []MatchRange{{0, len(q)}}
		case strings.Contains(name, q):
			i := strings.Index(name, q)
			e.score = 1
			e.MatchRanges = []MatchRange{{i, i + len(q)}}
		case strings.Contains(strings.ToLower(e.Description), q):
			e.score = 2
		default:
			ranges, ok := fuzzyMatch(name, q)
			if !ok {
				continue
			}
			e.score = 3
			e.MatchRanges = ranges
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].score < out[j].score })
	return out
}

// fuzzyMatch matches q as a subsequence of s, merging adjacent hits into ranges.
func fuzzyMatch(s, q string) ([]MatchRange, bool) {
	var ranges []MatchRange
	qi := 0
	qr := []rune(q)
	for i, r := range s {
		if qi == len(qr) {
			break
		}
		if r != qr[qi] {
			continue
		}
		end := i + len(string(r))
		if n := len(ranges); n > 0 && ranges[n-1].End == i {
			ranges[n-1].End = end
		} else {
			ranges = append(ranges, MatchRange{i, end})
		}
		qi++
	}
	return ranges, qi == len(qr)
}
