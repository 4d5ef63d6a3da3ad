package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/marcus/reflect/internal/styles"
)

// ListItem is one selectable row of a list section.
type ListItem struct {
	ID     string
	Label  string
	Detail string // muted text shown after the label
}

// ListOption configures a list section.
type ListOption func(*listSection)

type listSection struct {
	id           string
	items        []ListItem
	selectedIdx  *int
	maxVisible   int
	scrollOffset int
}

// List creates a list section. selectedIdx is owned by the caller so it
// can read the selection after the modal closes; it may be nil.
// The list is a single focusable: j/k and the arrows move the selection,
// Enter returns the selected item's id.
func List(id string, items []ListItem, selectedIdx *int, opts ...ListOption) Section {
	s := &listSection{
		id:          id,
		items:       items,
		selectedIdx: selectedIdx,
		maxVisible:  5,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithMaxVisible sets how many rows are shown at once.
func WithMaxVisible(n int) ListOption {
	return func(s *listSection) {
		if n > 0 {
			s.maxVisible = n
		}
	}
}

func (s *listSection) Render(contentWidth int, focusID string) RenderedSection {
	if len(s.items) == 0 {
		return RenderedSection{Content: styles.Muted.Render("(no items)")}
	}

	visibleCount := min(s.maxVisible, len(s.items))
	selected := 0
	if s.selectedIdx != nil {
		selected = *s.selectedIdx
	}
	if selected < s.scrollOffset {
		s.scrollOffset = selected
	} else if selected >= s.scrollOffset+visibleCount {
		s.scrollOffset = selected - visibleCount + 1
	}
	s.scrollOffset = clamp(s.scrollOffset, 0, max(0, len(s.items)-visibleCount))

	focused := focusID == s.id
	labelWidth := max(1, contentWidth-2)

	var sb strings.Builder
	for i := 0; i < visibleCount; i++ {
		idx := s.scrollOffset + i
		item := s.items[idx]
		isSelected := s.selectedIdx != nil && *s.selectedIdx == idx

		style := styles.ListItemNormal
		cursor := "  "
		if isSelected {
			if focused {
				style = styles.ListItemFocused
				cursor = styles.ListCursor.Render("▸ ")
			} else {
				style = styles.ListItemSelected
				cursor = styles.ListCursor.Render("> ")
			}
		}

		name := runewidth.Truncate(item.Label, labelWidth, "…")
		detail := ""
		if item.Detail != "" {
			if room := labelWidth - runewidth.StringWidth(name); room > 2 {
				detail = runewidth.Truncate("  "+item.Detail, room, "…")
			}
		}

		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(cursor)
		sb.WriteString(style.Render(name))
		if detail != "" {
			sb.WriteString(styles.Muted.Render(detail))
		}
	}

	focusables := []FocusableInfo{{
		ID:     s.id,
		Width:  contentWidth,
		Height: visibleCount,
	}}

	content := sb.String()
	if s.scrollOffset > 0 {
		content = styles.Muted.Render("↑ more above") + "\n" + content
		focusables[0].OffsetY++
	}
	if s.scrollOffset+visibleCount < len(s.items) {
		content += "\n" + styles.Muted.Render("↓ more below")
	}

	return RenderedSection{Content: content, Focusables: focusables}
}

func (s *listSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if focusID != s.id || s.selectedIdx == nil || len(s.items) == 0 {
		return "", nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return "", nil
	}

	switch key.String() {
	case "up", "k":
		if *s.selectedIdx > 0 {
			*s.selectedIdx--
		}
	case "down", "j":
		if *s.selectedIdx < len(s.items)-1 {
			*s.selectedIdx++
		}
	case "home", "g":
		*s.selectedIdx = 0
	case "end", "G":
		*s.selectedIdx = len(s.items) - 1
	case "enter":
		if *s.selectedIdx >= 0 && *s.selectedIdx < len(s.items) {
			return s.items[*s.selectedIdx].ID, nil
		}
	}
	return "", nil
}
