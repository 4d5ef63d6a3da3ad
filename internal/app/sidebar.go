package app

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/marcus/reflect/internal/notes"
	"github.com/marcus/reflect/internal/state"
	"github.com/marcus/reflect/internal/styles"
	"github.com/marcus/reflect/internal/ui"
)

type itemKind int

const (
	itemNote itemKind = iota
	itemFolder
)

// sidebarItem is one row of the sidebar.
type sidebarItem struct {
	kind      itemKind
	noteID    string
	folderID  string // owning folder for notes, own id for folders
	title     string
	tags      []string
	count     int // notes shown under a folder
	collapsed bool
	depth     int
}

// buildSidebarItems lays out unfiled notes first, then each folder
// followed by its notes. While searching, folders without matches are
// hidden and collapsed folders are shown expanded.
func buildSidebarItems(visible []notes.Note, folders []notes.Folder, searching bool, collapsed func(string) bool) []sidebarItem {
	byFolder := make(map[string][]notes.Note, len(folders))
	live := make(map[string]bool, len(folders))
	for _, f := range folders {
		live[f.ID] = true
	}

	var items []sidebarItem
	for _, n := range visible {
		if n.FolderID != nil && live[*n.FolderID] {
			byFolder[*n.FolderID] = append(byFolder[*n.FolderID], n)
			continue
		}
		items = append(items, noteItem(n, "", 0))
	}

	for _, f := range folders {
		children := byFolder[f.ID]
		if searching && len(children) == 0 {
			continue
		}
		isCollapsed := !searching && collapsed != nil && collapsed(f.ID)
		items = append(items, sidebarItem{
			kind:      itemFolder,
			folderID:  f.ID,
			title:     f.Name,
			count:     len(children),
			collapsed: isCollapsed,
		})
		if isCollapsed {
			continue
		}
		for _, n := range children {
			items = append(items, noteItem(n, f.ID, 1))
		}
	}
	return items
}

func noteItem(n notes.Note, folderID string, depth int) sidebarItem {
	return sidebarItem{
		kind:     itemNote,
		noteID:   n.ID,
		folderID: folderID,
		title:    n.Title,
		tags:     n.Tags,
		depth:    depth,
	}
}

// rebuildSidebar refreshes the rows from the store, keeping the cursor
// on the same row identity when it still exists.
func (m *Model) rebuildSidebar() {
	var keep sidebarItem
	hadItem := m.cursor >= 0 && m.cursor < len(m.items)
	if hadItem {
		keep = m.items[m.cursor]
	}

	m.items = buildSidebarItems(m.store.FilteredNotes(), m.store.Folders(),
		m.store.SearchQuery() != "", state.IsFolderCollapsed)

	// The sidebar shows titles from the draft while it is being edited.
	if m.session.Loaded() {
		for i := range m.items {
			if m.items[i].kind == itemNote && m.items[i].noteID == m.session.NoteID() {
				m.items[i].title = m.session.Title()
				m.items[i].tags = m.session.Draft().Tags
			}
		}
	}

	if hadItem {
		for i, it := range m.items {
			if it.kind == keep.kind && it.noteID == keep.noteID && it.folderID == keep.folderID {
				m.cursor = i
				return
			}
		}
	}
	m.cursor = clampInt(m.cursor, 0, len(m.items)-1)
}

// cursorToActive moves the cursor onto the active note's row.
func (m *Model) cursorToActive() {
	if !m.session.Loaded() {
		return
	}
	for i, it := range m.items {
		if it.kind == itemNote && it.noteID == m.session.NoteID() {
			m.cursor = i
			return
		}
	}
}

func (m *Model) selectedItem() (sidebarItem, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return sidebarItem{}, false
	}
	return m.items[m.cursor], true
}

// targetFolder returns the folder new notes go into: the folder under
// the cursor, or the folder of the note under the cursor.
func (m *Model) targetFolder() *string {
	it, ok := m.selectedItem()
	if !ok || it.folderID == "" {
		return nil
	}
	return notes.StringPtr(it.folderID)
}

func (m *Model) moveCursor(delta int) {
	if len(m.items) == 0 {
		return
	}
	m.cursor = clampInt(m.cursor+delta, 0, len(m.items)-1)
}

// ensureCursorVisible adjusts scroll so the cursor row is inside a window
// of height rows.
func ensureCursorVisible(cursor, scroll, height int) int {
	if height <= 0 {
		return 0
	}
	if cursor < scroll {
		return cursor
	}
	if cursor >= scroll+height {
		return cursor - height + 1
	}
	return scroll
}

func (m *Model) showFilterLine() bool {
	return m.filtering || m.store.SearchQuery() != ""
}

// sidebarListHeight is the number of item rows the sidebar can show.
func (m *Model) sidebarListHeight() int {
	h := m.contentHeight() - 2 - 2 // border, header and blank line
	if m.showFilterLine() {
		h--
	}
	return max(1, h)
}

// renderSidebar renders the sidebar body (without the panel border).
func (m *Model) renderSidebar(width, height int) string {
	var lines []string

	header := styles.SectionHeader.Render("Notes")
	count := styles.FolderCount.Render(fmt.Sprintf("%d", len(m.store.Notes())))
	gap := max(1, width-runewidth.StringWidth("Notes")-runewidth.StringWidth(fmt.Sprintf("%d", len(m.store.Notes()))))
	lines = append(lines, header+strings.Repeat(" ", gap)+count)

	if m.showFilterLine() {
		lines = append(lines, m.filterInput.View())
	}
	lines = append(lines, "")

	listHeight := max(1, height-len(lines))
	if len(m.items) == 0 {
		empty := "No notes yet. Press n to create one."
		if m.store.SearchQuery() != "" {
			empty = "No notes match."
		}
		lines = append(lines, styles.Muted.Width(width).Render(empty))
		return strings.Join(lines, "\n")
	}

	scroll := ensureCursorVisible(m.cursor, m.scroll, listHeight)
	end := min(len(m.items), scroll+listHeight)
	activeID := ""
	if m.session.Loaded() {
		activeID = m.session.NoteID()
	}
	for i := scroll; i < end; i++ {
		lines = append(lines, m.renderSidebarItem(m.items[i], i == m.cursor, m.items[i].noteID == activeID, width))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderSidebarItem(it sidebarItem, isCursor, isActive bool, width int) string {
	indent := strings.Repeat("  ", it.depth)
	cursor := "  "
	if isCursor {
		cursor = styles.ListCursor.Render("▸ ")
	}
	avail := max(1, width-2-runewidth.StringWidth(indent))

	if it.kind == itemFolder {
		icon := "▾ "
		if it.collapsed {
			icon = "▸ "
		}
		countStr := fmt.Sprintf(" %d", it.count)
		name := truncateTitle(it.title, avail-2-len(countStr))
		line := icon + name
		style := styles.FolderName
		if isCursor && m.focus == paneSidebar && !m.filtering {
			style = styles.ListItemFocused
		}
		return cursor + indent + style.Render(line) + styles.FolderCount.Render(countStr)
	}

	title := it.title
	if strings.TrimSpace(title) == "" {
		title = notes.DefaultTitle
	}
	text := ui.PadRight(truncateTitle(title, avail), avail)

	style := styles.ListItemNormal
	switch {
	case isCursor && m.focus == paneSidebar && !m.filtering:
		style = styles.ListItemFocused
	case isActive:
		style = styles.ListItemSelected
	}
	return cursor + indent + style.Render(text)
}

// truncateTitle shortens s to width display cells with an ellipsis.
func truncateTitle(s string, width int) string {
	return ui.Truncate(strings.ReplaceAll(s, "\n", " "), width)
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
