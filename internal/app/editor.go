package app

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/reflect/internal/editor"
	"github.com/marcus/reflect/internal/keymap"
	"github.com/marcus/reflect/internal/palette"
	"github.com/marcus/reflect/internal/state"
	"github.com/marcus/reflect/internal/styles"
)

const slashMaxVisible = 6

// slashMenu is the open slash-command popup.
type slashMenu struct {
	start  int // rune offset of the '/'
	query  string
	cursor int
	items  []editor.Command
}

func (m *Model) closeSlash() {
	if m.slash == nil {
		return
	}
	m.slash = nil
	m.resizeWidgets()
}

// slashHeight is the number of rows the slash menu takes in the editor.
func (m *Model) slashHeight() int {
	if m.slash == nil {
		return 0
	}
	rows := min(len(m.slash.items), slashMaxVisible)
	if rows == 0 {
		rows = 1
	}
	if len(m.slash.items) > slashMaxVisible {
		rows++
	}
	return rows + 3 // header and border
}

// cursorOffset returns the textarea cursor as a rune offset.
func (m *Model) cursorOffset() int {
	li := m.textarea.LineInfo()
	return editor.Offset(m.textarea.Value(), m.textarea.Line(), li.StartColumn+li.ColumnOffset)
}

// setCursorOffset moves the textarea cursor to a rune offset.
func (m *Model) setCursorOffset(off int) {
	value := m.textarea.Value()
	row, col := editor.LineCol(value, off)
	limit := utf8.RuneCountInString(value) + 1
	for i := 0; m.textarea.Line() > row && i < limit; i++ {
		m.textarea.CursorUp()
	}
	for i := 0; m.textarea.Line() < row && i < limit; i++ {
		m.textarea.CursorDown()
	}
	m.textarea.SetCursor(col)
}

// setEditorText replaces the textarea content and places the cursor.
func (m *Model) setEditorText(text string, cursor int) {
	m.textarea.SetValue(text)
	m.setCursorOffset(cursor)
}

// scheduleSave arms the autosave and revision debouncers.
func (m *Model) scheduleSave() tea.Cmd {
	return tea.Batch(
		m.session.Save.Schedule(saveTick),
		m.session.Revision.Schedule(revisionTick),
	)
}

// contentChanged pushes the textarea into the draft.
func (m *Model) contentChanged() tea.Cmd {
	if !m.session.SetContent(m.textarea.Value()) {
		return nil
	}
	return m.scheduleSave()
}

// titleChanged pushes the title input into the draft.
func (m *Model) titleChanged() tea.Cmd {
	if !m.session.SetTitle(m.titleInput.Value()) {
		return nil
	}
	m.rebuildSidebar()
	return m.session.Save.Schedule(saveTick)
}

// updateEditor handles keys while the textarea has focus.
func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.slash != nil {
		return m.updateSlash(msg)
	}

	if !isTextKey(msg) {
		if id, ok := m.keymap.Lookup(msg.String(), keymap.ContextEditor); ok {
			if cmd, handled := m.editorCommand(id); handled {
				return m, cmd
			}
			return m.executeCommand(id)
		}
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	changed := m.contentChanged()
	if changed != nil {
		m.mark = -1
		m.syncSlash()
	}
	return m, tea.Batch(cmd, changed)
}

// editorCommand runs commands that only make sense inside the editor.
func (m *Model) editorCommand(id string) (tea.Cmd, bool) {
	if f, ok := formatCommands[id]; ok {
		return m.applyFormat(f), true
	}
	switch id {
	case keymap.CmdUndo:
		return m.undo(), true
	case keymap.CmdRedo:
		return m.redo(), true
	case keymap.CmdSetMark:
		if m.mark >= 0 {
			m.mark = -1
			m.ShowToast("Mark cleared", toastShort, false)
		} else {
			m.mark = m.cursorOffset()
			m.ShowToast("Mark set", toastShort, false)
		}
		return nil, true
	case keymap.CmdSearchNote:
		return m.openSearch(), true
	}
	return nil, false
}

var formatCommands = map[string]editor.Format{
	keymap.CmdBold:          editor.FormatBold,
	keymap.CmdItalic:        editor.FormatItalic,
	keymap.CmdStrikethrough: editor.FormatStrikethrough,
	keymap.CmdCode:          editor.FormatCode,
	keymap.CmdLink:          editor.FormatLink,
	keymap.CmdHeading:       editor.FormatHeading,
	keymap.CmdQuote:         editor.FormatQuote,
	keymap.CmdBullet:        editor.FormatBullet,
	keymap.CmdChecklist:     editor.FormatChecklist,
}

// applyFormat formats the region between the mark and the cursor, or
// the cursor position when no mark is set.
func (m *Model) applyFormat(f editor.Format) tea.Cmd {
	cur := m.cursorOffset()
	sel := editor.Selection{Start: cur, End: cur}
	if m.mark >= 0 {
		sel = editor.Selection{Start: m.mark, End: cur}
	}
	text, out := editor.ApplyFormat(m.textarea.Value(), sel, f)
	m.mark = -1
	m.setEditorText(text, out.End)
	return m.contentChanged()
}

func (m *Model) undo() tea.Cmd {
	cur := m.cursorOffset()
	if !m.session.Undo() {
		m.ShowToast("Nothing to undo", toastShort, false)
		return nil
	}
	m.setEditorText(m.session.Content(), cur)
	return m.scheduleSave()
}

func (m *Model) redo() tea.Cmd {
	cur := m.cursorOffset()
	if !m.session.Redo() {
		m.ShowToast("Nothing to redo", toastShort, false)
		return nil
	}
	m.setEditorText(m.session.Content(), cur)
	return m.scheduleSave()
}

// syncSlash opens, refilters or closes the slash menu from the text just
// before the cursor.
func (m *Model) syncSlash() {
	start, query, ok := editor.SlashToken(m.textarea.Value(), m.cursorOffset())
	if !ok {
		m.closeSlash()
		return
	}
	items := editor.FilterCommands(query)
	if len(items) == 0 {
		m.closeSlash()
		return
	}
	wasOpen := m.slash != nil
	if !wasOpen || m.slash.start != start {
		m.slash = &slashMenu{start: start}
	}
	if m.slash.query != query {
		m.slash.cursor = 0
	}
	m.slash.query = query
	m.slash.items = items
	m.slash.cursor = clampInt(m.slash.cursor, 0, len(items)-1)
	m.resizeWidgets()
}

// updateSlash handles keys while the slash menu is open. Unbound keys
// keep editing the text and refilter the menu.
func (m Model) updateSlash(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !isTextKey(msg) {
		id, _ := m.keymap.Lookup(msg.String(), keymap.ContextSlash)
		switch id {
		case keymap.CmdCancel:
			m.closeSlash()
			return m, nil
		case keymap.CmdCursorUp:
			m.slash.cursor = (m.slash.cursor - 1 + len(m.slash.items)) % len(m.slash.items)
			return m, nil
		case keymap.CmdCursorDown:
			m.slash.cursor = (m.slash.cursor + 1) % len(m.slash.items)
			return m, nil
		case keymap.CmdSelect:
			return m, m.applySlash()
		}
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	changed := m.contentChanged()
	m.syncSlash()
	return m, tea.Batch(cmd, changed)
}

// applySlash replaces the slash token with the chosen snippet.
func (m *Model) applySlash() tea.Cmd {
	s := m.slash
	if s == nil || s.cursor >= len(s.items) {
		return nil
	}
	text, cursor := editor.ApplyCommand(m.textarea.Value(), s.start, m.cursorOffset(), s.items[s.cursor])
	m.closeSlash()
	m.setEditorText(text, cursor)
	return m.contentChanged()
}

func (m *Model) renderSlash(width int) string {
	if m.slash == nil {
		return ""
	}
	return palette.RenderSlashMenu(m.slash.items, m.slash.cursor, m.slash.query, slashMaxVisible, width)
}

// openSearch shows the in-note search bar.
func (m *Model) openSearch() tea.Cmd {
	if !m.session.Loaded() {
		return nil
	}
	m.closeSlash()
	m.searching = true
	m.textarea.Blur()
	m.searchInput.SetValue(m.session.SearchState().Query)
	m.searchInput.CursorEnd()
	m.resizeWidgets()
	return m.searchInput.Focus()
}

// closeSearch hides the search bar and clears the matches.
func (m *Model) closeSearch() tea.Cmd {
	m.searching = false
	m.searchInput.Blur()
	m.session.SearchState().Clear()
	m.resizeWidgets()
	if m.focus == paneEditor {
		return m.textarea.Focus()
	}
	return nil
}

// updateSearch handles keys in the search bar.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !isTextKey(msg) {
		id, _ := m.keymap.Lookup(msg.String(), keymap.ContextSearch)
		switch id {
		case keymap.CmdCancel:
			return m, m.closeSearch()
		case keymap.CmdNextMatch:
			if off, ok := m.session.SearchState().Next(); ok {
				m.setCursorOffset(off)
			}
			return m, nil
		case keymap.CmdPrevMatch:
			if off, ok := m.session.SearchState().Prev(); ok {
				m.setCursorOffset(off)
			}
			return m, nil
		}
	}

	prev := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if q := m.searchInput.Value(); q != prev {
		m.session.SetSearch(q)
		if off, ok := m.session.SearchState().Offset(); ok {
			m.setCursorOffset(off)
		}
	}
	return m, cmd
}

// searchStatus renders "2/5" style match counts for the search bar.
func (m *Model) searchStatus() string {
	s := m.session.SearchState()
	if !s.Active() {
		return ""
	}
	if len(s.Matches) == 0 {
		return styles.StatusModified.Render("no matches")
	}
	return styles.Muted.Render(fmt.Sprintf("%d/%d", s.Current, len(s.Matches)))
}

// updateTitle handles keys in the title input.
func (m Model) updateTitle(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !isTextKey(msg) {
		if id, ok := m.keymap.Lookup(msg.String(), keymap.ContextTitle); ok {
			return m.executeCommand(id)
		}
	}
	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	return m, tea.Batch(cmd, m.titleChanged())
}

// refreshPreview re-renders the preview when the content, width or
// theme changed since the last render.
func (m *Model) refreshPreview() {
	if m.previewMode == state.PreviewHidden || !m.session.Loaded() || m.preview.Width <= 0 {
		return
	}
	content := m.session.Content()
	themeName := styles.GetCurrentThemeName()
	key := xxhash.Sum64String(fmt.Sprintf("%d\x00%s\x00%s", m.preview.Width, themeName, content))
	if key == m.previewFor {
		return
	}
	m.previewFor = key

	var lines []string
	if m.renderer != nil {
		var err error
		lines, err = m.renderer.Render(content, m.preview.Width, themeName)
		if err != nil {
			m.logger.Debug("preview render failed", "err", err)
			lines = nil
		}
	}
	if lines == nil {
		lines = strings.Split(content, "\n")
	}
	m.preview.SetContent(strings.Join(lines, "\n"))
}

// updatePreview handles keys while the preview pane has focus.
func (m Model) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id, ok := m.keymap.Lookup(msg.String(), keymap.ContextPreview)
	if !ok {
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}
	switch id {
	case keymap.CmdScrollDown:
		m.preview.LineDown(1)
	case keymap.CmdScrollUp:
		m.preview.LineUp(1)
	case keymap.CmdCursorTop:
		m.preview.GotoTop()
	case keymap.CmdCursorBottom:
		m.preview.GotoBottom()
	default:
		return m.executeCommand(id)
	}
	return m, nil
}

// isTextKey reports whether msg types printable text. Such keys always
// reach the focused input so overrides cannot swallow typing.
func isTextKey(msg tea.KeyMsg) bool {
	return (msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace) && !msg.Alt
}
