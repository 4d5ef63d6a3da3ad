package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/reflect/internal/keymap"
	appmsg "github.com/marcus/reflect/internal/msg"
	"github.com/marcus/reflect/internal/palette"
)

// Update handles all messages and returns the updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	if mm, ok := next.(Model); ok {
		mm.refreshPreview()
		mm.scroll = ensureCursorVisible(mm.cursor, mm.scroll, mm.sidebarListHeight())
		return mm, cmd
	}
	return next, cmd
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.palette.SetSize(m.width, m.height)
		m.resizeWidgets()
		return m, nil

	case IntroTickMsg:
		if m.intro.Active && !m.intro.Done {
			m.intro.Update(16 * time.Millisecond)
			if !m.intro.Done {
				return m, IntroTick()
			}
		}
		return m, nil

	case TickMsg:
		m.ClearToast()
		return m, tickCmd()

	case appmsg.ToastMsg:
		m.ShowToast(msg.Message, msg.Duration, msg.IsError)
		return m, nil

	case saveTickMsg:
		if m.session.Save.Fire(msg.gen) {
			if err := m.session.Commit(m.store); err != nil {
				return m, m.reportError("Autosave failed", err)
			}
			m.rebuildSidebar()
		}
		return m, nil

	case revisionTickMsg:
		if m.session.Revision.Fire(msg.gen) && m.session.SnapshotRevision(m.now()) {
			if err := m.session.Commit(m.store); err != nil {
				return m, m.reportError("Autosave failed", err)
			}
			m.rebuildSidebar()
		}
		return m, nil

	case externalChangeMsg:
		cmd := m.handleExternalChange(msg.key)
		return m, tea.Batch(cmd, waitForChange(m.changes))

	case watchClosedMsg:
		m.logger.Debug("change feed closed")
		return m, nil

	case palette.CommandSelectedMsg:
		m.showPalette = false
		return m.executeCommand(msg.CommandID)

	case palette.ClosedMsg:
		m.showPalette = false
		return m, nil
	}

	// Cursor blink and other widget messages.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	cmds = append(cmds, cmd)
	m.titleInput, cmd = m.titleInput.Update(msg)
	cmds = append(cmds, cmd)
	m.filterInput, cmd = m.filterInput.Update(msg)
	cmds = append(cmds, cmd)
	m.searchInput, cmd = m.searchInput.Update(msg)
	cmds = append(cmds, cmd)
	if m.showPalette {
		m.palette, cmd = m.palette.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.dialog != nil {
		cmds = append(cmds, m.dialog.modal.Update(msg))
	}
	return m, tea.Batch(cmds...)
}

// handleKeyMsg routes keyboard input by overlay and focus.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.intro.Active && !m.intro.Done {
		m.intro.Skip()
	}

	switch m.activeModal() {
	case ModalPalette:
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	case ModalDialog:
		return m.updateDialog(msg)
	case ModalTips:
		m.showTips = false
		return m, nil
	}

	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	switch {
	case m.searching:
		return m.updateSearch(msg)
	case m.filtering:
		return m.updateFilter(msg)
	}

	switch m.focus {
	case paneTitle:
		return m.updateTitle(msg)
	case paneEditor:
		return m.updateEditor(msg)
	case panePreview:
		return m.updatePreview(msg)
	}

	if id, ok := m.keymap.Lookup(msg.String(), keymap.ContextSidebar); ok {
		return m.executeCommand(id)
	}
	return m, nil
}

// updateFilter handles keys in the sidebar search box. The query filters
// the sidebar as it is typed.
func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !isTextKey(msg) {
		id, _ := m.keymap.Lookup(msg.String(), keymap.ContextFilter)
		switch id {
		case keymap.CmdClearFilter:
			m.clearFilter()
			return m, nil
		case keymap.CmdConfirm:
			m.filtering = false
			m.filterInput.Blur()
			if m.filterInput.Value() == "" {
				m.clearFilter()
			}
			return m, nil
		case keymap.CmdQuit, keymap.CmdPalette, keymap.CmdNewNote, keymap.CmdSave:
			return m.executeCommand(id)
		}
	}

	prev := m.filterInput.Value()
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	if q := m.filterInput.Value(); q != prev {
		m.store.SetSearchQuery(q)
		m.rebuildSidebar()
		m.cursor = 0
	}
	return m, cmd
}

// handleExternalChange reloads after another process wrote the store.
// A dirty draft is never overwritten.
func (m *Model) handleExternalChange(key string) tea.Cmd {
	m.logger.Debug("storage changed externally", "key", key)
	if m.session.Dirty() {
		m.ShowToast("Notes changed on disk; keeping unsaved edits", toastLong, false)
		return nil
	}
	if err := m.store.Reload(); err != nil {
		return m.reportError("Reload failed", err)
	}

	before := m.session.Content()
	beforeID := m.session.NoteID()
	switch n := m.store.ActiveNote(); {
	case n == nil:
		m.session.Unload()
	case m.session.Loaded() && m.session.NoteID() == n.ID:
		m.session.Refresh(*n)
	default:
		m.session.Load(*n)
	}
	if m.session.NoteID() != beforeID || m.session.Content() != before {
		cur := m.cursorOffset()
		m.syncEditorFromSession()
		m.setCursorOffset(cur)
	} else {
		m.titleInput.SetValue(m.session.Title())
	}
	if !m.session.Loaded() && m.focus != paneSidebar {
		m.setFocus(paneSidebar)
	}
	m.applyNoteTheme()
	m.rebuildSidebar()
	m.ShowToast("Reloaded notes from disk", toastShort, false)
	return nil
}
