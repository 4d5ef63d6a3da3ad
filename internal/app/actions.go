package app

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/reflect/internal/config"
	"github.com/marcus/reflect/internal/export"
	"github.com/marcus/reflect/internal/keymap"
	appmsg "github.com/marcus/reflect/internal/msg"
	"github.com/marcus/reflect/internal/notes"
	"github.com/marcus/reflect/internal/state"
	"github.com/marcus/reflect/internal/theme"
)

const (
	minSidebarWidth  = 16
	sidebarWidthStep = 2
)

// executeCommand runs a command id from a key binding or the palette.
func (m Model) executeCommand(id string) (tea.Model, tea.Cmd) {
	switch id {
	case keymap.CmdQuit:
		return m.quit()
	case keymap.CmdNewNote:
		return m, m.newNote()
	case keymap.CmdNewFolder:
		return m, m.openNewFolder()
	case keymap.CmdSave:
		return m, m.saveNow()
	case keymap.CmdPalette:
		ctx := m.activeContext()
		m.showPalette = true
		m.palette.SetSize(m.width, m.height)
		return m, m.palette.Open(m.keymap, ctx)
	case keymap.CmdTogglePreview:
		return m, m.cyclePreview()
	case keymap.CmdFocusNext:
		return m, m.cycleFocus(1)
	case keymap.CmdFocusPrev:
		return m, m.cycleFocus(-1)
	case keymap.CmdFocusSidebar:
		if m.searching {
			m.closeSearch()
		}
		return m, m.setFocus(paneSidebar)
	case keymap.CmdFocusEditor:
		return m, m.setFocus(paneEditor)
	case keymap.CmdChooseTheme:
		return m, m.openThemeChooser()
	case keymap.CmdDefaultTheme:
		return m, m.openDefaultThemeChooser()
	case keymap.CmdTips:
		m.showTips = true
		return m, nil

	case keymap.CmdCursorUp:
		m.moveCursor(-1)
	case keymap.CmdCursorDown:
		m.moveCursor(1)
	case keymap.CmdCursorTop:
		m.cursor = 0
	case keymap.CmdCursorBottom:
		m.cursor = max(0, len(m.items)-1)
	case keymap.CmdSelect:
		return m, m.selectItem()
	case keymap.CmdToggleFolder:
		m.toggleFolder()
	case keymap.CmdRename:
		it, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		if it.kind == itemFolder {
			return m, m.openRenameFolder(it.folderID)
		}
		cmd := m.openNote(it.noteID)
		return m, tea.Batch(cmd, m.setFocus(paneTitle))
	case keymap.CmdDelete:
		it, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		if it.kind == itemFolder {
			return m, m.openDeleteFolder(it.folderID)
		}
		return m, m.openDeleteNote(it.noteID)
	case keymap.CmdMoveNote:
		if n := m.targetNote(); n != nil {
			return m, m.openMoveNote(n.ID)
		}
	case keymap.CmdFilterNotes:
		m.focus = paneSidebar
		m.titleInput.Blur()
		m.textarea.Blur()
		m.filtering = true
		m.filterInput.SetValue(m.store.SearchQuery())
		m.filterInput.CursorEnd()
		return m, m.filterInput.Focus()
	case keymap.CmdClearFilter:
		m.clearFilter()
	case keymap.CmdEditTags:
		return m, m.openTags()
	case keymap.CmdYankContent:
		return m, m.yank(false)
	case keymap.CmdYankTitle:
		return m, m.yank(true)
	case keymap.CmdExportHTML:
		return m, m.exportNote(export.FormatHTML)
	case keymap.CmdExportMD:
		return m, m.exportNote(export.FormatMarkdown)
	case keymap.CmdExport:
		return m, m.exportNote(lastExportFormat())
	case keymap.CmdRevisions:
		return m, m.openRevisions()
	case keymap.CmdGrowSidebar:
		m.resizeSidebar(sidebarWidthStep)
	case keymap.CmdShrinkSidebar:
		m.resizeSidebar(-sidebarWidthStep)

	case keymap.CmdSearchNote:
		if !m.session.Loaded() {
			return m, nil
		}
		cmd := m.setFocus(paneEditor)
		return m, tea.Batch(cmd, m.openSearch())
	default:
		if m.focus == paneEditor {
			cmd, _ := m.editorCommand(id)
			return m, cmd
		}
	}
	return m, nil
}

// quit commits the draft and exits. A failed commit keeps the app open
// once so the error can be seen; quitting again exits anyway.
func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.session.Dirty() {
		m.session.SnapshotRevision(m.now())
	}
	if err := m.session.Commit(m.store); err != nil && !m.quitPending {
		m.quitPending = true
		m.logger.Error("save on quit failed", "err", err)
		m.ShowToast("Save failed: "+err.Error()+" (quit again to discard)", toastLong, true)
		return m, nil
	}
	return m, tea.Quit
}

// newNote creates a note in the folder under the cursor and opens it.
func (m *Model) newNote() tea.Cmd {
	folder := m.targetFolder()
	n, err := m.store.CreateNote(folder)
	if err != nil {
		return m.reportError("Create note failed", err)
	}
	if m.store.SearchQuery() != "" {
		m.clearFilter()
	}
	if folder != nil && state.IsFolderCollapsed(*folder) {
		if err := state.SetFolderCollapsed(*folder, false); err != nil {
			m.logger.Warn("expand folder", "err", err)
		}
	}
	serr := m.session.Switch(&n, m.store)
	m.syncEditorFromSession()
	m.applyNoteTheme()
	m.rebuildSidebar()
	m.cursorToActive()
	focus := m.setFocus(paneEditor)
	if serr != nil {
		return tea.Batch(focus, m.reportError("Save failed", serr))
	}
	m.ShowToast("Created note", toastShort, false)
	return focus
}

// openNote makes id the active note, committing the current draft first.
func (m *Model) openNote(id string) tea.Cmd {
	if m.session.Loaded() && m.session.NoteID() == id {
		return nil
	}
	n := m.store.Note(id)
	if n == nil {
		return nil
	}
	serr := m.session.Switch(n, m.store)
	if err := m.store.SetActiveNoteID(&id); err != nil {
		m.logger.Warn("persist active note", "err", err)
	}
	m.syncEditorFromSession()
	m.applyNoteTheme()
	m.rebuildSidebar()
	m.cursorToActive()
	if serr != nil {
		return m.reportError("Save failed", serr)
	}
	return nil
}

// selectItem opens the note under the cursor or toggles the folder.
func (m *Model) selectItem() tea.Cmd {
	it, ok := m.selectedItem()
	if !ok {
		return nil
	}
	if it.kind == itemFolder {
		m.toggleFolder()
		return nil
	}
	cmd := m.openNote(it.noteID)
	target := paneEditor
	if m.previewMode == state.PreviewOnly {
		target = panePreview
	}
	return tea.Batch(cmd, m.setFocus(target))
}

func (m *Model) toggleFolder() {
	it, ok := m.selectedItem()
	if !ok || it.kind != itemFolder || m.store.SearchQuery() != "" {
		return
	}
	if err := state.SetFolderCollapsed(it.folderID, !it.collapsed); err != nil {
		m.logger.Warn("save collapsed folder", "err", err)
	}
	m.rebuildSidebar()
}

func (m *Model) clearFilter() {
	m.filtering = false
	m.filterInput.Blur()
	m.filterInput.SetValue("")
	if m.store.SearchQuery() == "" {
		return
	}
	m.store.SetSearchQuery("")
	m.rebuildSidebar()
	m.cursorToActive()
}

// targetNote is the note sidebar actions apply to: the note under the
// cursor, else the active note.
func (m *Model) targetNote() *notes.Note {
	if it, ok := m.selectedItem(); ok && it.kind == itemNote {
		if m.session.Loaded() && it.noteID == m.session.NoteID() {
			d := m.session.Draft()
			return &d
		}
		return m.store.Note(it.noteID)
	}
	if m.session.Loaded() {
		d := m.session.Draft()
		return &d
	}
	return nil
}

func (m *Model) yank(title bool) tea.Cmd {
	n := m.targetNote()
	if n == nil {
		return nil
	}
	text, label := n.Content, "Copied note content"
	if title {
		text = displayTitle(n.Title)
		label = "Copied: " + text
	}
	if err := clipboard.WriteAll(text); err != nil {
		m.logger.Warn("clipboard write failed", "err", err)
		return appmsg.ShowErrorToast("Copy failed", err)
	}
	return appmsg.ShowToast(label, toastShort)
}

func (m *Model) exportNote(f export.Format) tea.Cmd {
	n := m.targetNote()
	if n == nil {
		return nil
	}
	folder := ""
	if n.FolderID != nil {
		if fo := m.store.Folder(*n.FolderID); fo != nil {
			folder = fo.Name
		}
	}
	themeName := theme.ResolveTheme(m.cfg, n).BaseName
	path, err := export.WriteFile(config.ExpandPath(m.cfg.Export.Dir), *n, f, folder, themeName)
	if err != nil {
		return m.reportError("Export failed", err)
	}
	if err := state.SetExportFormat(string(f)); err != nil {
		m.logger.Warn("save export format", "err", err)
	}
	m.logger.Info("exported note", "id", n.ID, "path", path)
	m.ShowToast("Exported to "+path, toastLong, false)
	return nil
}

// lastExportFormat is the format of the previous export, Markdown when
// nothing has been exported yet.
func lastExportFormat() export.Format {
	if export.Format(state.GetExportFormat()) == export.FormatHTML {
		return export.FormatHTML
	}
	return export.FormatMarkdown
}

// saveNow snapshots a revision and commits immediately.
func (m *Model) saveNow() tea.Cmd {
	if !m.session.Loaded() {
		return nil
	}
	m.session.Revision.Cancel()
	m.session.SnapshotRevision(m.now())
	if err := m.session.Commit(m.store); err != nil {
		return m.reportError("Save failed", err)
	}
	m.rebuildSidebar()
	m.ShowToast("Saved", toastShort, false)
	return nil
}

// cyclePreview steps split -> editor only -> preview only.
func (m *Model) cyclePreview() tea.Cmd {
	switch m.previewMode {
	case state.PreviewSplit:
		m.previewMode = state.PreviewHidden
	case state.PreviewHidden:
		m.previewMode = state.PreviewOnly
	default:
		m.previewMode = state.PreviewSplit
	}
	if err := state.SetPreviewMode(m.previewMode); err != nil {
		m.logger.Warn("save preview mode", "err", err)
	}
	m.previewFor = 0
	m.resizeWidgets()
	if m.focus != paneSidebar {
		return m.setFocus(m.focus)
	}
	return nil
}

func (m *Model) resizeSidebar(delta int) {
	w := clampInt(m.sidebarWidth+delta, minSidebarWidth, m.maxSidebarWidth())
	if w == m.sidebarWidth {
		return
	}
	m.sidebarWidth = w
	if err := state.SetSidebarWidth(w); err != nil {
		m.logger.Warn("save sidebar width", "err", err)
	}
	m.resizeWidgets()
}

func (m *Model) maxSidebarWidth() int {
	if m.width <= 0 {
		return config.Default().UI.SidebarWidth * 2
	}
	return max(minSidebarWidth, m.width/2)
}

// reportError logs err and shows it as an error toast.
func (m *Model) reportError(prefix string, err error) tea.Cmd {
	m.logger.Error(prefix, "err", err)
	return appmsg.ShowErrorToast(prefix, err)
}
