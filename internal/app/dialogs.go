package app

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/reflect/internal/config"
	"github.com/marcus/reflect/internal/modal"
	"github.com/marcus/reflect/internal/notes"
	"github.com/marcus/reflect/internal/state"
	"github.com/marcus/reflect/internal/styles"
	"github.com/marcus/reflect/internal/ui"
)

type dialogKind int

const (
	dialogNewFolder dialogKind = iota
	dialogRenameFolder
	dialogDeleteNote
	dialogDeleteFolder
	dialogMoveNote
	dialogTags
	dialogTheme
	dialogDefaultTheme
	dialogRevisions
)

const (
	unfiledID    = "__unfiled"
	inheritTheme = "inherit"
)

// dialog is the open modal and what it acts on.
type dialog struct {
	kind    dialogKind
	target  string // note or folder id
	modal   *modal.Modal
	prompt  *ui.PromptDialog
	chooser *ui.ChooserDialog
}

func (m *Model) openDialog(d *dialog) tea.Cmd {
	m.dialog = d
	m.closeSlash()
	m.titleInput.Blur()
	m.textarea.Blur()
	if d.prompt != nil {
		return d.prompt.Input().Focus()
	}
	return nil
}

// closeDialog dismisses the dialog and gives focus back to the pane.
func (m *Model) closeDialog() tea.Cmd {
	m.dialog = nil
	return m.setFocus(m.focus)
}

func (m *Model) openNewFolder() tea.Cmd {
	p := ui.NewPromptDialog("New folder", "Name", "")
	p.Placeholder = "Folder name"
	p.SubmitLabel = " Create "
	return m.openDialog(&dialog{kind: dialogNewFolder, modal: p.ToModal(), prompt: p})
}

func (m *Model) openRenameFolder(folderID string) tea.Cmd {
	f := m.store.Folder(folderID)
	if f == nil {
		return nil
	}
	p := ui.NewPromptDialog("Rename folder", "Name", f.Name)
	p.SubmitLabel = " Rename "
	return m.openDialog(&dialog{kind: dialogRenameFolder, target: folderID, modal: p.ToModal(), prompt: p})
}

func (m *Model) openDeleteNote(noteID string) tea.Cmd {
	n := m.store.Note(noteID)
	if n == nil {
		return nil
	}
	c := ui.NewDeleteDialog("note", displayTitle(n.Title), "This cannot be undone.")
	return m.openDialog(&dialog{kind: dialogDeleteNote, target: noteID, modal: c.ToModal()})
}

func (m *Model) openDeleteFolder(folderID string) tea.Cmd {
	f := m.store.Folder(folderID)
	if f == nil {
		return nil
	}
	detail := "It is empty."
	if n := len(m.store.NotesInFolder(&f.ID)); n > 0 {
		detail = fmt.Sprintf("Its %d %s will move to Unfiled.", n, plural(n, "note", "notes"))
	}
	c := ui.NewDeleteDialog("folder", f.Name, detail)
	return m.openDialog(&dialog{kind: dialogDeleteFolder, target: folderID, modal: c.ToModal()})
}

func (m *Model) openMoveNote(noteID string) tea.Cmd {
	n := m.store.Note(noteID)
	if n == nil {
		return nil
	}
	items := []modal.ListItem{{ID: unfiledID, Label: "Unfiled"}}
	for _, f := range m.store.Folders() {
		count := len(m.store.NotesInFolder(notes.StringPtr(f.ID)))
		items = append(items, modal.ListItem{ID: f.ID, Label: f.Name, Detail: strconv.Itoa(count)})
	}
	current := unfiledID
	if n.FolderID != nil {
		current = *n.FolderID
	}
	c := ui.NewChooserDialog("Move note", items, current)
	c.Message = "Move \"" + displayTitle(n.Title) + "\" to:"
	return m.openDialog(&dialog{kind: dialogMoveNote, target: noteID, modal: c.ToModal(), chooser: c})
}

func (m *Model) openTags() tea.Cmd {
	if !m.session.Loaded() {
		return nil
	}
	p := ui.NewPromptDialog("Tags", "Comma separated, or +tag / -tag", strings.Join(m.session.Draft().Tags, ", "))
	p.Placeholder = "work, ideas"
	return m.openDialog(&dialog{kind: dialogTags, target: m.session.NoteID(), modal: p.ToModal(), prompt: p})
}

// openThemeChooser picks the active note's theme, or the default theme
// when no note is open.
func (m *Model) openThemeChooser() tea.Cmd {
	if !m.session.Loaded() {
		return m.openDefaultThemeChooser()
	}
	items := []modal.ListItem{{ID: inheritTheme, Label: "Inherit", Detail: m.cfg.UI.Theme.Name}}
	for _, t := range notes.Themes {
		items = append(items, modal.ListItem{ID: t, Label: t})
	}
	current := m.session.Draft().Theme
	if current == "" {
		current = inheritTheme
	}
	c := ui.NewChooserDialog("Note theme", items, current)
	return m.openDialog(&dialog{kind: dialogTheme, target: m.session.NoteID(), modal: c.ToModal(), chooser: c})
}

func (m *Model) openDefaultThemeChooser() tea.Cmd {
	var items []modal.ListItem
	for _, t := range styles.ListThemes() {
		items = append(items, modal.ListItem{ID: t, Label: t})
	}
	c := ui.NewChooserDialog("Default theme", items, m.cfg.UI.Theme.Name)
	c.Message = "Used by notes without a theme of their own."
	return m.openDialog(&dialog{kind: dialogDefaultTheme, modal: c.ToModal(), chooser: c})
}

func (m *Model) openRevisions() tea.Cmd {
	if !m.session.Loaded() {
		return nil
	}
	revs := m.session.Draft().Revisions
	if len(revs) == 0 {
		m.ShowToast("No revisions yet", toastShort, false)
		return nil
	}
	items := make([]modal.ListItem, 0, len(revs))
	for i := len(revs) - 1; i >= 0; i-- {
		r := revs[i]
		items = append(items, modal.ListItem{
			ID:     strconv.Itoa(i),
			Label:  r.Timestamp.Local().Format("Jan 2 15:04:05"),
			Detail: firstLine(r.Content),
		})
	}
	c := ui.NewChooserDialog("Revisions", items, items[0].ID)
	c.Width = ui.ModalWidthLarge
	c.Message = "Restoring replaces the editor content; undo brings it back."
	return m.openDialog(&dialog{kind: dialogRevisions, target: m.session.NoteID(), modal: c.ToModal(), chooser: c})
}

// updateDialog routes keys to the open dialog and applies its result.
func (m Model) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.dialog
	action, cmd := d.modal.HandleKey(msg)
	switch action {
	case "":
		return m, cmd
	case ui.ActionCancel:
		return m, m.closeDialog()
	}

	result := m.applyDialog(d, action)
	// The handler may have opened a follow-up dialog.
	if m.dialog == d {
		return m, tea.Batch(m.closeDialog(), result)
	}
	return m, result
}

// applyDialog performs the action a dialog was confirmed with.
func (m *Model) applyDialog(d *dialog, action string) tea.Cmd {
	switch d.kind {
	case dialogNewFolder:
		f, err := m.store.CreateFolder(d.prompt.Input().Value())
		if err != nil {
			return m.reportError("Create folder failed", err)
		}
		if f == nil {
			return nil
		}
		m.rebuildSidebar()
		m.cursorToFolder(f.ID)
		m.ShowToast("Created folder "+f.Name, toastShort, false)

	case dialogRenameFolder:
		name := strings.TrimSpace(d.prompt.Input().Value())
		if err := m.store.RenameFolder(d.target, name); err != nil {
			return m.reportError("Rename failed", err)
		}
		m.rebuildSidebar()

	case dialogDeleteNote:
		if action != ui.ActionConfirm {
			return nil
		}
		return m.deleteNote(d.target)

	case dialogDeleteFolder:
		if action != ui.ActionConfirm {
			return nil
		}
		return m.deleteFolder(d.target)

	case dialogMoveNote:
		return m.moveNote(d.target, d.chooser.SelectedID())

	case dialogTags:
		if d.target != m.session.NoteID() {
			return nil
		}
		if m.editTags(d.prompt.Input().Value()) {
			m.rebuildSidebar()
			return m.session.Save.Schedule(saveTick)
		}

	case dialogTheme:
		if d.target != m.session.NoteID() {
			return nil
		}
		choice := d.chooser.SelectedID()
		if choice == inheritTheme {
			choice = ""
		}
		if m.session.SetTheme(choice) {
			m.applyNoteTheme()
			return m.session.Save.Schedule(saveTick)
		}

	case dialogDefaultTheme:
		choice := d.chooser.SelectedID()
		if choice == "" || choice == m.cfg.UI.Theme.Name {
			return nil
		}
		m.cfg.UI.Theme.Name = choice
		if err := config.SaveTheme(choice); err != nil {
			m.logger.Warn("save default theme", "err", err)
		}
		m.applyNoteTheme()
		m.ShowToast("Default theme: "+choice, toastShort, false)

	case dialogRevisions:
		if d.target != m.session.NoteID() {
			return nil
		}
		i, err := strconv.Atoi(d.chooser.SelectedID())
		if err != nil || !m.session.RestoreRevision(i) {
			return nil
		}
		m.setEditorText(m.session.Content(), 0)
		m.ShowToast("Revision restored", toastShort, false)
		return m.scheduleSave()
	}
	return nil
}

func (m *Model) deleteNote(id string) tea.Cmd {
	title := ""
	if n := m.store.Note(id); n != nil {
		title = n.Title
	}
	wasActive := m.session.Loaded() && m.session.NoteID() == id
	if wasActive {
		m.session.Unload()
	}
	if err := m.store.DeleteNote(id); err != nil {
		return m.reportError("Delete failed", err)
	}
	if wasActive {
		if err := m.session.Switch(m.store.ActiveNote(), m.store); err != nil {
			return m.reportError("Save failed", err)
		}
		m.syncEditorFromSession()
		m.applyNoteTheme()
	}
	m.rebuildSidebar()
	m.ShowToast("Deleted "+displayTitle(title), toastShort, false)
	return nil
}

func (m *Model) deleteFolder(id string) tea.Cmd {
	f := m.store.Folder(id)
	if f == nil {
		return nil
	}
	name := f.Name
	if err := m.store.DeleteFolder(id); err != nil {
		return m.reportError("Delete failed", err)
	}
	m.refreshSessionFromStore()
	if err := state.PruneCollapsedFolders(m.folderIDs()); err != nil {
		m.logger.Warn("prune collapsed folders", "err", err)
	}
	m.rebuildSidebar()
	m.ShowToast("Deleted folder "+name, toastShort, false)
	return nil
}

func (m *Model) moveNote(noteID, folderChoice string) tea.Cmd {
	var target *string
	if folderChoice != unfiledID && folderChoice != "" {
		target = notes.StringPtr(folderChoice)
	}
	if err := m.store.MoveNote(noteID, target); err != nil {
		return m.reportError("Move failed", err)
	}
	m.refreshSessionFromStore()
	m.rebuildSidebar()
	m.cursorToNote(noteID)

	dest := "Unfiled"
	if target != nil {
		if f := m.store.Folder(*target); f != nil {
			dest = f.Name
		}
	}
	m.ShowToast("Moved to "+dest, toastShort, false)
	return nil
}

// refreshSessionFromStore pushes the stored copy of the active note into
// the session after a store-side change such as a move.
func (m *Model) refreshSessionFromStore() {
	if !m.session.Loaded() {
		return
	}
	if n := m.store.Note(m.session.NoteID()); n != nil {
		m.session.Refresh(*n)
	}
}

func (m *Model) folderIDs() []string {
	folders := m.store.Folders()
	ids := make([]string, 0, len(folders))
	for _, f := range folders {
		ids = append(ids, f.ID)
	}
	return ids
}

func (m *Model) cursorToNote(id string) {
	for i, it := range m.items {
		if it.kind == itemNote && it.noteID == id {
			m.cursor = i
			return
		}
	}
}

func (m *Model) cursorToFolder(id string) {
	for i, it := range m.items {
		if it.kind == itemFolder && it.folderID == id {
			m.cursor = i
			return
		}
	}
}

// splitTags parses a comma separated tag list.
// editTags applies the tags prompt. When every entry is +tag or -tag the
// tags are added or removed one by one; otherwise the list replaces the
// note's tags.
func (m *Model) editTags(input string) bool {
	var entries []string
	for _, e := range strings.Split(input, ",") {
		if e = strings.TrimSpace(e); e != "" {
			entries = append(entries, e)
		}
	}
	incremental := len(entries) > 0
	for _, e := range entries {
		if e[0] != '+' && e[0] != '-' {
			incremental = false
			break
		}
	}
	if !incremental {
		return m.session.SetTags(splitTags(input))
	}

	changed := false
	for _, e := range entries {
		if e[0] == '+' {
			changed = m.session.AddTag(e[1:]) || changed
		} else {
			changed = m.session.RemoveTag(e[1:]) || changed
		}
	}
	return changed
}

func splitTags(s string) []string {
	return notes.NormalizeTags(strings.Split(s, ","))
}

func displayTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return notes.DefaultTitle
	}
	return title
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
