package keymap

// Focus contexts.
const (
	ContextSidebar = "sidebar"
	ContextFilter  = "sidebar-filter"
	ContextTitle   = "title"
	ContextEditor  = "editor"
	ContextPreview = "preview"
	ContextSearch  = "note-search"
	ContextSlash   = "slash-menu"
	ContextPalette = "palette"
	ContextDialog  = "dialog"
)

// Command ids.
const (
	CmdQuit          = "quit"
	CmdNewNote       = "new-note"
	CmdNewFolder     = "new-folder"
	CmdSave          = "save"
	CmdPalette       = "toggle-palette"
	CmdTogglePreview = "toggle-preview"
	CmdFocusNext     = "focus-next"
	CmdFocusPrev     = "focus-prev"
	CmdFocusSidebar  = "focus-sidebar"
	CmdFocusEditor   = "focus-editor"
	CmdChooseTheme   = "choose-theme"
	CmdDefaultTheme  = "default-theme"
	CmdTips          = "markdown-tips"

	CmdCursorUp      = "cursor-up"
	CmdCursorDown    = "cursor-down"
	CmdCursorTop     = "cursor-top"
	CmdCursorBottom  = "cursor-bottom"
	CmdSelect        = "select"
	CmdToggleFolder  = "toggle-folder"
	CmdRename        = "rename"
	CmdDelete        = "delete"
	CmdMoveNote      = "move-note"
	CmdFilterNotes   = "filter-notes"
	CmdClearFilter   = "clear-filter"
	CmdEditTags      = "edit-tags"
	CmdYankContent   = "yank-content"
	CmdYankTitle     = "yank-title"
	CmdExportHTML    = "export-html"
	CmdExportMD      = "export-markdown"
	CmdExport        = "export"
	CmdRevisions     = "revisions"
	CmdGrowSidebar   = "grow-sidebar"
	CmdShrinkSidebar = "shrink-sidebar"

	CmdUndo          = "undo"
	CmdRedo          = "redo"
	CmdBold          = "bold"
	CmdItalic        = "italic"
	CmdStrikethrough = "strikethrough"
	CmdCode          = "code"
	CmdLink          = "link"
	CmdHeading       = "heading"
	CmdQuote         = "quote"
	CmdBullet        = "bullet"
	CmdChecklist     = "checklist"
	CmdSetMark       = "set-mark"
	CmdSearchNote    = "search-note"
	CmdNextMatch     = "next-match"
	CmdPrevMatch     = "prev-match"
	CmdCancel        = "cancel"
	CmdConfirm       = "confirm"
	CmdScrollUp      = "scroll-up"
	CmdScrollDown    = "scroll-down"
)

// DefaultBindings returns the default key bindings.
func DefaultBindings() []Binding {
	return []Binding{
		// Global bindings
		{Key: "ctrl+c", Command: CmdQuit, Context: Global},
		{Key: "ctrl+n", Command: CmdNewNote, Context: Global},
		{Key: "ctrl+s", Command: CmdSave, Context: Global},
		{Key: "ctrl+p", Command: CmdPalette, Context: Global},
		{Key: "ctrl+e", Command: CmdTogglePreview, Context: Global},
		{Key: "ctrl+t", Command: CmdChooseTheme, Context: Global},
		{Key: "tab", Command: CmdFocusNext, Context: Global},
		{Key: "shift+tab", Command: CmdFocusPrev, Context: Global},
		{Key: "f1", Command: CmdTips, Context: Global},

		// Sidebar context
		{Key: "q", Command: CmdQuit, Context: ContextSidebar},
		{Key: "j", Command: CmdCursorDown, Context: ContextSidebar},
		{Key: "down", Command: CmdCursorDown, Context: ContextSidebar},
		{Key: "k", Command: CmdCursorUp, Context: ContextSidebar},
		{Key: "up", Command: CmdCursorUp, Context: ContextSidebar},
		{Key: "g", Command: CmdCursorTop, Context: ContextSidebar},
		{Key: "home", Command: CmdCursorTop, Context: ContextSidebar},
		{Key: "G", Command: CmdCursorBottom, Context: ContextSidebar},
		{Key: "end", Command: CmdCursorBottom, Context: ContextSidebar},
		{Key: "enter", Command: CmdSelect, Context: ContextSidebar},
		{Key: "l", Command: CmdSelect, Context: ContextSidebar},
		{Key: " ", Command: CmdToggleFolder, Context: ContextSidebar},
		{Key: "n", Command: CmdNewNote, Context: ContextSidebar},
		{Key: "N", Command: CmdNewFolder, Context: ContextSidebar},
		{Key: "r", Command: CmdRename, Context: ContextSidebar},
		{Key: "d", Command: CmdDelete, Context: ContextSidebar},
		{Key: "delete", Command: CmdDelete, Context: ContextSidebar},
		{Key: "m", Command: CmdMoveNote, Context: ContextSidebar},
		{Key: "/", Command: CmdFilterNotes, Context: ContextSidebar},
		{Key: "esc", Command: CmdClearFilter, Context: ContextSidebar},
		{Key: "t", Command: CmdEditTags, Context: ContextSidebar},
		{Key: "T", Command: CmdChooseTheme, Context: ContextSidebar},
		{Key: "D", Command: CmdDefaultTheme, Context: ContextSidebar},
		{Key: "y", Command: CmdYankContent, Context: ContextSidebar},
		{Key: "Y", Command: CmdYankTitle, Context: ContextSidebar},
		{Key: "x", Command: CmdExportHTML, Context: ContextSidebar},
		{Key: "X", Command: CmdExportMD, Context: ContextSidebar},
		{Key: "e", Command: CmdExport, Context: ContextSidebar},
		{Key: "v", Command: CmdRevisions, Context: ContextSidebar},
		{Key: "p", Command: CmdTogglePreview, Context: ContextSidebar},
		{Key: ">", Command: CmdGrowSidebar, Context: ContextSidebar},
		{Key: "<", Command: CmdShrinkSidebar, Context: ContextSidebar},
		{Key: "?", Command: CmdTips, Context: ContextSidebar},

		// Sidebar filter input
		{Key: "esc", Command: CmdClearFilter, Context: ContextFilter},
		{Key: "enter", Command: CmdConfirm, Context: ContextFilter},
		{Key: "down", Command: CmdConfirm, Context: ContextFilter},

		// Title input
		{Key: "enter", Command: CmdFocusEditor, Context: ContextTitle},
		{Key: "down", Command: CmdFocusEditor, Context: ContextTitle},
		{Key: "esc", Command: CmdFocusSidebar, Context: ContextTitle},

		// Editor context (typing keys go to the textarea)
		{Key: "esc", Command: CmdFocusSidebar, Context: ContextEditor},
		{Key: "ctrl+z", Command: CmdUndo, Context: ContextEditor},
		{Key: "ctrl+y", Command: CmdRedo, Context: ContextEditor},
		{Key: "ctrl+b", Command: CmdBold, Context: ContextEditor},
		{Key: "alt+i", Command: CmdItalic, Context: ContextEditor},
		{Key: "alt+s", Command: CmdStrikethrough, Context: ContextEditor},
		{Key: "alt+c", Command: CmdCode, Context: ContextEditor},
		{Key: "alt+k", Command: CmdLink, Context: ContextEditor},
		{Key: "alt+h", Command: CmdHeading, Context: ContextEditor},
		{Key: "alt+q", Command: CmdQuote, Context: ContextEditor},
		{Key: "alt+l", Command: CmdBullet, Context: ContextEditor},
		{Key: "alt+x", Command: CmdChecklist, Context: ContextEditor},
		{Key: "alt+m", Command: CmdSetMark, Context: ContextEditor},
		{Key: "ctrl+f", Command: CmdSearchNote, Context: ContextEditor},
		{Key: "alt+v", Command: CmdRevisions, Context: ContextEditor},

		// Preview context
		{Key: "esc", Command: CmdFocusSidebar, Context: ContextPreview},
		{Key: "q", Command: CmdFocusSidebar, Context: ContextPreview},
		{Key: "j", Command: CmdScrollDown, Context: ContextPreview},
		{Key: "down", Command: CmdScrollDown, Context: ContextPreview},
		{Key: "k", Command: CmdScrollUp, Context: ContextPreview},
		{Key: "up", Command: CmdScrollUp, Context: ContextPreview},
		{Key: "g", Command: CmdCursorTop, Context: ContextPreview},
		{Key: "G", Command: CmdCursorBottom, Context: ContextPreview},

		// In-note search
		{Key: "esc", Command: CmdCancel, Context: ContextSearch},
		{Key: "enter", Command: CmdNextMatch, Context: ContextSearch},
		{Key: "down", Command: CmdNextMatch, Context: ContextSearch},
		{Key: "ctrl+n", Command: CmdNextMatch, Context: ContextSearch},
		{Key: "up", Command: CmdPrevMatch, Context: ContextSearch},
		{Key: "ctrl+p", Command: CmdPrevMatch, Context: ContextSearch},
		{Key: "shift+enter", Command: CmdPrevMatch, Context: ContextSearch},

		// Slash command menu
		{Key: "esc", Command: CmdCancel, Context: ContextSlash},
		{Key: "enter", Command: CmdSelect, Context: ContextSlash},
		{Key: "tab", Command: CmdSelect, Context: ContextSlash},
		{Key: "up", Command: CmdCursorUp, Context: ContextSlash},
		{Key: "ctrl+p", Command: CmdCursorUp, Context: ContextSlash},
		{Key: "down", Command: CmdCursorDown, Context: ContextSlash},
		{Key: "ctrl+n", Command: CmdCursorDown, Context: ContextSlash},

		// Command palette
		{Key: "esc", Command: CmdCancel, Context: ContextPalette},
		{Key: "enter", Command: CmdSelect, Context: ContextPalette},
		{Key: "up", Command: CmdCursorUp, Context: ContextPalette},
		{Key: "ctrl+p", Command: CmdCursorUp, Context: ContextPalette},
		{Key: "down", Command: CmdCursorDown, Context: ContextPalette},
		{Key: "ctrl+n", Command: CmdCursorDown, Context: ContextPalette},

		// Modal dialogs
		{Key: "esc", Command: CmdCancel, Context: ContextDialog},
		{Key: "enter", Command: CmdConfirm, Context: ContextDialog},
		{Key: "up", Command: CmdCursorUp, Context: ContextDialog},
		{Key: "down", Command: CmdCursorDown, Context: ContextDialog},
		{Key: "tab", Command: CmdCursorDown, Context: ContextDialog},
		{Key: "shift+tab", Command: CmdCursorUp, Context: ContextDialog},
	}
}

// DefaultCommands returns the commands listed in the command palette.
func DefaultCommands() []Command {
	return []Command{
		{ID: CmdNewNote, Name: "New note", Description: "Create a note in the selected folder"},
		{ID: CmdNewFolder, Name: "New folder", Description: "Create a folder"},
		{ID: CmdSave, Name: "Save", Description: "Save the current note now"},
		{ID: CmdRename, Name: "Rename folder", Description: "Rename the selected folder"},
		{ID: CmdDelete, Name: "Delete", Description: "Delete the selected note or folder"},
		{ID: CmdMoveNote, Name: "Move note", Description: "Move the note to another folder"},
		{ID: CmdEditTags, Name: "Edit tags", Description: "Set the note's tags"},
		{ID: CmdChooseTheme, Name: "Choose theme", Description: "Set the note's display theme"},
		{ID: CmdDefaultTheme, Name: "Default theme", Description: "Set the theme for notes without their own"},
		{ID: CmdRevisions, Name: "Revisions", Description: "Browse and restore saved revisions"},
		{ID: CmdExportHTML, Name: "Export HTML", Description: "Export the note as an HTML page"},
		{ID: CmdExportMD, Name: "Export Markdown", Description: "Export the note with YAML frontmatter"},
		{ID: CmdExport, Name: "Export again", Description: "Export in the last used format"},
		{ID: CmdYankContent, Name: "Copy content", Description: "Copy the note's Markdown to the clipboard"},
		{ID: CmdYankTitle, Name: "Copy title", Description: "Copy the note's title to the clipboard"},
		{ID: CmdTogglePreview, Name: "Toggle preview", Description: "Cycle split, editor-only and preview-only layouts"},
		{ID: CmdFilterNotes, Name: "Search notes", Description: "Filter the sidebar by title, content or tag"},
		{ID: CmdSearchNote, Name: "Find in note", Description: "Search within the current note"},
		{ID: CmdTips, Name: "Markdown tips", Description: "Show Markdown syntax hints"},
		{ID: CmdQuit, Name: "Quit", Description: "Save and exit Reflect"},
	}
}

// RegisterDefaults registers all default bindings and commands with the registry.
func RegisterDefaults(r *Registry) {
	for _, b := range DefaultBindings() {
		r.RegisterBinding(b)
	}
	for _, c := range DefaultCommands() {
		r.RegisterCommand(c)
	}
}
