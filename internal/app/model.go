package app

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/reflect/internal/config"
	"github.com/marcus/reflect/internal/editor"
	"github.com/marcus/reflect/internal/keymap"
	"github.com/marcus/reflect/internal/markdown"
	"github.com/marcus/reflect/internal/notes"
	"github.com/marcus/reflect/internal/palette"
	"github.com/marcus/reflect/internal/state"
	"github.com/marcus/reflect/internal/styles"
	"github.com/marcus/reflect/internal/theme"
)

// pane is a focusable region of the main layout.
type pane int

const (
	paneSidebar pane = iota
	paneTitle
	paneEditor
	panePreview
)

// ModalKind identifies an app-level overlay. Lower values take priority
// for rendering and input routing.
type ModalKind int

const (
	ModalNone    ModalKind = iota
	ModalPalette           // command palette
	ModalDialog            // prompt, chooser or confirmation
	ModalTips              // Markdown tips
)

// activeModal returns the highest-priority open overlay.
func (m *Model) activeModal() ModalKind {
	switch {
	case m.showPalette:
		return ModalPalette
	case m.dialog != nil:
		return ModalDialog
	case m.showTips:
		return ModalTips
	default:
		return ModalNone
	}
}

// Options configures New.
type Options struct {
	Config   *config.Config
	Store    *notes.Store
	Keymap   *keymap.Registry
	Renderer *markdown.Renderer

	// Changes delivers storage keys modified outside the app. Optional.
	Changes <-chan string

	Logger  *slog.Logger
	Now     func() time.Time
	Version string
}

// Model is the root Bubble Tea model.
type Model struct {
	cfg      *config.Config
	store    *notes.Store
	session  *editor.Session
	keymap   *keymap.Registry
	renderer *markdown.Renderer
	logger   *slog.Logger
	now      func() time.Time
	changes  <-chan string
	version  string

	width, height int
	ready         bool

	focus        pane
	sidebarWidth int
	previewMode  string

	// Sidebar
	items       []sidebarItem
	cursor      int
	scroll      int
	filterInput textinput.Model
	filtering   bool

	// Editor
	titleInput  textinput.Model
	textarea    textarea.Model
	searchInput textinput.Model
	searching   bool
	slash       *slashMenu
	mark        int // rune offset of the selection anchor, -1 when unset

	// Preview
	preview    viewport.Model
	previewFor uint64

	// Overlays
	palette     palette.Model
	showPalette bool
	dialog      *dialog
	showTips    bool

	resolved theme.ResolvedTheme

	// Status/toast messages
	statusMsg     string
	statusExpiry  time.Time
	statusIsError bool

	quitPending bool

	intro IntroModel
}

// New creates the application model and loads the active note.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	km := opts.Keymap
	if km == nil {
		km = keymap.NewRegistry()
		keymap.RegisterDefaults(km)
	}

	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "search notes"
	filter.CharLimit = 100

	title := textinput.New()
	title.Prompt = ""
	title.Placeholder = notes.DefaultTitle
	title.CharLimit = 200

	search := textinput.New()
	search.Prompt = "find: "
	search.CharLimit = 100

	ta := textarea.New()
	ta.Placeholder = "Start writing… type / for commands"
	ta.ShowLineNumbers = cfg.Editor.ShowLineNumbers
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Prompt = ""

	m := Model{
		cfg:          cfg,
		store:        opts.Store,
		session:      editor.NewSession(cfg.Editor.SaveDelay, cfg.Editor.RevisionDelay),
		keymap:       km,
		renderer:     opts.Renderer,
		logger:       logger,
		now:          now,
		changes:      opts.Changes,
		version:      opts.Version,
		focus:        paneSidebar,
		sidebarWidth: initialSidebarWidth(cfg),
		previewMode:  initialPreviewMode(cfg),
		filterInput:  filter,
		titleInput:   title,
		textarea:     ta,
		searchInput:  search,
		mark:         -1,
		preview:      viewport.New(0, 0),
		palette:      palette.New(),
		intro:        NewIntroModel(),
	}

	if note := m.store.ActiveNote(); note != nil {
		m.session.Load(*note)
	}
	m.syncEditorFromSession()
	m.applyNoteTheme()
	m.rebuildSidebar()
	m.cursorToActive()
	return m
}

// Init starts the clock, the intro animation and the change feed.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(), IntroTick()}
	if m.changes != nil {
		cmds = append(cmds, waitForChange(m.changes))
	}
	return tea.Batch(cmds...)
}

func initialSidebarWidth(cfg *config.Config) int {
	if w := state.GetSidebarWidth(); w > 0 {
		return w
	}
	return cfg.UI.SidebarWidth
}

func initialPreviewMode(cfg *config.Config) string {
	if mode := state.GetPreviewMode(); mode != "" {
		return mode
	}
	if cfg.UI.ShowPreview {
		return state.PreviewSplit
	}
	return state.PreviewHidden
}

// ShowToast displays a temporary status message.
func (m *Model) ShowToast(msg string, duration time.Duration, isError bool) {
	m.statusMsg = msg
	m.statusIsError = isError
	m.statusExpiry = m.now().Add(duration)
}

// ClearToast clears an expired toast.
func (m *Model) ClearToast() {
	if m.statusMsg != "" && m.now().After(m.statusExpiry) {
		m.statusMsg = ""
		m.statusIsError = false
	}
}

// activeContext returns the keymap context for the current focus.
func (m *Model) activeContext() string {
	switch {
	case m.showPalette:
		return keymap.ContextPalette
	case m.dialog != nil, m.showTips:
		return keymap.ContextDialog
	case m.slash != nil:
		return keymap.ContextSlash
	case m.searching:
		return keymap.ContextSearch
	case m.filtering:
		return keymap.ContextFilter
	}
	switch m.focus {
	case paneTitle:
		return keymap.ContextTitle
	case paneEditor:
		return keymap.ContextEditor
	case panePreview:
		return keymap.ContextPreview
	}
	return keymap.ContextSidebar
}

// setFocus moves focus to p, updating which input owns the cursor.
func (m *Model) setFocus(p pane) tea.Cmd {
	if p == panePreview && m.previewMode == state.PreviewHidden {
		p = paneEditor
	}
	if (p == paneTitle || p == paneEditor) && m.previewMode == state.PreviewOnly {
		p = panePreview
	}
	if (p == paneTitle || p == paneEditor || p == panePreview) && !m.session.Loaded() {
		p = paneSidebar
	}

	m.focus = p
	m.closeSlash()
	m.mark = -1
	m.titleInput.Blur()
	m.textarea.Blur()

	switch p {
	case paneTitle:
		return m.titleInput.Focus()
	case paneEditor:
		return m.textarea.Focus()
	}
	return nil
}

// focusOrder lists the panes reachable with tab in the current layout.
func (m *Model) focusOrder() []pane {
	order := []pane{paneSidebar}
	if !m.session.Loaded() {
		return order
	}
	switch m.previewMode {
	case state.PreviewOnly:
		return append(order, panePreview)
	case state.PreviewHidden:
		return append(order, paneTitle, paneEditor)
	}
	return append(order, paneTitle, paneEditor, panePreview)
}

func (m *Model) cycleFocus(delta int) tea.Cmd {
	order := m.focusOrder()
	idx := 0
	for i, p := range order {
		if p == m.focus {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(order)) % len(order)
	return m.setFocus(order[idx])
}

// syncEditorFromSession copies the session draft into the widgets.
func (m *Model) syncEditorFromSession() {
	m.titleInput.SetValue(m.session.Title())
	m.titleInput.CursorEnd()
	m.textarea.SetValue(m.session.Content())
	m.previewFor = 0
	m.closeSlash()
	m.mark = -1
	m.searching = false
	m.searchInput.SetValue("")
}

// applyNoteTheme resolves the theme for the draft and applies it when it
// changed.
func (m *Model) applyNoteTheme() {
	var note *notes.Note
	if m.session.Loaded() {
		d := m.session.Draft()
		note = &d
	}
	r := theme.ResolveTheme(m.cfg, note)
	if r.Equal(m.resolved) && styles.GetCurrentThemeName() == r.BaseName {
		return
	}
	theme.ApplyResolved(r)
	m.resolved = r
	m.applyWidgetStyles()
	m.previewFor = 0
}

// applyWidgetStyles restyles the bubbles widgets from the current theme.
func (m *Model) applyWidgetStyles() {
	focused, blurred := textarea.DefaultStyles()
	focused.Base = lipgloss.NewStyle()
	focused.Text = styles.Body
	focused.CursorLine = lipgloss.NewStyle().Background(styles.BgTertiary)
	focused.LineNumber = styles.LineNumber
	focused.CursorLineNumber = styles.LineNumber.Foreground(styles.Primary)
	focused.Placeholder = styles.Subtle
	focused.EndOfBuffer = styles.Subtle
	blurred.Base = lipgloss.NewStyle()
	blurred.Text = styles.Muted
	blurred.LineNumber = styles.LineNumber
	blurred.CursorLineNumber = styles.LineNumber
	blurred.Placeholder = styles.Subtle
	blurred.EndOfBuffer = styles.Subtle
	m.textarea.FocusedStyle = focused
	m.textarea.BlurredStyle = blurred
	// Focus and Blur repoint the textarea at the style just assigned.
	if m.textarea.Focused() {
		m.textarea.Focus()
	} else {
		m.textarea.Blur()
	}

	m.titleInput.TextStyle = styles.Title
	m.titleInput.PlaceholderStyle = styles.Subtle
	m.filterInput.PromptStyle = styles.KeyHint
	m.filterInput.TextStyle = styles.Body
	m.searchInput.PromptStyle = styles.Muted
	m.searchInput.TextStyle = styles.Body
}
