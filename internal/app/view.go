package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/marcus/reflect/internal/keymap"
	"github.com/marcus/reflect/internal/markdown"
	"github.com/marcus/reflect/internal/state"
	"github.com/marcus/reflect/internal/styles"
	"github.com/marcus/reflect/internal/ui"
)

// View renders the entire application UI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.width < minWidth || m.height < minHeight {
		msg := fmt.Sprintf("Terminal too small (%dx%d)\nMinimum: %dx%d",
			m.width, m.height, minWidth, minHeight)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			styles.StatusModified.Render(msg))
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderContent(m.contentHeight()))
	if m.cfg.UI.ShowFooter {
		b.WriteString("\n")
		b.WriteString(m.renderFooter())
	}
	bg := b.String()

	if !m.cfg.UI.ShowFooter && m.statusMsg != "" {
		bg = ui.OverlayBottomRight(bg, m.renderToast(), m.width, m.height)
	}

	switch m.activeModal() {
	case ModalPalette:
		return ui.OverlayModal(bg, m.palette.View(), m.width, m.height)
	case ModalDialog:
		return ui.OverlayModal(bg, m.dialog.modal.Render(m.width, m.height), m.width, m.height)
	case ModalTips:
		return ui.OverlayModal(bg, m.renderTips(), m.width, m.height)
	}
	return bg
}

// renderHeader draws the logo, the note breadcrumb and the theme chips.
func (m Model) renderHeader() string {
	logoWidth := lipgloss.Width(styles.BarTitle.Render(" " + introText))
	var logo string
	if m.intro.Active && !m.intro.Done {
		logo = lipgloss.NewStyle().Width(logoWidth).Render(" " + m.intro.View())
	} else {
		logo = styles.BarTitle.Render(" " + introText)
	}

	var chips []string
	switch m.previewMode {
	case state.PreviewHidden:
		chips = append(chips, styles.BarChip.Render("editor"))
	case state.PreviewOnly:
		chips = append(chips, styles.BarChip.Render("preview"))
	}
	themeChip := styles.BarChip
	if m.resolved.FromNote {
		themeChip = styles.BarChipActive
	}
	chips = append(chips, themeChip.Render(styles.GetCurrentThemeName()))
	right := strings.Join(chips, " ") + " "

	crumbWidth := max(0, m.width-logoWidth-lipgloss.Width(right)-2)
	crumb := ""
	if m.session.Loaded() {
		parts := []string{}
		if d := m.session.Draft(); d.FolderID != nil {
			if f := m.store.Folder(*d.FolderID); f != nil {
				parts = append(parts, f.Name)
			}
		}
		parts = append(parts, displayTitle(m.session.Title()))
		crumb = styles.Subtitle.Render(truncateTitle(" / "+strings.Join(parts, " / "), crumbWidth))
	}

	gap := max(1, m.width-lipgloss.Width(logo)-lipgloss.Width(crumb)-lipgloss.Width(right))
	line := logo + crumb + strings.Repeat(" ", gap) + right
	return styles.Header.Width(m.width).MaxWidth(m.width).Render(line)
}

// renderContent joins the visible panels.
func (m Model) renderContent(height int) string {
	sw, ew, pw := m.paneWidths()
	inner := max(1, height-2)

	panels := []string{
		panel(m.focus == paneSidebar, sw, height, m.renderSidebar(sw-4, inner)),
	}
	if ew > 0 {
		active := m.focus == paneTitle || m.focus == paneEditor
		panels = append(panels, panel(active, ew, height, m.renderEditor(ew-4, inner)))
	}
	if pw > 0 {
		panels = append(panels, panel(m.focus == panePreview, pw, height, m.renderPreview(pw-4, inner)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, panels...)
}

// panel wraps body in a bordered box of the given outer size.
func panel(active bool, width, height int, body string) string {
	style := styles.PanelInactive
	if active {
		style = styles.PanelActive
	}
	return style.
		Width(max(0, width-2)).
		Height(max(0, height-2)).
		MaxHeight(height).
		Render(body)
}

func (m Model) renderEditor(width, height int) string {
	if !m.session.Loaded() {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			styles.Muted.Render("No note selected. Press n to create one."))
	}

	lines := []string{m.titleInput.View(), m.renderMeta(width)}
	if m.searching {
		status := m.searchStatus()
		lines = append(lines, m.searchInput.View()+" "+status)
	}
	lines = append(lines, m.textarea.View())
	if m.slash != nil {
		lines = append(lines, m.renderSlash(width))
	}
	lines = append(lines, m.renderEditorStatus(width))
	return strings.Join(lines, "\n")
}

// renderMeta shows the draft's tags and pinned theme.
func (m Model) renderMeta(width int) string {
	d := m.session.Draft()
	var parts []string
	for _, t := range d.Tags {
		parts = append(parts, styles.TagChip.Render("#"+t))
	}
	if d.Theme != "" {
		parts = append(parts, styles.Muted.Render("theme: "+d.Theme))
	}
	if len(parts) == 0 {
		return styles.Subtle.Render(truncateTitle("no tags (t to add)", width))
	}
	line := strings.Join(parts, " ")
	if lipgloss.Width(line) > width {
		line = styles.Muted.Render(truncateTitle(fmt.Sprintf("%d tags: %s", len(d.Tags), strings.Join(d.Tags, ", ")), width))
	}
	return line
}

// renderEditorStatus shows save state, undo availability and position.
func (m Model) renderEditorStatus(width int) string {
	st := m.session.State()
	var stateText string
	switch {
	case m.session.Dirty():
		stateText = styles.StatusModified.Render("● " + st.String())
	default:
		stateText = styles.StatusSaved.Render("✓ " + st.String())
	}

	h := m.session.History()
	undo := styles.Subtle.Render("undo")
	if h.CanUndo() {
		undo = styles.Muted.Render("undo")
	}
	redo := styles.Subtle.Render("redo")
	if h.CanRedo() {
		redo = styles.Muted.Render("redo")
	}

	li := m.textarea.LineInfo()
	pos := styles.Muted.Render(fmt.Sprintf("Ln %d, Col %d", m.textarea.Line()+1, li.StartColumn+li.ColumnOffset+1))

	left := stateText + "  " + undo + " " + redo
	if m.mark >= 0 {
		left += "  " + styles.KeyHint.Render("mark")
	}
	gap := max(1, width-lipgloss.Width(left)-lipgloss.Width(pos))
	return left + strings.Repeat(" ", gap) + pos
}

func (m Model) renderPreview(width, height int) string {
	header := styles.SectionHeader.Render("Preview")
	if m.preview.TotalLineCount() > m.preview.Height {
		pct := fmt.Sprintf("%3.f%%", m.preview.ScrollPercent()*100)
		gap := max(1, width-lipgloss.Width(header)-runewidth.StringWidth(pct))
		header += strings.Repeat(" ", gap) + styles.Muted.Render(pct)
	}
	if !m.session.Loaded() {
		return header
	}
	return header + "\n" + m.preview.View()
}

// renderToast renders the current status message.
func (m Model) renderToast() string {
	style := styles.ToastSuccess
	if m.statusIsError {
		style = styles.ToastError
	}
	return style.Render(truncateTitle(m.statusMsg, max(10, m.width/2)))
}

func (m Model) renderFooter() string {
	var status string
	if m.statusMsg != "" {
		status = m.renderToast()
	}

	statusWidth := lipgloss.Width(status)
	hints := renderHintLineTruncated(m.footerHints(), m.width-statusWidth-2)
	spacing := max(0, m.width-lipgloss.Width(hints)-statusWidth)
	footer := hints + strings.Repeat(" ", spacing) + status

	return styles.Footer.Width(m.width).MaxWidth(m.width).Render(footer)
}

type footerHint struct {
	keys  string
	label string
}

// footerSpecs lists the hints shown per focus context, most useful first.
var footerSpecs = map[string][]struct{ id, label string }{
	keymap.ContextSidebar: {
		{keymap.CmdSelect, "open"},
		{keymap.CmdNewNote, "new"},
		{keymap.CmdNewFolder, "folder"},
		{keymap.CmdFilterNotes, "search"},
		{keymap.CmdMoveNote, "move"},
		{keymap.CmdDelete, "delete"},
		{keymap.CmdPalette, "commands"},
		{keymap.CmdQuit, "quit"},
	},
	keymap.ContextFilter: {
		{keymap.CmdConfirm, "done"},
		{keymap.CmdClearFilter, "clear"},
	},
	keymap.ContextTitle: {
		{keymap.CmdFocusEditor, "edit"},
		{keymap.CmdFocusSidebar, "back"},
		{keymap.CmdPalette, "commands"},
	},
	keymap.ContextEditor: {
		{keymap.CmdFocusSidebar, "back"},
		{keymap.CmdSave, "save"},
		{keymap.CmdSearchNote, "find"},
		{keymap.CmdUndo, "undo"},
		{keymap.CmdBold, "bold"},
		{keymap.CmdSetMark, "mark"},
		{keymap.CmdPalette, "commands"},
	},
	keymap.ContextPreview: {
		{keymap.CmdScrollDown, "down"},
		{keymap.CmdScrollUp, "up"},
		{keymap.CmdFocusSidebar, "back"},
		{keymap.CmdTogglePreview, "layout"},
	},
	keymap.ContextSearch: {
		{keymap.CmdNextMatch, "next"},
		{keymap.CmdPrevMatch, "prev"},
		{keymap.CmdCancel, "close"},
	},
	keymap.ContextSlash: {
		{keymap.CmdSelect, "insert"},
		{keymap.CmdCursorDown, "next"},
		{keymap.CmdCancel, "close"},
	},
}

func (m Model) footerHints() []footerHint {
	ctx := m.activeContext()
	keysByCmd := bindingKeysByCommand(m.keymap.BindingsForContext(ctx), ctx)

	var hints []footerHint
	for _, spec := range footerSpecs[ctx] {
		keys := keysByCmd[spec.id]
		if len(keys) == 0 {
			continue
		}
		hints = append(hints, footerHint{keys: keys[0], label: spec.label})
	}
	return hints
}

// bindingKeysByCommand groups keys by command. Keys bound in ctx come
// before inherited global ones.
func bindingKeysByCommand(bindings []keymap.Binding, ctx string) map[string][]string {
	keysByCmd := make(map[string][]string, len(bindings))
	for _, local := range []bool{true, false} {
		for _, b := range bindings {
			if (b.Context == ctx) == local {
				keysByCmd[b.Command] = append(keysByCmd[b.Command], b.Key)
			}
		}
	}
	return keysByCmd
}

// renderHintLineTruncated renders hints but stops adding when maxWidth is exceeded.
func renderHintLineTruncated(hints []footerHint, maxWidth int) string {
	if len(hints) == 0 || maxWidth <= 0 {
		return ""
	}
	var result string
	for _, hint := range hints {
		part := fmt.Sprintf("%s %s", styles.KeyHint.Render(hint.keys), hint.label)
		candidate := part
		if result != "" {
			candidate = result + "  " + part
		}
		if lipgloss.Width(candidate) > maxWidth {
			break
		}
		result = candidate
	}
	return result
}

// renderTips renders the Markdown cheat sheet.
func (m Model) renderTips() string {
	var b strings.Builder
	b.WriteString(styles.ModalTitle.Render("Markdown tips"))
	if m.version != "" {
		b.WriteString(styles.Subtle.Render("  reflect " + m.version))
	}
	b.WriteString("\n")

	syntaxWidth := 0
	for _, h := range markdown.Hints {
		syntaxWidth = max(syntaxWidth, runewidth.StringWidth(h.Syntax))
	}
	for _, h := range markdown.Hints {
		b.WriteString(styles.Code.Render(ui.PadRight(h.Syntax, syntaxWidth)))
		b.WriteString("  ")
		b.WriteString(styles.Muted.Render(h.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.Subtle.Render("Type / in the editor for snippets. Press any key to close."))
	return styles.ModalBox.Render(b.String())
}
