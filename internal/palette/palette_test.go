package palette

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/marcus/reflect/internal/editor"
	"github.com/marcus/reflect/internal/keymap"
)

func openPalette(t *testing.T) Model {
	t.Helper()
	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	m := New()
	m.SetSize(100, 40)
	m.Open(km, keymap.ContextSidebar)
	return m
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestFilterEntries(t *testing.T) {
	entries := []PaletteEntry{
		{ID: "a", Name: "Export HTML", Description: "Export the note as an HTML page"},
		{ID: "b", Name: "New note", Description: "Create a note"},
		{ID: "c", Name: "Move note", Description: "Move the note to another folder"},
		{ID: "d", Name: "Markdown tips", Description: "Show hints"},
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty keeps all", "", []string{"a", "b", "c", "d"}},
		{"prefix first", "new", []string{"b"}},
		{"name before description", "note", []string{"b", "c", "a"}},
		{"description match", "folder", []string{"c"}},
		{"fuzzy", "mdt", []string{"d"}},
		{"no match", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterEntries(entries, tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("FilterEntries(%q) returned %d entries, want %d", tt.query, len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("entry %d = %q, want %q", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestFuzzyMatchRanges(t *testing.T) {
	ranges, ok := fuzzyMatch("markdown tips", "mar")
	if !ok || len(ranges) != 1 || ranges[0] != (MatchRange{0, 3}) {
		t.Errorf("fuzzyMatch = %v, %v", ranges, ok)
	}
	ranges, ok = fuzzyMatch("markdown tips", "mt")
	if !ok || len(ranges) != 2 {
		t.Errorf("fuzzyMatch split = %v, %v", ranges, ok)
	}
	if _, ok := fuzzyMatch("abc", "abd"); ok {
		t.Error("fuzzyMatch should fail when query is not a subsequence")
	}
}

func TestPaletteTypingFiltersAndSelects(t *testing.T) {
	m := openPalette(t)
	if len(m.Filtered()) == 0 {
		t.Fatal("palette should list commands when opened")
	}

	m = typeText(m, "export mark")
	if len(m.Filtered()) == 0 || m.Filtered()[0].ID != keymap.CmdExportMD {
		t.Fatalf("top entry = %+v, want export-markdown", m.Filtered())
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should produce a command")
	}
	sel, ok := cmd().(CommandSelectedMsg)
	if !ok || sel.CommandID != keymap.CmdExportMD {
		t.Errorf("selected = %#v", cmd())
	}
}

func TestPaletteCursorWraps(t *testing.T) {
	m := openPalette(t)
	n := len(m.Filtered())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.Cursor() != n-1 {
		t.Errorf("cursor after up from top = %d, want %d", m.Cursor(), n-1)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.Cursor() != 0 {
		t.Errorf("cursor after wrap down = %d, want 0", m.Cursor())
	}
}

func TestPaletteEscCloses(t *testing.T) {
	m := openPalette(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should produce a command")
	}
	if _, ok := cmd().(ClosedMsg); !ok {
		t.Errorf("esc produced %#v, want ClosedMsg", cmd())
	}
}

func TestPaletteView(t *testing.T) {
	m := openPalette(t)
	m = typeText(m, "zzzz")
	if !strings.Contains(xansi.Strip(m.View()), "No matching commands") {
		t.Error("empty state not rendered")
	}

	m = typeText(openPalette(t), "new note")
	view := xansi.Strip(m.View())
	if !strings.Contains(view, "New note") || !strings.Contains(view, keymap.ContextSidebar) {
		t.Errorf("view missing entries or context badge:\n%s", view)
	}
}

func TestRenderSlashMenu(t *testing.T) {
	cmds := editor.FilterCommands("")
	out := xansi.Strip(RenderSlashMenu(cmds, 1, "", 4, 40))
	if !strings.Contains(out, cmds[0].Name) || !strings.Contains(out, cmds[3].Name) {
		t.Errorf("menu missing visible commands:\n%s", out)
	}
	if strings.Contains(out, cmds[4].Description) {
		t.Errorf("menu should show only 4 rows:\n%s", out)
	}
	if !strings.Contains(out, "more") {
		t.Errorf("menu should indicate hidden commands:\n%s", out)
	}

	empty := xansi.Strip(RenderSlashMenu(nil, 0, "zz", 4, 40))
	if !strings.Contains(empty, "No matching commands") || !strings.Contains(empty, "/zz") {
		t.Errorf("empty menu = %q", empty)
	}
}
