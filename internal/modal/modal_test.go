package modal

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// moveDialog mirrors the folder chooser: a list, then two buttons.
func moveDialog(selected *int) *Modal {
	folders := []ListItem{
		{ID: "__unfiled", Label: "Unfiled"},
		{ID: "personal", Label: "Personal", Detail: "(current)"},
		{ID: "work", Label: "Work"},
	}
	return New("Move note", WithPrimaryAction("confirm")).
		AddSection(List("folders", folders, selected)).
		AddSection(Spacer()).
		AddSection(Buttons(Btn(" Move ", "confirm"), Btn(" Cancel ", "cancel")))
}

func TestNew_Options(t *testing.T) {
	m := New("Delete folder?")
	if m.Title() != "Delete folder?" || m.width != DefaultWidth || m.variant != VariantDefault || !m.showHints {
		t.Errorf("defaults = %+v", m)
	}

	m = New("Delete folder?",
		WithWidth(44),
		WithVariant(VariantDanger),
		WithHints(false),
		WithPrimaryAction("delete"),
	)
	if m.width != 44 || m.variant != VariantDanger || m.showHints || m.primaryAction != "delete" {
		t.Errorf("options not applied: %+v", m)
	}
}

func TestSections_Render(t *testing.T) {
	ti := textinput.New()
	ti.Placeholder = "Folder name"
	shown := true

	tests := []struct {
		name       string
		section    Section
		focus      string
		contains   string
		focusables []string
	}{
		{"text", Text("Notes inside move to Unfiled."), "", "Unfiled", nil},
		{"spacer", Spacer(), "", " ", nil},
		{"input", InputWithLabel("name", "Name", &ti), "name", "Name", []string{"name"}},
		{
			"buttons", Buttons(Btn(" Delete ", "delete", BtnDanger()), Btn(" Cancel ", "cancel")),
			"delete", "Delete", []string{"delete", "cancel"},
		},
		{"when shown", When(func() bool { return shown }, Text("Tags: work")), "", "Tags: work", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := tt.section.Render(50, tt.focus)
			if !strings.Contains(res.Content, tt.contains) {
				t.Errorf("content %q missing %q", res.Content, tt.contains)
			}
			var ids []string
			for _, f := range res.Focusables {
				ids = append(ids, f.ID)
			}
			if strings.Join(ids, ",") != strings.Join(tt.focusables, ",") {
				t.Errorf("focusables = %v, want %v", ids, tt.focusables)
			}
		})
	}
}

func TestWhen_Hidden(t *testing.T) {
	s := When(func() bool { return false }, Buttons(Btn(" Save ", "save")))
	res := s.Render(50, "save")
	if res.Content != "" || len(res.Focusables) != 0 {
		t.Errorf("hidden section rendered %+v", res)
	}
	if action, _ := s.Update(keyMsg("enter"), "save"); action != "" {
		t.Errorf("hidden section returned action %q", action)
	}
}

func TestHandleKey_FocusCycle(t *testing.T) {
	selected := 0
	m := moveDialog(&selected)
	m.Render(80, 24)

	steps := []struct {
		key  string
		want string
	}{
		{"", "folders"},
		{"tab", "confirm"},
		{"tab", "cancel"},
		{"tab", "folders"},
		{"shift+tab", "cancel"},
	}
	for _, s := range steps {
		if s.key != "" {
			m.HandleKey(keyMsg(s.key))
		}
		if got := m.FocusedID(); got != s.want {
			t.Fatalf("after %q focus = %q, want %q", s.key, got, s.want)
		}
	}
}

func TestHandleKey_Actions(t *testing.T) {
	tests := []struct {
		name  string
		focus string
		keys  []string
		want  string
		index int
	}{
		{"esc cancels", "", []string{"esc"}, "cancel", 0},
		{"enter on list returns item", "", []string{"down", "enter"}, "personal", 1},
		{"vim keys move list", "", []string{"j", "j", "k", "enter"}, "personal", 1},
		{"enter on cancel button", "cancel", []string{"enter"}, "cancel", 0},
		{"enter on move button", "confirm", []string{"enter"}, "confirm", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selected := 0
			m := moveDialog(&selected)
			m.Render(80, 24)
			if tt.focus != "" {
				m.SetFocus(tt.focus)
			}
			var action string
			for _, k := range tt.keys {
				action, _ = m.HandleKey(keyMsg(k))
			}
			if action != tt.want {
				t.Errorf("action = %q, want %q", action, tt.want)
			}
			if selected != tt.index {
				t.Errorf("selected = %d, want %d", selected, tt.index)
			}
		})
	}
}

func TestHandleKey_NoFocusables(t *testing.T) {
	m := New("Markdown tips").AddSection(Text("# Heading"))
	m.Render(80, 24)
	if action, _ := m.HandleKey(keyMsg("enter")); action != "" {
		t.Errorf("enter with nothing focused = %q", action)
	}
}

func TestList_Bounds(t *testing.T) {
	selected := 0
	s := List("themes", []ListItem{{ID: "dark", Label: "dark"}, {ID: "nord", Label: "nord"}}, &selected)
	s.Render(40, "themes")

	for _, k := range []string{"up", "G", "down"} {
		s.Update(keyMsg(k), "themes")
	}
	if selected != 1 {
		t.Errorf("selected = %d, want 1", selected)
	}
	s.Update(keyMsg("g"), "themes")
	if selected != 0 {
		t.Errorf("selected after g = %d, want 0", selected)
	}
	s.Update(keyMsg("down"), "other")
	if selected != 0 {
		t.Error("unfocused list should ignore keys")
	}
}

func TestList_Empty(t *testing.T) {
	s := List("revisions", nil, nil)
	if res := s.Render(40, ""); !strings.Contains(res.Content, "(no items)") {
		t.Errorf("empty list = %q", res.Content)
	}
}

func TestMeasureHeight(t *testing.T) {
	tests := []struct {
		content string
		want    int
	}{
		{"", 0},
		{"\n", 0},
		{"Welcome", 1},
		{"Welcome\nto Reflect", 2},
		{"Welcome\n", 1},
	}
	for _, tt := range tests {
		if got := measureHeight(tt.content); got != tt.want {
			t.Errorf("measureHeight(%q) = %d, want %d", tt.content, got, tt.want)
		}
	}
}

func TestSliceLines(t *testing.T) {
	content := "a\nb\nc\nd"
	tests := []struct {
		offset, height int
		pad            bool
		want           string
	}{
		{0, 2, true, "a\nb"},
		{2, 2, false, "c\nd"},
		{3, 3, true, "d\n\n"},
		{3, 3, false, "d"},
		{0, 6, false, "a\nb\nc\nd"},
	}
	for _, tt := range tests {
		if got := sliceLines(content, tt.offset, tt.height, tt.pad); got != tt.want {
			t.Errorf("sliceLines(%d, %d, %v) = %q, want %q", tt.offset, tt.height, tt.pad, got, tt.want)
		}
	}
}

func TestReset(t *testing.T) {
	selected := 0
	m := moveDialog(&selected)
	m.Render(80, 24)
	m.SetFocus("cancel")
	m.ScrollBy(3)

	m.Reset()
	if m.FocusedID() != "folders" || m.scrollOffset != 0 {
		t.Errorf("after reset focus = %q scroll = %d", m.FocusedID(), m.scrollOffset)
	}
}

func TestInputTypingAndPrimaryAction(t *testing.T) {
	ti := textinput.New()
	m := New("New Folder", WithPrimaryAction("confirm")).
		AddSection(InputWithLabel("name", "Name", &ti)).
		AddSection(Buttons(Btn(" Create ", "confirm"), Btn(" Cancel ", "cancel")))
	m.Render(80, 24)

	if m.FocusedID() != "name" {
		t.Fatalf("expected input focused first, got %q", m.FocusedID())
	}
	for _, r := range "Ideas" {
		m.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	if ti.Value() != "Ideas" {
		t.Errorf("input value = %q, want Ideas", ti.Value())
	}

	action, _ := m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if action != "confirm" {
		t.Errorf("expected primary action on Enter in input, got %q", action)
	}
}

func TestListScrollIndicators(t *testing.T) {
	selected := 6
	items := make([]ListItem, 8)
	for i := range items {
		items[i] = ListItem{ID: string(rune('a' + i)), Label: "Item " + string(rune('A'+i))}
	}
	s := List("list", items, &selected, WithMaxVisible(3))
	res := s.Render(40, "list")

	if !strings.Contains(res.Content, "more above") {
		t.Errorf("expected top indicator, got %q", res.Content)
	}
	if !strings.Contains(res.Content, "more below") {
		t.Errorf("expected bottom indicator, got %q", res.Content)
	}
	if !strings.Contains(res.Content, "Item G") {
		t.Errorf("selected item should be visible, got %q", res.Content)
	}
	if res.Focusables[0].OffsetY != 1 {
		t.Errorf("focusable offset = %d, want 1", res.Focusables[0].OffsetY)
	}
}

func TestListDetail(t *testing.T) {
	selected := 0
	s := List("list", []ListItem{{ID: "dark", Label: "dark", Detail: "(current)"}}, &selected)
	res := s.Render(40, "")
	if !strings.Contains(res.Content, "(current)") {
		t.Errorf("expected detail text, got %q", res.Content)
	}
}

func TestRenderContainsTitleAndHints(t *testing.T) {
	m := New("Delete note?", WithVariant(VariantDanger)).
		AddSection(Text("This cannot be undone.")).
		AddSection(Buttons(Btn(" Delete ", "delete", BtnDanger())))
	out := m.Render(80, 24)

	for _, want := range []string{"Delete note?", "This cannot be undone.", "Esc cancel"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}

func TestTallContentScrollsToFocus(t *testing.T) {
	m := New("Tall", WithHints(false))
	for i := 0; i < 30; i++ {
		m.AddSection(Text("filler"))
	}
	m.AddSection(Buttons(Btn(" OK ", "ok")))
	ti := textinput.New()
	m.sections = append([]Section{Input("first", &ti)}, m.sections...)

	m.Render(80, 20)
	if m.scrollOffset != 0 {
		t.Fatalf("initial scroll = %d", m.scrollOffset)
	}
	m.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	if m.FocusedID() != "ok" {
		t.Fatalf("focus = %q, want ok", m.FocusedID())
	}
	if m.scrollOffset == 0 {
		t.Error("expected modal to scroll to the focused button")
	}
}
