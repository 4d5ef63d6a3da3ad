package app

import (
	"reflect"
	"testing"

	"github.com/marcus/reflect/internal/notes"
)

func TestBuildSidebarItems(t *testing.T) {
	folders := []notes.Folder{
		{ID: "personal", Name: "Personal"},
		{ID: "work", Name: "Work"},
	}
	visible := []notes.Note{
		{ID: "a", Title: "Groceries", FolderID: notes.StringPtr("personal")},
		{ID: "b", Title: "Loose"},
		{ID: "c", Title: "Standup", FolderID: notes.StringPtr("work")},
		{ID: "d", Title: "Orphan", FolderID: notes.StringPtr("gone")},
	}

	type row struct {
		kind  itemKind
		id    string
		count int
		depth int
	}
	rows := func(items []sidebarItem) []row {
		out := make([]row, 0, len(items))
		for _, it := range items {
			id := it.noteID
			if it.kind == itemFolder {
				id = it.folderID
			}
			out = append(out, row{it.kind, id, it.count, it.depth})
		}
		return out
	}

	tests := []struct {
		name      string
		visible   []notes.Note
		searching bool
		collapsed map[string]bool
		want      []row
	}{
		{
			name:    "unfiled first then folders",
			visible: visible,
			want: []row{
				{itemNote, "b", 0, 0},
				{itemNote, "d", 0, 0},
				{itemFolder, "personal", 1, 0},
				{itemNote, "a", 0, 1},
				{itemFolder, "work", 1, 0},
				{itemNote, "c", 0, 1},
			},
		},
		{
			name:      "collapsed folder hides notes",
			visible:   visible,
			collapsed: map[string]bool{"work": true},
			want: []row{
				{itemNote, "b", 0, 0},
				{itemNote, "d", 0, 0},
				{itemFolder, "personal", 1, 0},
				{itemNote, "a", 0, 1},
				{itemFolder, "work", 1, 0},
			},
		},
		{
			name:      "search hides empty folders and expands",
			visible:   visible[2:3],
			searching: true,
			collapsed: map[string]bool{"work": true},
			want: []row{
				{itemFolder, "work", 1, 0},
				{itemNote, "c", 0, 1},
			},
		},
		{
			name: "empty",
			want: []row{
				{itemFolder, "personal", 0, 0},
				{itemFolder, "work", 0, 0},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildSidebarItems(tt.visible, folders, tt.searching, func(id string) bool {
				return tt.collapsed[id]
			})
			if !reflect.DeepEqual(rows(got), tt.want) {
				t.Errorf("rows = %+v\nwant %+v", rows(got), tt.want)
			}
		})
	}
}

func TestEnsureCursorVisible(t *testing.T) {
	tests := []struct {
		name                   string
		cursor, scroll, height int
		want                   int
	}{
		{"inside window", 3, 0, 10, 0},
		{"above window", 2, 5, 10, 2},
		{"below window", 12, 0, 10, 3},
		{"last row of window", 9, 0, 10, 0},
		{"no height", 4, 2, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ensureCursorVisible(tt.cursor, tt.scroll, tt.height); got != tt.want {
				t.Errorf("ensureCursorVisible(%d, %d, %d) = %d, want %d",
					tt.cursor, tt.scroll, tt.height, got, tt.want)
			}
		})
	}
}

func TestTruncateTitle(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello world", 5, "hell…"},
		{"two\nlines", 20, "two lines"},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		if got := truncateTitle(tt.in, tt.width); got != tt.want {
			t.Errorf("truncateTitle(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestClampInt(t *testing.T) {
	tests := []struct{ v, lo, hi, want int }{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{3, 4, 2, 4},
	}
	for _, tt := range tests {
		if got := clampInt(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("clampInt(%d, %d, %d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestSplitTags(t *testing.T) {
	got := splitTags(" Work, ideas ,, work,Later")
	want := []string{"work", "ideas", "later"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitTags = %v, want %v", got, want)
	}
	if got := splitTags(""); len(got) != 0 {
		t.Errorf("splitTags(\"\") = %v, want empty", got)
	}
}
