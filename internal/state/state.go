package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Preview pane layouts.
const (
	PreviewSplit  = "split"   // editor and preview side by side
	PreviewHidden = "hidden"  // editor only
	PreviewOnly   = "preview" // preview only
)

// State holds persistent user preferences.
type State struct {
	// Sidebar width in columns (0 = use config default)
	SidebarWidth int `json:"sidebarWidth,omitempty"`

	// PreviewMode is one of the Preview* constants ("" = use config default)
	PreviewMode string `json:"previewMode,omitempty"`

	// Folder ids the user collapsed in the sidebar
	CollapsedFolders []string `json:"collapsedFolders,omitempty"`

	// Last export format chosen ("html" or "md")
	ExportFormat string `json:"exportFormat,omitempty"`
}

var (
	current *State
	mu      sync.RWMutex
	path    string
)

// Init loads state from the default location.
func Init() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return InitWithDir(filepath.Join(home, ".config", "reflect"))
}

// InitWithDir loads state from a specified directory.
// This is primarily for testing to avoid reading real user state.
func InitWithDir(dir string) error {
	path = filepath.Join(dir, "state.json")
	return Load()
}

// Load reads state from disk.
func Load() error {
	mu.Lock()
	defer mu.Unlock()

	current = &State{}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil // no state file yet, use defaults
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(data, current)
}

// Save writes state to disk.
func Save() error {
	mu.RLock()
	defer mu.RUnlock()

	if current == nil || path == "" {
		return nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// update applies fn to the current state under lock, then saves.
func update(fn func(s *State)) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	fn(current)
	mu.Unlock()
	return Save()
}

// GetSidebarWidth returns the saved sidebar width.
// Returns 0 if no preference is saved (use default).
func GetSidebarWidth() int {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return 0
	}
	return current.SidebarWidth
}

// SetSidebarWidth saves the sidebar width.
func SetSidebarWidth(width int) error {
	return update(func(s *State) { s.SidebarWidth = width })
}

// GetPreviewMode returns the saved preview layout, or "" when unset.
func GetPreviewMode() string {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return ""
	}
	switch current.PreviewMode {
	case PreviewSplit, PreviewHidden, PreviewOnly:
		return current.PreviewMode
	}
	return ""
}

// SetPreviewMode saves the preview layout.
func SetPreviewMode(mode string) error {
	return update(func(s *State) { s.PreviewMode = mode })
}

// IsFolderCollapsed reports whether the folder is collapsed in the sidebar.
func IsFolderCollapsed(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return false
	}
	for _, c := range current.CollapsedFolders {
		if c == id {
			return true
		}
	}
	return false
}

// SetFolderCollapsed records whether a folder is collapsed.
func SetFolderCollapsed(id string, collapsed bool) error {
	return update(func(s *State) {
		set := make(map[string]bool, len(s.CollapsedFolders)+1)
		for _, c := range s.CollapsedFolders {
			set[c] = true
		}
		if collapsed {
			set[id] = true
		} else {
			delete(set, id)
		}
		s.CollapsedFolders = sortedKeys(set)
	})
}

// PruneCollapsedFolders forgets collapsed ids that are not in live.
// Nothing is written when no id is dropped.
func PruneCollapsedFolders(live []string) error {
	keep := make(map[string]bool, len(live))
	for _, id := range live {
		keep[id] = true
	}

	mu.Lock()
	if current == nil {
		mu.Unlock()
		return nil
	}
	pruned := current.CollapsedFolders[:0:0]
	for _, c := range current.CollapsedFolders {
		if keep[c] {
			pruned = append(pruned, c)
		}
	}
	changed := len(pruned) != len(current.CollapsedFolders)
	current.CollapsedFolders = pruned
	mu.Unlock()

	if !changed {
		return nil
	}
	return Save()
}

// GetExportFormat returns the last export format, or "" when unset.
func GetExportFormat() string {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return ""
	}
	return current.ExportFormat
}

// SetExportFormat saves the last export format.
func SetExportFormat(format string) error {
	return update(func(s *State) { s.ExportFormat = format })
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
