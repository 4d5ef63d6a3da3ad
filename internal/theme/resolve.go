package theme

import (
	"github.com/marcus/reflect/internal/config"
	"github.com/marcus/reflect/internal/notes"
	"github.com/marcus/reflect/internal/styles"
)

// ResolvedTheme represents a fully-determined theme configuration.
type ResolvedTheme struct {
	BaseName  string
	Overrides map[string]string
	FromNote  bool
}

// ResolveTheme determines the effective theme for the active note.
// Priority: note.Theme > global UI.Theme > "dark".
// Palette overrides from config only apply to the configured theme.
func ResolveTheme(cfg *config.Config, note *notes.Note) ResolvedTheme {
	var resolved ResolvedTheme
	if cfg != nil {
		resolved.BaseName = cfg.UI.Theme.Name
		resolved.Overrides = cfg.UI.Theme.Overrides
	}

	if note != nil && notes.IsTheme(note.Theme) && note.Theme != resolved.BaseName {
		resolved = ResolvedTheme{BaseName: note.Theme, FromNote: true}
	}

	if resolved.BaseName == "" || !styles.IsValidTheme(resolved.BaseName) {
		resolved.BaseName = styles.DefaultThemeName
		resolved.Overrides = nil
	}

	return resolved
}

// Equal reports whether applying o would produce the same styles as r.
func (r ResolvedTheme) Equal(o ResolvedTheme) bool {
	if r.BaseName != o.BaseName || len(r.Overrides) != len(o.Overrides) {
		return false
	}
	for k, v := range r.Overrides {
		if o.Overrides[k] != v {
			return false
		}
	}
	return true
}

// ApplyResolved applies a resolved theme to the styles system.
func ApplyResolved(r ResolvedTheme) {
	if len(r.Overrides) > 0 {
		styles.ApplyThemeWithOverrides(r.BaseName, r.Overrides)
	} else {
		styles.ApplyTheme(r.BaseName)
	}
}
