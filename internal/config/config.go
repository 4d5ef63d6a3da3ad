package config

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/marcus/reflect/internal/styles"
)

// Config is the root configuration structure.
type Config struct {
	Storage StorageConfig `json:"storage"`
	Editor  EditorConfig  `json:"editor"`
	UI      UIConfig      `json:"ui"`
	Export  ExportConfig  `json:"export"`
	Keymap  KeymapConfig  `json:"keymap"`
}

// StorageConfig selects where notes are persisted.
type StorageConfig struct {
	Backend string `json:"backend"` // "file", "sqlite" or "memory"
	Driver  string `json:"driver"`  // sqlite driver: "sqlite" (pure Go) or "sqlite3" (cgo)
	DataDir string `json:"dataDir"` // supports ~ expansion
}

// EditorConfig configures the note editor.
type EditorConfig struct {
	SaveDelay       time.Duration `json:"saveDelay"`
	RevisionDelay   time.Duration `json:"revisionDelay"`
	ShowLineNumbers bool          `json:"showLineNumbers"`
	TabWidth        int           `json:"tabWidth"`
}

// UIConfig configures UI appearance.
type UIConfig struct {
	Theme        ThemeConfig `json:"theme"`
	ShowPreview  bool        `json:"showPreview"`
	ShowFooter   bool        `json:"showFooter"`
	SidebarWidth int         `json:"sidebarWidth"`
}

// ThemeConfig configures the color theme.
type ThemeConfig struct {
	Name      string            `json:"name"`
	Overrides map[string]string `json:"overrides,omitempty"` // palette key -> hex color
}

// ExportConfig configures note export.
type ExportConfig struct {
	Dir string `json:"dir"`
}

// KeymapConfig holds key binding overrides.
type KeymapConfig struct {
	Overrides map[string]string `json:"overrides"`
}

// Defaults.
const (
	DefaultBackend       = "file"
	DefaultDriver        = "sqlite"
	DefaultDataDir       = "~/.local/share/reflect"
	DefaultExportDir     = "~/Documents/Reflect"
	DefaultTheme         = "dark"
	DefaultSaveDelay     = 500 * time.Millisecond
	DefaultRevisionDelay = time.Second
	DefaultTabWidth      = 4
	DefaultSidebarWidth  = 30

	minSidebarWidth = 16
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: DefaultBackend,
			Driver:  DefaultDriver,
			DataDir: DefaultDataDir,
		},
		Editor: EditorConfig{
			SaveDelay:       DefaultSaveDelay,
			RevisionDelay:   DefaultRevisionDelay,
			ShowLineNumbers: true,
			TabWidth:        DefaultTabWidth,
		},
		UI: UIConfig{
			Theme: ThemeConfig{
				Name:      DefaultTheme,
				Overrides: make(map[string]string),
			},
			ShowPreview:  true,
			ShowFooter:   true,
			SidebarWidth: DefaultSidebarWidth,
		},
		Export: ExportConfig{
			Dir: DefaultExportDir,
		},
		Keymap: KeymapConfig{
			Overrides: make(map[string]string),
		},
	}
}

// Validate corrects out-of-range numbers and reports invalid names.
func (c *Config) Validate() error {
	if c.Editor.SaveDelay <= 0 {
		c.Editor.SaveDelay = DefaultSaveDelay
	}
	if c.Editor.RevisionDelay <= 0 {
		c.Editor.RevisionDelay = DefaultRevisionDelay
	}
	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = DefaultTabWidth
	}
	if c.UI.SidebarWidth < minSidebarWidth {
		c.UI.SidebarWidth = DefaultSidebarWidth
	}
	if c.UI.Theme.Name == "" {
		c.UI.Theme.Name = DefaultTheme
	}

	return validation.Errors{
		"storage": validation.ValidateStruct(&c.Storage,
			validation.Field(&c.Storage.Backend, validation.Required, validation.In("file", "sqlite", "memory")),
			validation.Field(&c.Storage.Driver, validation.In("sqlite", "sqlite3")),
			validation.Field(&c.Storage.DataDir, validation.When(c.Storage.Backend != "memory", validation.Required)),
		),
		"theme": validation.ValidateStruct(&c.UI.Theme,
			validation.Field(&c.UI.Theme.Name, validation.In(themeNames()...)),
			validation.Field(&c.UI.Theme.Overrides, validation.Each(validation.By(hexColor))),
		),
	}.Filter()
}

func themeNames() []interface{} {
	names := styles.ListThemes()
	out := make([]interface{}, len(names))
	for i, n := range names {
		out[i] = n
	}
	return out
}

func hexColor(value interface{}) error {
	s, _ := value.(string)
	if !styles.IsValidHexColor(s) {
		return validation.NewError("validation_hex_color", "must be a hex color like #RRGGBB")
	}
	return nil
}
