package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	configDir  = ".config/reflect"
	configFile = "config.json"
)

// testConfigPath overrides ConfigPath in tests.
var testConfigPath string

// SetTestConfigPath points Load and Save at path. Tests only.
func SetTestConfigPath(path string) { testConfigPath = path }

// ResetTestConfigPath restores the default config location.
func ResetTestConfigPath() { testConfigPath = "" }

// rawConfig is the JSON-unmarshaling intermediary.
type rawConfig struct {
	Storage rawStorageConfig `json:"storage"`
	Editor  rawEditorConfig  `json:"editor"`
	UI      rawUIConfig      `json:"ui"`
	Export  ExportConfig     `json:"export"`
	Keymap  KeymapConfig     `json:"keymap"`
}

type rawStorageConfig struct {
	Backend string `json:"backend"`
	Driver  string `json:"driver"`
	DataDir string `json:"dataDir"`
}

type rawEditorConfig struct {
	SaveDelay       string `json:"saveDelay"`
	RevisionDelay   string `json:"revisionDelay"`
	ShowLineNumbers *bool  `json:"showLineNumbers"`
	TabWidth        *int   `json:"tabWidth"`
}

type rawUIConfig struct {
	Theme        ThemeConfig `json:"theme"`
	ShowPreview  *bool       `json:"showPreview"`
	ShowFooter   *bool       `json:"showFooter"`
	SidebarWidth *int        `json:"sidebarWidth"`
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ~/.config/reflect/config.json.
// Environment overrides are applied after the file.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = ConfigPath()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			var raw rawConfig
			if err := json.Unmarshal(data, &raw); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
			mergeConfig(cfg, &raw)
		case !os.IsNotExist(err):
			return nil, err
		}
	}

	ApplyEnv(cfg)

	cfg.Storage.DataDir = ExpandPath(cfg.Storage.DataDir)
	cfg.Export.Dir = ExpandPath(cfg.Export.Dir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// mergeConfig merges raw config values into the config.
func mergeConfig(cfg *Config, raw *rawConfig) {
	// Storage
	if raw.Storage.Backend != "" {
		cfg.Storage.Backend = raw.Storage.Backend
	}
	if raw.Storage.Driver != "" {
		cfg.Storage.Driver = raw.Storage.Driver
	}
	if raw.Storage.DataDir != "" {
		cfg.Storage.DataDir = raw.Storage.DataDir
	}

	// Editor
	if raw.Editor.SaveDelay != "" {
		if d, err := time.ParseDuration(raw.Editor.SaveDelay); err == nil {
			cfg.Editor.SaveDelay = d
		}
	}
	if raw.Editor.RevisionDelay != "" {
		if d, err := time.ParseDuration(raw.Editor.RevisionDelay); err == nil {
			cfg.Editor.RevisionDelay = d
		}
	}
	if raw.Editor.ShowLineNumbers != nil {
		cfg.Editor.ShowLineNumbers = *raw.Editor.ShowLineNumbers
	}
	if raw.Editor.TabWidth != nil {
		cfg.Editor.TabWidth = *raw.Editor.TabWidth
	}

	// UI
	if raw.UI.Theme.Name != "" {
		cfg.UI.Theme.Name = raw.UI.Theme.Name
	}
	for k, v := range raw.UI.Theme.Overrides {
		cfg.UI.Theme.Overrides[k] = v
	}
	if raw.UI.ShowPreview != nil {
		cfg.UI.ShowPreview = *raw.UI.ShowPreview
	}
	if raw.UI.ShowFooter != nil {
		cfg.UI.ShowFooter = *raw.UI.ShowFooter
	}
	if raw.UI.SidebarWidth != nil {
		cfg.UI.SidebarWidth = *raw.UI.SidebarWidth
	}

	// Export
	if raw.Export.Dir != "" {
		cfg.Export.Dir = raw.Export.Dir
	}

	// Keymap
	for k, v := range raw.Keymap.Overrides {
		cfg.Keymap.Overrides[k] = v
	}
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	if testConfigPath != "" {
		return testConfigPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}

// ConfigDir returns the directory holding config.json and state.json.
func ConfigDir() string {
	if p := ConfigPath(); p != "" {
		return filepath.Dir(p)
	}
	return ""
}
