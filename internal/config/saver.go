package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// saveConfig is the JSON-marshaling intermediary that uses string durations.
type saveConfig struct {
	Storage StorageConfig    `json:"storage"`
	Editor  saveEditorConfig `json:"editor"`
	UI      UIConfig         `json:"ui"`
	Export  ExportConfig     `json:"export"`
	Keymap  KeymapConfig     `json:"keymap"`
}

type saveEditorConfig struct {
	SaveDelay       string `json:"saveDelay,omitempty"`
	RevisionDelay   string `json:"revisionDelay,omitempty"`
	ShowLineNumbers *bool  `json:"showLineNumbers,omitempty"`
	TabWidth        *int   `json:"tabWidth,omitempty"`
}

// toSaveConfig converts Config to the JSON-serializable format.
func toSaveConfig(cfg *Config) saveConfig {
	return saveConfig{
		Storage: cfg.Storage,
		Editor: saveEditorConfig{
			SaveDelay:       cfg.Editor.SaveDelay.String(),
			RevisionDelay:   cfg.Editor.RevisionDelay.String(),
			ShowLineNumbers: &cfg.Editor.ShowLineNumbers,
			TabWidth:        &cfg.Editor.TabWidth,
		},
		UI:     cfg.UI,
		Export: cfg.Export,
		Keymap: cfg.Keymap,
	}
}

// Save writes the config to ~/.config/reflect/config.json. Top-level
// keys in an existing file that Config does not manage are preserved.
func Save(cfg *Config) error {
	path := ConfigPath()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	merged := make(map[string]json.RawMessage)
	if existing, err := os.ReadFile(path); err == nil {
		// An unparseable file is replaced wholesale.
		_ = json.Unmarshal(existing, &merged)
	}

	data, err := json.Marshal(toSaveConfig(cfg))
	if err != nil {
		return err
	}
	var managed map[string]json.RawMessage
	if err := json.Unmarshal(data, &managed); err != nil {
		return err
	}
	for k, v := range managed {
		merged[k] = v
	}

	out, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0644)
}

// SaveTheme updates only the theme name in config and saves.
func SaveTheme(themeName string) error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	cfg.UI.Theme.Name = themeName
	return Save(cfg)
}
