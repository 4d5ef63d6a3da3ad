package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSave_PreservesUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	initial := []byte(`{
  "templates": [
    {"name": "Daily", "body": "# {{date}}"}
  ],
  "customKey": "should survive"
}`)
	if err := os.WriteFile(path, initial, 0644); err != nil {
		t.Fatal(err)
	}

	// Point Save() at our temp file
	SetTestConfigPath(path)
	defer ResetTestConfigPath()

	cfg := Default()
	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal saved config: %v", err)
	}

	if _, ok := raw["templates"]; !ok {
		t.Error("Save() deleted 'templates' key from config.json")
	}
	if _, ok := raw["customKey"]; !ok {
		t.Error("Save() deleted 'customKey' from config.json")
	}

	// Verify managed keys are also present
	for _, key := range []string{"storage", "editor", "ui", "export", "keymap"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("Save() did not write %q key", key)
		}
	}
}

func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.json")

	SetTestConfigPath(path)
	defer ResetTestConfigPath()

	cfg := Default()
	cfg.Storage.DataDir = dir
	cfg.Editor.SaveDelay = 750 * time.Millisecond
	cfg.Editor.ShowLineNumbers = false
	cfg.UI.Theme.Name = "sepia"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.Editor.SaveDelay != 750*time.Millisecond {
		t.Errorf("save delay = %v", loaded.Editor.SaveDelay)
	}
	if loaded.Editor.ShowLineNumbers {
		t.Error("showLineNumbers should round-trip as false")
	}
	if loaded.UI.Theme.Name != "sepia" {
		t.Errorf("theme = %q", loaded.UI.Theme.Name)
	}
}

func TestSaveTheme(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	SetTestConfigPath(path)
	defer ResetTestConfigPath()

	if err := SaveTheme("nord"); err != nil {
		t.Fatalf("SaveTheme failed: %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UI.Theme.Name != "nord" {
		t.Errorf("theme = %q, want nord", cfg.UI.Theme.Name)
	}
}
