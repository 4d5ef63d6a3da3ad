package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Storage.Backend != "file" {
		t.Errorf("got backend %q, want 'file'", cfg.Storage.Backend)
	}
	if cfg.Editor.SaveDelay != 500*time.Millisecond {
		t.Errorf("got save delay %v, want 500ms", cfg.Editor.SaveDelay)
	}
	if cfg.Editor.RevisionDelay != time.Second {
		t.Errorf("got revision delay %v, want 1s", cfg.Editor.RevisionDelay)
	}
	if cfg.UI.Theme.Name != "dark" {
		t.Errorf("got theme %q, want 'dark'", cfg.UI.Theme.Name)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.json")
	if err != nil {
		t.Errorf("should not error on missing file: %v", err)
	}
	if cfg == nil {
		t.Fatal("should return default config")
	}
	if !filepath.IsAbs(cfg.Storage.DataDir) {
		t.Errorf("data dir %q should be expanded", cfg.Storage.DataDir)
	}
}

func TestLoadFrom_ValidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	content := []byte(`{
		"storage": {
			"backend": "sqlite",
			"driver": "sqlite3",
			"dataDir": "` + dir + `"
		},
		"editor": {
			"saveDelay": "250ms",
			"showLineNumbers": false
		},
		"ui": {
			"theme": {"name": "nord", "overrides": {"primary": "#112233"}},
			"showPreview": false
		},
		"keymap": {
			"overrides": {"ctrl+n": "new-note"}
		}
	}`)

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.Storage.Backend != "sqlite" || cfg.Storage.Driver != "sqlite3" {
		t.Errorf("storage = %+v", cfg.Storage)
	}
	if cfg.Storage.DataDir != dir {
		t.Errorf("got data dir %q, want %q", cfg.Storage.DataDir, dir)
	}
	if cfg.Editor.SaveDelay != 250*time.Millisecond {
		t.Errorf("got save delay %v, want 250ms", cfg.Editor.SaveDelay)
	}
	if cfg.Editor.ShowLineNumbers {
		t.Error("showLineNumbers should be false")
	}
	if cfg.UI.Theme.Name != "nord" || cfg.UI.Theme.Overrides["primary"] != "#112233" {
		t.Errorf("theme = %+v", cfg.UI.Theme)
	}
	if cfg.UI.ShowPreview {
		t.Error("showPreview should be false")
	}
	if cfg.Keymap.Overrides["ctrl+n"] != "new-note" {
		t.Errorf("keymap overrides = %v", cfg.Keymap.Overrides)
	}
	// Default values should still be present
	if cfg.Editor.RevisionDelay != time.Second {
		t.Errorf("revision delay should keep default, got %v", cfg.Editor.RevisionDelay)
	}
	if !cfg.UI.ShowFooter {
		t.Error("showFooter should still be true (default)")
	}
}

func TestLoadFrom_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte(`{invalid`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFrom(path)
	if err == nil {
		t.Error("should error on invalid JSON")
	}
}

func TestLoadFrom_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown backend", `{"storage": {"backend": "redis"}}`, "backend"},
		{"unknown driver", `{"storage": {"driver": "postgres"}}`, "driver"},
		{"unknown theme", `{"ui": {"theme": {"name": "neon"}}}`, "name"},
		{"bad override color", `{"ui": {"theme": {"overrides": {"primary": "purple"}}}}`, "overrides"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			if err := os.WriteFile(path, []byte(tc.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadFrom(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q should mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"ui": {"theme": {"name": "light"}}}`), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvTheme, "dracula")
	t.Setenv(EnvStorage, "memory")
	t.Setenv(EnvDataDir, filepath.Join(dir, "data"))

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.UI.Theme.Name != "dracula" {
		t.Errorf("theme = %q, env should win over file", cfg.UI.Theme.Name)
	}
	if cfg.Storage.Backend != "memory" {
		t.Errorf("backend = %q", cfg.Storage.Backend)
	}
	if cfg.Storage.DataDir != filepath.Join(dir, "data") {
		t.Errorf("data dir = %q", cfg.Storage.DataDir)
	}
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("REFLECT_THEME=sepia\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// t.Setenv registers cleanup; unset so godotenv can fill it.
	t.Setenv(EnvTheme, "")
	os.Unsetenv(EnvTheme)

	if err := LoadEnvFiles(envPath, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadEnvFiles failed: %v", err)
	}
	if got := os.Getenv(EnvTheme); got != "sepia" {
		t.Errorf("%s = %q, want sepia", EnvTheme, got)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input  string
		expect string
	}{
		{"~/.local/share/reflect", filepath.Join(home, ".local/share/reflect")},
		{"~", home},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tc := range tests {
		got := ExpandPath(tc.input)
		if got != tc.expect {
			t.Errorf("ExpandPath(%q) = %q, want %q", tc.input, got, tc.expect)
		}
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Editor.SaveDelay = -1
	cfg.Editor.RevisionDelay = 0
	cfg.UI.SidebarWidth = 2

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}

	// Out-of-range values should be corrected
	if cfg.Editor.SaveDelay != DefaultSaveDelay {
		t.Errorf("got %v, want %v after validation", cfg.Editor.SaveDelay, DefaultSaveDelay)
	}
	if cfg.Editor.RevisionDelay != DefaultRevisionDelay {
		t.Errorf("got %v, want %v after validation", cfg.Editor.RevisionDelay, DefaultRevisionDelay)
	}
	if cfg.UI.SidebarWidth != DefaultSidebarWidth {
		t.Errorf("got sidebar width %d, want %d", cfg.UI.SidebarWidth, DefaultSidebarWidth)
	}
}

func TestValidate_MemoryNeedsNoDataDir(t *testing.T) {
	cfg := Default()
	cfg.Storage.Backend = "memory"
	cfg.Storage.DataDir = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("memory backend without data dir should validate: %v", err)
	}

	cfg.Storage.Backend = "file"
	if err := cfg.Validate(); err == nil {
		t.Error("file backend without data dir should fail")
	}
}
