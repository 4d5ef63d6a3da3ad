package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvDataDir = "REFLECT_DATA_DIR"
	EnvStorage = "REFLECT_STORAGE"
	EnvTheme   = "REFLECT_THEME"
)

// LoadEnvFiles reads .env files into the process environment without
// replacing variables that are already set. Missing files are skipped.
// With no paths, ./.env and ~/.config/reflect/.env are tried.
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
		if dir := ConfigDir(); dir != "" {
			paths = append(paths, filepath.Join(dir, ".env"))
		}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// ApplyEnv applies REFLECT_* environment overrides to cfg.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv(EnvStorage); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv(EnvTheme); v != "" {
		cfg.UI.Theme.Name = v
	}
}
