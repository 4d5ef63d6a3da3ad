package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/reflect/internal/app"
	"github.com/marcus/reflect/internal/config"
	"github.com/marcus/reflect/internal/export"
	"github.com/marcus/reflect/internal/keymap"
	"github.com/marcus/reflect/internal/kv"
	"github.com/marcus/reflect/internal/markdown"
	"github.com/marcus/reflect/internal/notes"
	"github.com/marcus/reflect/internal/state"
	"github.com/marcus/reflect/internal/theme"
)

// Version is set at build time via ldflags
var Version = ""

var (
	configPath   = flag.String("config", "", "path to config file")
	envFile      = flag.String("env-file", "", "load environment variables from this file")
	debugFlag    = flag.Bool("debug", false, "enable debug logging")
	logFile      = flag.String("log-file", "", "write logs to this file (default ~/.config/reflect/reflect.log)")
	ephemeral    = flag.Bool("ephemeral", false, "keep notes in memory only")
	importFlag   = flag.Bool("import", false, "import the Markdown files given as arguments and exit")
	versionFlag  = flag.Bool("version", false, "print version and exit")
	shortVersion = flag.Bool("v", false, "print version and exit (short)")
)

func main() {
	flag.Parse()

	if *versionFlag || *shortVersion {
		fmt.Printf("reflect version %s\n", effectiveVersion(Version))
		os.Exit(0)
	}

	var envFiles []string
	if *envFile != "" {
		envFiles = append(envFiles, *envFile)
	}
	if err := config.LoadEnvFiles(envFiles...); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load env file: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *ephemeral {
		cfg.Storage.Backend = kv.BackendMemory
	}

	// The TUI owns the terminal, so logs go to a file.
	logOut, closeLog := openLog(*logFile)
	defer closeLog()
	logLevel := slog.LevelInfo
	if *debugFlag {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Load persistent state (ignore errors - state is optional)
	if err := state.Init(); err != nil {
		logger.Debug("state init", "err", err)
	}

	backend, err := kv.Open(kv.Options{
		Backend: cfg.Storage.Backend,
		Dir:     cfg.Storage.DataDir,
		Driver:  cfg.Storage.Driver,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer backend.Close()

	store, err := notes.Open(backend, notes.WithLogger(logger))
	if err != nil {
		// Defaults are loaded; keep going so the user can still write.
		logger.Warn("loading notes failed, starting with defaults", "err", err)
	}

	if *importFlag {
		code := runImport(store, flag.Args())
		backend.Close()
		closeLog()
		os.Exit(code)
	}

	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	for key, cmdID := range cfg.Keymap.Overrides {
		km.SetUserOverride(key, cmdID)
	}

	theme.ApplyResolved(theme.ResolveTheme(cfg, nil))

	renderer, err := markdown.NewRenderer()
	if err != nil {
		logger.Warn("markdown renderer unavailable, preview shows raw text", "err", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var changes <-chan string
	if fs, ok := backend.(*kv.FileStore); ok {
		changes, err = fs.Watch(ctx)
		if err != nil {
			logger.Warn("watching data dir failed", "dir", fs.Dir(), "err", err)
		}
	}

	model := app.New(app.Options{
		Config:   cfg,
		Store:    store,
		Keymap:   km,
		Renderer: renderer,
		Changes:  changes,
		Logger:   logger,
		Version:  effectiveVersion(Version),
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}

// runImport imports each path as a note and returns the exit code.
func runImport(store *notes.Store, paths []string) int {
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "reflect -import: no files given")
		return 2
	}

	var docs []export.Document
	code := 0
	for _, p := range paths {
		doc, err := export.ParseFile(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skip %s: %v\n", p, err)
			code = 1
			continue
		}
		docs = append(docs, doc)
	}

	created, err := export.Import(store, docs)
	for _, n := range created {
		fmt.Printf("imported %q\n", n.Title)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Import failed: %v\n", err)
		return 1
	}
	return code
}

// openLog opens the log destination, falling back to discarding logs
// when the file cannot be created.
func openLog(path string) (io.Writer, func()) {
	if path == "" {
		dir := config.ConfigDir()
		if dir == "" {
			return io.Discard, func() {}
		}
		path = filepath.Join(dir, "reflect.log")
	}
	path = config.ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return io.Discard, func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return io.Discard, func() {}
	}
	return f, func() { _ = f.Close() }
}

// effectiveVersion returns the version string, with fallback to build info.
func effectiveVersion(v string) string {
	if v != "" {
		return v
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var revision string
	var dirty bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}

	if revision != "" {
		ver := "devel+" + revision
		if len(ver) > 20 {
			ver = ver[:20]
		}
		if dirty {
			ver += "+dirty"
		}
		return ver
	}

	return "devel"
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: reflect [options]\n")
		fmt.Fprintf(os.Stderr, "       reflect -import file.md...\n\n")
		fmt.Fprintf(os.Stderr, "A Markdown notes app for the terminal.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
}
