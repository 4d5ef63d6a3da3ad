// Package markdown renders note content for the preview pane.
package markdown

import (
	"strconv"
	"strings"
	"sync"

	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"

	"github.com/marcus/reflect/internal/styles"
)

const (
	// maxCacheEntries bounds the rendered-output cache.
	maxCacheEntries = 64
	// fallbackSyntaxTheme is used when a theme names an unknown chroma style.
	fallbackSyntaxTheme = "monokai"
	minWidth            = 10
)

type rendererKey struct {
	theme string
	width int
}

// Renderer renders Markdown with glamour, caching output by
// content, width and theme.
type Renderer struct {
	mu        sync.Mutex
	renderers map[rendererKey]*glamour.TermRenderer
	cache     map[uint64][]string
}

// NewRenderer creates a renderer and warms it for the current theme.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{
		renderers: make(map[rendererKey]*glamour.TermRenderer),
		cache:     make(map[uint64][]string),
	}
	if _, err := r.termRenderer(styles.GetCurrentThemeName(), 80); err != nil {
		return nil, err
	}
	return r, nil
}

// Render renders content wrapped to width using the named theme.
func (r *Renderer) Render(content string, width int, theme string) ([]string, error) {
	if width < minWidth {
		width = minWidth
	}
	key := cacheKey(content, width, theme)

	r.mu.Lock()
	if lines, ok := r.cache[key]; ok {
		r.mu.Unlock()
		return lines, nil
	}
	r.mu.Unlock()

	tr, err := r.termRenderer(theme, width)
	if err != nil {
		return nil, err
	}
	out, err := tr.Render(content)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(strings.Trim(out, "\n"), "\n")

	r.mu.Lock()
	if len(r.cache) >= maxCacheEntries {
		r.cache = make(map[uint64][]string)
	}
	r.cache[key] = lines
	r.mu.Unlock()

	return lines, nil
}

// CacheLen returns the number of cached renders.
func (r *Renderer) CacheLen() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cache)
}

func (r *Renderer) termRenderer(theme string, width int) (*glamour.TermRenderer, error) {
	k := rendererKey{theme: theme, width: width}

	r.mu.Lock()
	defer r.mu.Unlock()
	if tr, ok := r.renderers[k]; ok {
		return tr, nil
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStyles(StyleConfig(theme)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	r.renderers[k] = tr
	return tr, nil
}

func cacheKey(content string, width int, theme string) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(theme)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(strconv.Itoa(width))
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(content)
	return d.Sum64()
}

// StyleConfig builds the glamour style for a Reflect theme: the theme's
// glamour base, its heading and link colors, and its chroma code style.
func StyleConfig(theme string) ansi.StyleConfig {
	c := styles.GetTheme(theme).Colors

	var cfg ansi.StyleConfig
	switch c.MarkdownTheme {
	case "light":
		cfg = glamourstyles.LightStyleConfig
	case "dracula":
		cfg = glamourstyles.DraculaStyleConfig
	default:
		cfg = glamourstyles.DarkStyleConfig
	}

	heading := c.Primary
	link := c.Link
	cfg.Heading.Color = &heading
	cfg.Link.Color = &link
	cfg.LinkText.Color = &link

	cfg.CodeBlock.Chroma = nil
	cfg.CodeBlock.Theme = SyntaxTheme(c.SyntaxTheme)
	return cfg
}

// SyntaxTheme returns name if chroma knows it, else the fallback style.
func SyntaxTheme(name string) string {
	if _, ok := chromastyles.Registry[name]; ok {
		return name
	}
	return fallbackSyntaxTheme
}
