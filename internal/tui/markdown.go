package tui

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	lru "github.com/hashicorp/golang-lru/v2"
)

// markdownRenderer renders tab bodies with glamour. Renderers are cached by
// style and wrap width (creating one is slow), rendered output by
// style, width and source.
type markdownRenderer struct {
	mu        sync.Mutex
	renderers *lru.Cache[string, *glamour.TermRenderer]
	rendered  *lru.Cache[string, string]
}

func newMarkdownRenderer() *markdownRenderer {
	renderers, _ := lru.New[string, *glamour.TermRenderer](16)
	rendered, _ := lru.New[string, string](128)
	return &markdownRenderer{renderers: renderers, rendered: rendered}
}

func markdownStyle(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}

func (r *markdownRenderer) Render(md string, width int, dark bool) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}
	style := markdownStyle(dark)
	rkey := style + ":" + strconv.Itoa(width)
	okey := rkey + ":" + md
	if out, ok := r.rendered.Get(okey); ok {
		return out
	}

	tr, err := r.renderer(rkey, style, width)
	if err != nil {
		return md
	}
	r.mu.Lock()
	out, err := tr.Render(md)
	r.mu.Unlock()
	if err != nil {
		return md
	}
	out = strings.TrimRight(out, "\n")
	r.rendered.Add(okey, out)
	return out
}

func (r *markdownRenderer) renderer(key, style string, width int) (*glamour.TermRenderer, error) {
	if tr, ok := r.renderers.Get(key); ok {
		return tr, nil
	}
	cfg := markdownStyleConfig(style)
	zero := uint(0)
	// The page supplies its own margins.
	cfg.Document.Margin = &zero
	// Avoid WithAutoStyle: it can block on terminal background queries.
	tr, err := glamour.NewTermRenderer(
		glamour.WithStyles(cfg),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	r.renderers.Add(key, tr)
	return tr, nil
}

// Len is the number of cached rendered bodies.
func (r *markdownRenderer) Len() int { return r.rendered.Len() }

func markdownStyleConfig(style string) ansi.StyleConfig {
	var cfg ansi.StyleConfig
	if style == "light" {
		cfg = styles.LightStyleConfig
	} else {
		cfg = styles.DarkStyleConfig
	}
	applyFolioMarkdownPalette(&cfg, style)
	return cfg
}

func applyFolioMarkdownPalette(cfg *ansi.StyleConfig, style string) {
	headingColor := mdColor(colorSurfaceFg, style)
	cfg.Heading.Color = headingColor
	cfg.H1.Color = headingColor
	cfg.H2.Color = mdColor(colorAccent, style)
	cfg.H3.Color = headingColor

	linkColor := mdColor(colorAccent, style)
	cfg.Link.Color = linkColor
	cfg.Link.Underline = mdBoolPtr(true)
	cfg.LinkText.Color = linkColor

	cfg.Text.Color = mdColor(colorSurfaceFg, style)
	cfg.Strong.Color = nil
	cfg.Emph.Color = nil
	cfg.BlockQuote.Faint = mdBoolPtr(false)
}

func mdColor(c lipgloss.AdaptiveColor, style string) *string {
	if style == "light" {
		return mdStrPtr(c.Light)
	}
	return mdStrPtr(c.Dark)
}

func mdStrPtr(s string) *string { return &s }
func mdBoolPtr(b bool) *bool    { return &b }
