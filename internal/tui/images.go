package tui

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"folio-cli/internal/modal"

	tea "github.com/charmbracelet/bubbletea"
	lru "github.com/hashicorp/golang-lru/v2"
)

// imageInfo is what the viewer shows for an image: a terminal cannot draw
// the picture, so it shows its name, format and dimensions.
type imageInfo struct {
	Path   string
	Format string
	Width  int
	Height int
	Err    error
}

func (i imageInfo) summary() string {
	name := filepath.Base(i.Path)
	if i.Err != nil {
		return name + "  (unavailable)"
	}
	return fmt.Sprintf("%s  %d×%d %s", name, i.Width, i.Height, strings.ToUpper(i.Format))
}

type imageLoadedMsg struct {
	token modal.Token
	info  imageInfo
}

// imageLoader decodes image headers relative to the content root. Results
// are cached; loads run as commands and may finish in any order.
type imageLoader struct {
	root  string
	cache *lru.Cache[string, imageInfo]
	log   *slog.Logger
}

func newImageLoader(root string, log *slog.Logger) *imageLoader {
	cache, _ := lru.New[string, imageInfo](256)
	if root == "" {
		root = "."
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &imageLoader{root: root, cache: cache, log: log}
}

// Resolve maps a content image path to a file. Leading slashes are
// site-root style and resolve under the content root as well.
func (l *imageLoader) Resolve(p string) string {
	p = strings.TrimLeft(strings.TrimSpace(p), "/")
	return filepath.Join(l.root, filepath.FromSlash(p))
}

// Cached returns the info for p if a load already finished.
func (l *imageLoader) Cached(p string) (imageInfo, bool) {
	return l.cache.Get(p)
}

func (l *imageLoader) Load(tok modal.Token, p string) tea.Cmd {
	return func() tea.Msg {
		return imageLoadedMsg{token: tok, info: l.load(p)}
	}
}

func (l *imageLoader) load(p string) imageInfo {
	if info, ok := l.cache.Get(p); ok {
		return info
	}
	info := imageInfo{Path: p}
	f, err := os.Open(l.Resolve(p))
	if err != nil {
		info.Err = err
		l.log.Debug("image open failed", "path", p, "err", err)
		l.cache.Add(p, info)
		return info
	}
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		info.Err = err
		l.log.Debug("image decode failed", "path", p, "err", err)
	} else {
		info.Format = format
		info.Width = cfg.Width
		info.Height = cfg.Height
	}
	l.cache.Add(p, info)
	return info
}
