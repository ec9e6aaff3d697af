// Package config resolves runtime settings from the environment (and an
// optional .env file in the working directory). Command-line flags are layered
// on top by internal/cli.
package config

import (
	"fmt"
	"strings"
	"time"

	"folio-cli/internal/format"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// Dir holds folio.sqlite and tui_state.json. Empty means ~/.folio.
	Dir string `env:"FOLIO_DIR"`
	// ContentPath overrides the embedded portfolio (.yaml/.yml/.json).
	ContentPath string `env:"FOLIO_CONTENT"`
	Format      string `env:"FOLIO_FORMAT" envDefault:"json"`

	Theme  string `env:"FOLIO_TUI_THEME" envDefault:"auto"`
	Glyphs string `env:"FOLIO_TUI_GLYPHS" envDefault:"unicode"`

	LogPath string `env:"FOLIO_LOG"`
	Debug   bool   `env:"FOLIO_DEBUG"`

	// ScrollPadding is the gap, in cells, kept between a tab scrolled into view
	// and the strip edge.
	ScrollPadding  int           `env:"FOLIO_SCROLL_PADDING" envDefault:"2"`
	ResizeDebounce time.Duration `env:"FOLIO_RESIZE_DEBOUNCE" envDefault:"10ms"`
}

// Load reads .env (if present) and parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse parses the environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Theme)) {
	case "", "auto", "light", "dark":
	default:
		return fmt.Errorf("FOLIO_TUI_THEME: unknown theme %q (light|dark|auto)", c.Theme)
	}
	if !format.Valid(c.Format) {
		return fmt.Errorf("FOLIO_FORMAT: unknown format %q (%s)", c.Format, strings.Join(format.Formats, "|"))
	}
	if c.ScrollPadding < 0 {
		return fmt.Errorf("FOLIO_SCROLL_PADDING must be >= 0, got %d", c.ScrollPadding)
	}
	if c.ResizeDebounce < 0 {
		return fmt.Errorf("FOLIO_RESIZE_DEBOUNCE must be >= 0, got %s", c.ResizeDebounce)
	}
	return nil
}
