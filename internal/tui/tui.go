// Package tui is the interactive portfolio: a profile header, a scrollable
// tab strip with an animated indicator, a content page per tab (markdown or
// the project gallery) and the project viewer overlay.
package tui

import (
	"log/slog"
	"time"

	"folio-cli/internal/model"
	"folio-cli/internal/store"
	"folio-cli/internal/theme"

	tea "github.com/charmbracelet/bubbletea"
)

type Options struct {
	Content *model.Content
	// ContentRoot resolves relative image paths.
	ContentRoot string
	// Store receives the UI state on exit. A zero Store disables it.
	Store store.Store
	// State is restored on start (nil starts fresh).
	State *store.TUIState
	Theme *theme.Preference

	Glyphs         string
	ScrollPadding  int
	ResizeDebounce time.Duration
	Logger         *slog.Logger
}

func Run(opts Options) error {
	applyColorProfilePreference()
	applyGlyphPreference(opts.Glyphs)
	if opts.Theme != nil {
		applyDarkBackground(opts.Theme.IsDark())
	}

	m, err := newAppModel(opts)
	if err != nil {
		return err
	}
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()

	fm, ok := final.(appModel)
	if !ok {
		fm = m
	}
	fm.close()
	if serr := fm.store.SaveTUIState(fm.tuiState()); serr != nil {
		fm.log.Warn("save tui state failed", "err", serr)
	}
	return err
}
