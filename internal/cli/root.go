package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"folio-cli/internal/config"
	"folio-cli/internal/format"
	"folio-cli/internal/logger"
	"folio-cli/internal/model"
	"folio-cli/internal/store"
	"folio-cli/internal/theme"
	"folio-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir         string
	ContentPath string
	PrettyJSON  bool
	Format      string
	Debug       bool

	cfg config.Config
	log *slog.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "folio",
		Short:        "Portfolio in the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Browse the portfolio
  folio

  # Scriptable commands
  folio projects list --category Tech
  folio theme toggle

  # Direct project lookup (shortcut for: folio projects show <project-id>)
  folio home-props
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd.Context(), app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.init(cmd)
	}
	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		logger.Close()
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", "", "State directory, or FOLIO_DIR (default: nearest .folio, else ~/.folio)")
	cmd.PersistentFlags().StringVar(&app.ContentPath, "content", "", "Portfolio file (.yaml|.yml|.json) instead of the built-in one, or FOLIO_CONTENT")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().BoolVar(&app.Debug, "debug", false, "Write debug lines to the log file (same as FOLIO_DEBUG=1)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", "json", "Output format ("+strings.Join(format.Formats, "|")+"), or FOLIO_FORMAT")

	cmd.AddCommand(newThemeCmd(app))
	cmd.AddCommand(newTabsCmd(app))
	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newContentCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// init resolves env config (including .env) and the log file. A flag given on
// the command line wins over its environment variable.
func (app *App) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	app.cfg = cfg
	flags := cmd.Flags()
	if !flags.Changed("dir") {
		app.Dir = strings.TrimSpace(cfg.Dir)
	}
	if !flags.Changed("content") {
		app.ContentPath = strings.TrimSpace(cfg.ContentPath)
	}
	if !flags.Changed("format") && strings.TrimSpace(cfg.Format) != "" {
		app.Format = strings.TrimSpace(cfg.Format)
	}
	if !format.Valid(app.Format) {
		return fmt.Errorf("--format: unknown format %q (%s)", app.Format, strings.Join(format.Formats, "|"))
	}
	if err := logger.Init(cfg.LogPath, cfg.Debug); err != nil {
		// Logging is best effort; commands still run.
		fmt.Fprintln(os.Stderr, err.Error())
	}
	if app.Debug {
		logger.SetDebug(true)
	}
	app.log = logger.Component("cli")
	return nil
}

func runTUI(ctx context.Context, app *App) error {
	c, root, err := loadContent(app)
	if err != nil {
		return err
	}
	s, err := stateStore(app)
	if err != nil {
		return err
	}
	prefs, pref, err := openTheme(ctx, app, s)
	if err != nil {
		return err
	}
	defer prefs.Close()

	st, err := s.LoadTUIState()
	if err != nil {
		app.log.Warn("load tui state failed", "err", err)
		st = nil
	}
	glyphs, padding := tuiPreferences(app)
	return tui.Run(tui.Options{
		Content:        c,
		ContentRoot:    root,
		Store:          s,
		State:          st,
		Theme:          pref,
		Glyphs:         glyphs,
		ScrollPadding:  padding,
		ResizeDebounce: app.cfg.ResizeDebounce,
		Logger:         logger.Component("tui"),
	})
}

// loadContent resolves the portfolio: --content, then the global config's
// contentPath, then the built-in one.
func loadContent(app *App) (*model.Content, string, error) {
	path := strings.TrimSpace(app.ContentPath)
	if path == "" {
		if gc, err := store.LoadConfig(); err == nil {
			path = gc.ContentPath
		}
	}
	c, err := store.LoadContent(path)
	if err != nil {
		return nil, "", err
	}
	return c, store.ContentRoot(path), nil
}

func stateStore(app *App) (store.Store, error) {
	dir := app.Dir
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return store.Store{}, err
		}
		dir = d
		app.Dir = dir
	}
	return store.Store{Dir: dir}, nil
}

// openTheme opens the preference database and resolves the theme from it.
// The caller closes the returned Prefs.
func openTheme(ctx context.Context, app *App, s store.Store) (*store.Prefs, *theme.Preference, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	prefs, err := s.OpenPrefs(ctx)
	if err != nil {
		return nil, nil, err
	}
	pref, err := theme.Load(prefs, theme.Options{
		Override: app.cfg.Theme,
		Logger:   logger.Component("theme"),
	})
	if err != nil {
		_ = prefs.Close()
		return nil, nil, err
	}
	return prefs, pref, nil
}

// tuiPreferences layers the environment over the global config file. Values
// set in the environment win.
func tuiPreferences(app *App) (glyphs string, padding int) {
	glyphs, padding = app.cfg.Glyphs, app.cfg.ScrollPadding
	gc, err := store.LoadConfig()
	if err != nil || gc.TUI == nil {
		return glyphs, padding
	}
	if _, set := os.LookupEnv("FOLIO_TUI_GLYPHS"); !set && gc.TUI.Glyphs != "" {
		glyphs = gc.TUI.Glyphs
	}
	if _, set := os.LookupEnv("FOLIO_SCROLL_PADDING"); !set && gc.TUI.ScrollPadding != nil {
		padding = *gc.TUI.ScrollPadding
	}
	return glyphs, padding
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
