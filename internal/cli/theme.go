package cli

import (
	"folio-cli/internal/theme"

	"github.com/spf13/cobra"
)

type themeOut struct {
	Value  string       `json:"value"`
	Source theme.Source `json:"source"`
}

func newThemeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change the color theme (shared with the TUI)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTheme(cmd, app, nil)
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTheme(cmd, app, nil)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "dark",
		Short: "Use the dark theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTheme(cmd, app, func(p *theme.Preference) error { return p.Set(true) })
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "light",
		Short: "Use the light theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTheme(cmd, app, func(p *theme.Preference) error { return p.Set(false) })
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch between dark and light",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTheme(cmd, app, func(p *theme.Preference) error { return p.Toggle() })
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Forget the stored theme and resolve it again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := stateStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			prefs, err := s.OpenPrefs(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			err = prefs.Delete(theme.StorageKey)
			_ = prefs.Close()
			if err != nil {
				return writeErr(cmd, err)
			}
			return runTheme(cmd, app, nil)
		},
	})
	return cmd
}

func runTheme(cmd *cobra.Command, app *App, change func(*theme.Preference) error) error {
	s, err := stateStore(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	prefs, pref, err := openTheme(cmd.Context(), app, s)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer prefs.Close()

	if change != nil {
		if err := change(pref); err != nil {
			return writeErr(cmd, err)
		}
	}
	return writeOut(cmd, app, map[string]any{"data": themeOut{Value: pref.Value(), Source: pref.Source()}})
}
