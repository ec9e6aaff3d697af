package cli

import (
	"fmt"
	"strconv"
	"strings"

	"folio-cli/internal/logger"
	"folio-cli/internal/store"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Global preferences (~/.folio/config.json)",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the global config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": cfg})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <content|glyphs|scroll-padding> <value>",
		Short: "Set a global preference (empty value clears it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := applyConfigValue(cfg, args[0], strings.TrimSpace(args[1])); err != nil {
				return writeErr(cmd, err)
			}
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": cfg})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "paths",
		Short: "Show where config, state and logs live",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := store.ConfigPath()
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := stateStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]string{
				"config": cfgPath,
				"state":  s.Dir,
				"log":    logger.Path(),
			}})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "prefs",
		Short: "List preferences stored in the state directory",
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
			defer prefs.Close()
			all, err := prefs.All()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": all})
		},
	})
	return cmd
}

func applyConfigValue(cfg *store.GlobalConfig, key, v string) error {
	switch key {
	case "content":
		cfg.ContentPath = v
		return nil
	}
	if cfg.TUI == nil {
		cfg.TUI = &store.TUIConfig{}
	}
	switch key {
	case "glyphs":
		switch v {
		case "", "unicode", "ascii":
			cfg.TUI.Glyphs = v
		default:
			return fmt.Errorf("glyphs: want unicode or ascii, got %q", v)
		}
	case "scroll-padding":
		if v == "" {
			cfg.TUI.ScrollPadding = nil
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("scroll-padding: want a non-negative integer, got %q", v)
		}
		cfg.TUI.ScrollPadding = &n
	default:
		return fmt.Errorf("unknown config key %q (content|glyphs|scroll-padding)", key)
	}
	return nil
}
