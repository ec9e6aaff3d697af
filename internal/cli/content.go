package cli

import (
	"folio-cli/internal/store"

	"github.com/spf13/cobra"
)

func newContentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Portfolio content commands",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "export <file>",
		Short: "Write the active portfolio to a .yaml or .json file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := loadContent(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := store.ExportContent(c, args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"path":     args[0],
				"tabs":     len(c.Tabs),
				"projects": len(c.Projects),
			}})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "validate [file]",
		Short: "Check a portfolio file (default: the active one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				app.ContentPath = args[0]
			}
			c, _, err := loadContent(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"valid":    true,
				"tabs":     len(c.Tabs),
				"projects": len(c.Projects),
			}})
		},
	})
	return cmd
}
