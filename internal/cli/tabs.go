package cli

import (
	"folio-cli/internal/tabs"

	"github.com/spf13/cobra"
)

func newTabsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tabs",
		Short: "Tab commands",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List tabs in strip order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := loadContent(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			reg, err := tabs.NewRegistry(c.Tabs)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": reg.Tabs()})
		},
	})
	return cmd
}
