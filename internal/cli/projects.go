package cli

import (
	"errors"

	"folio-cli/internal/gallery"

	"github.com/spf13/cobra"
)

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Project commands",
	}
	cmd.AddCommand(newProjectsListCmd(app))
	cmd.AddCommand(newProjectsShowCmd(app))
	cmd.AddCommand(newProjectsCategoriesCmd(app))
	return cmd
}

func loadGallery(app *App) (*gallery.Controller, error) {
	c, _, err := loadContent(app)
	if err != nil {
		return nil, err
	}
	return gallery.New(c.Projects, app.log)
}

func newProjectsListCmd(app *App) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGallery(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if category != "" {
				if err := g.SetFilter(category); err != nil {
					if errors.Is(err, gallery.ErrUnknownCategory) {
						return writeErr(cmd, errNotFound("category", category))
					}
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": g.Visible()})
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Only projects in this category")
	return cmd
}

func newProjectsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGallery(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, ok := g.Project(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("project", args[0]))
			}
			return writeOut(cmd, app, map[string]any{"data": p})
		},
	}
}

func newProjectsCategoriesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List gallery filter values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGallery(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": g.Categories()})
		},
	}
}
