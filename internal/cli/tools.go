package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/khanglvm/dev-tools-hub/internal/registry"
	"github.com/khanglvm/dev-tools-hub/internal/route"
)

// NewToolsCmd creates the 'tools' command group for browsing the catalog.
func NewToolsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Browse the tool catalog",
	}

	cmd.AddCommand(newToolsListCmd(app))
	cmd.AddCommand(newToolsCategoriesCmd(app))
	cmd.AddCommand(newToolsShowCmd(app))
	return cmd
}

func newToolsListCmd(app *App) *cobra.Command {
	var jsonOutput bool
	var category string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all tools in catalog order",
		Example: `  dev-tools-hub tools list
  dev-tools-hub tools ls --category encoding
  dev-tools-hub tools list --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			descs := app.Registry.All()
			if category != "" {
				cat, err := registry.ParseCategory(category)
				if err != nil {
					return err
				}
				descs = app.Registry.ListByCategory(cat)
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				return printJSON(out, toolRows(descs))
			}

			if len(descs) == 0 {
				fmt.Fprintln(out, "No tools in this category.")
				return nil
			}

			fmt.Fprintf(out, "Tools (%d):\n\n", len(descs))
			for _, d := range descs {
				printToolLine(out, d)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Only tools in this category")
	return cmd
}

func newToolsCategoriesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories that have at least one tool",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, c := range app.Registry.ListCategories() {
				n := len(app.Registry.ListByCategory(c))
				fmt.Fprintf(out, "  %-12s %s (%d)\n", c, c.Label(), n)
			}
			return nil
		},
	}
}

func newToolsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <tool-id>",
		Short: "Show a tool's details, actions and recent history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.Registry.GetByID(args[0])
			if err != nil {
				return err
			}
			comp, err := d.Component()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			bold.Fprintf(out, "%s %s\n", d.Icon.Glyph(), d.Name)
			fmt.Fprintf(out, "  %s\n\n", d.Description)
			fmt.Fprintf(out, "  ID:       %s\n", d.ID)
			fmt.Fprintf(out, "  Category: %s\n", d.Category.Label())
			fmt.Fprintf(out, "  Keywords: %s\n", strings.Join(d.Keywords, ", "))
			fmt.Fprintf(out, "  Actions:  %s\n", strings.Join(comp.Actions(), ", "))
			fmt.Fprintf(out, "  Route:    %s\n", route.ToolPath(d.ID, false))

			entries := app.Store.ListByTool(d.ID)
			if len(entries) > 0 {
				fmt.Fprintf(out, "\n  Recent (%d):\n", len(entries))
				for _, e := range entries {
					printEntry(out, app.Registry, e)
				}
			}
			return nil
		},
	}
}

type toolRow struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Icon        string   `json:"icon"`
	Keywords    []string `json:"keywords"`
}

func toolRows(descs []registry.Descriptor) []toolRow {
	rows := make([]toolRow, 0, len(descs))
	for _, d := range descs {
		rows = append(rows, toolRow{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
			Category:    string(d.Category),
			Icon:        string(d.Icon),
			Keywords:    d.Keywords,
		})
	}
	return rows
}

func printToolLine(w io.Writer, d registry.Descriptor) {
	fmt.Fprintf(w, "  %s %s\n", d.Icon.Glyph(), cyan.Sprint(d.ID))
	fmt.Fprintf(w, "    %s - %s\n", d.Name, d.Description)
	faint.Fprintf(w, "    %s\n", d.Category.Label())
	fmt.Fprintln(w)
}
