package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khanglvm/dev-tools-hub/internal/route"
)

// NewRouteCmd creates the 'route' command that resolves an app path.
func NewRouteCmd(app *App) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "route <path>",
		Short: "Resolve an application path to its view",
		Example: `  dev-tools-hub route /tool/base64
  dev-tools-hub route "/tool/json-formatter?hideSidebar=true"
  dev-tools-hub route /embed/tool/html-viewer --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := route.NewResolver(app.Registry).Resolve(args[0])

			out := cmd.OutOrStdout()
			if jsonOutput {
				return printJSON(out, v)
			}

			fmt.Fprintf(out, "View:     %s\n", v.Kind)
			if v.ToolID != "" {
				fmt.Fprintf(out, "Tool:     %s", v.ToolID)
				if v.ToolName != "" {
					fmt.Fprintf(out, " (%s)", v.ToolName)
				}
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "Embedded: %t\n", v.Embedded)
			fmt.Fprintf(out, "Header:   %t\n", !v.HideHeader)
			fmt.Fprintf(out, "Sidebar:  %t\n", v.ShowSidebar)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	return cmd
}
