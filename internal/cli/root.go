/*
Package cli implements the dev-tools-hub command tree.

Every command shares one App: the effective configuration, a zerolog
logger, the tool registry and the history store backed by the configured
persistence backend. The App is built lazily before a command runs and
closed afterwards.
*/
package cli

import (
	"github.com/spf13/cobra"

	"github.com/khanglvm/dev-tools-hub/internal/version"
)

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	app := &App{}

	rootCmd := &cobra.Command{
		Use:   "dev-tools-hub",
		Short: "Developer utilities with shared history and fuzzy tool search",
		Long: `dev-tools-hub bundles small developer utilities behind one command:

  • decimal-binary  - 64-bit decimal/binary converter with bit toggling
  • base64          - Base64 encode/decode
  • url-encoder     - URL component encode/decode
  • json-formatter  - Format, validate and minify JSON
  • text-to-json    - Wrap plain text as JSON or prettify JSON
  • html-viewer     - Preview and beautify HTML

Successful operations are recorded in a capped history shared by the CLI,
the interactive bit editor and the MCP server.`,
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.Close()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.configPath, "config", "", "Config file (default ~/.dev-tools-hub.json)")
	flags.BoolVar(&app.debug, "debug", false, "Enable debug logging")
	flags.StringVar(&app.logFile, "log-file", "", "Append logs to this file")

	rootCmd.AddCommand(NewToolsCmd(app))
	rootCmd.AddCommand(NewSearchCmd(app))
	rootCmd.AddCommand(NewRunCmd(app))
	rootCmd.AddCommand(NewConvertCmd(app))
	rootCmd.AddCommand(NewBitsCmd(app))
	rootCmd.AddCommand(NewHistoryCmd(app))
	rootCmd.AddCommand(NewRouteCmd(app))
	rootCmd.AddCommand(NewServeCmd(app))
	rootCmd.AddCommand(NewConfigCmd(app))
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}
