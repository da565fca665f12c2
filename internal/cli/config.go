package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/khanglvm/dev-tools-hub/internal/config"
)

// NewConfigCmd creates the 'config' command group. Its subcommands only
// read or write the config file and never open the history backend.
func NewConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or show the configuration file",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.initLogging()
		},
	}

	cmd.AddCommand(newConfigInitCmd(app))
	cmd.AddCommand(newConfigShowCmd(app))
	return cmd
}

func newConfigInitCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if _, err := os.Stat(app.configPath); err == nil && !force {
				fmt.Fprintf(out, "Config already exists: %s\n", app.configPath)
				fmt.Fprintln(out, "Use --force to overwrite (a .bak copy is kept).")
				return nil
			}

			if err := config.Save(config.NewConfig(), app.configPath); err != nil {
				return err
			}
			green.Fprintf(out, "✓ Wrote %s\n", app.configPath)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config")
	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(app.configPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			faint.Fprintf(out, "# %s\n", app.configPath)
			return printJSON(out, cfg)
		},
	}
}
