package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/khanglvm/dev-tools-hub/internal/history"
	"github.com/khanglvm/dev-tools-hub/internal/registry"
)

// NewHistoryCmd creates the 'history' command group.
func NewHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect or clear the usage history",
		Long: `History holds the most recent successful operations across all tools,
newest first, capped at history.capacity entries.`,
	}

	cmd.AddCommand(newHistoryListCmd(app))
	cmd.AddCommand(newHistoryRecentCmd(app))
	cmd.AddCommand(newHistoryClearCmd(app))
	cmd.AddCommand(newHistoryExportCmd(app))
	return cmd
}

func newHistoryListCmd(app *App) *cobra.Command {
	var jsonOutput bool
	var toolID string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List history entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := app.Store.List()
			if toolID != "" {
				entries = app.Store.ListByTool(toolID)
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				if entries == nil {
					entries = []history.Entry{}
				}
				return printJSON(out, entries)
			}

			if len(entries) == 0 {
				fmt.Fprintln(out, "No history yet.")
				return nil
			}
			for _, e := range entries {
				printEntry(out, app.Registry, e)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	cmd.Flags().StringVarP(&toolID, "tool", "t", "", "Only entries for this tool id")
	return cmd
}

func newHistoryRecentCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently used tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 1 {
				limit = app.Config.History.RecentLimit
			}
			out := cmd.OutOrStdout()
			ids := app.Store.RecentToolIDs(limit)
			if len(ids) == 0 {
				fmt.Fprintln(out, "No recently used tools.")
				return nil
			}
			for _, id := range ids {
				fmt.Fprintf(out, "  %s  %s\n", cyan.Sprint(id), app.Registry.NameOf(id))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum tools (default history.recentLimit)")
	return cmd
}

func newHistoryClearCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Erase all history",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			n := len(app.Store.List())

			if !yes {
				fmt.Fprintf(out, "Clear %d history entries? [y/N]: ", n)
				reply, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				reply = strings.ToLower(strings.TrimSpace(reply))
				if reply != "y" && reply != "yes" {
					fmt.Fprintln(out, "Cancelled.")
					return nil
				}
			}

			app.Store.Clear()
			green.Fprintf(out, "✓ Cleared %d entries\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}

func newHistoryExportCmd(app *App) *cobra.Command {
	var format string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export history as JSON or YAML",
		Example: `  dev-tools-hub history export
  dev-tools-hub history export --format yaml -o history.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := app.Store.List()
			if entries == nil {
				entries = []history.Entry{}
			}

			var w io.Writer = cmd.OutOrStdout()
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer f.Close()
				w = f
			}

			if err := exportEntries(w, entries, format); err != nil {
				return err
			}

			if outputPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", len(entries), outputPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write to file instead of stdout")
	return cmd
}

func exportEntries(w io.Writer, entries []history.Entry, format string) error {
	switch strings.ToLower(format) {
	case "json":
		return printJSON(w, map[string][]history.Entry{history.StorageKey: entries})
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(map[string][]history.Entry{history.StorageKey: entries}); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}

func printEntry(w io.Writer, reg *registry.Registry, e history.Entry) {
	stamp := e.Time().Local().Format("2006-01-02 15:04:05")
	fmt.Fprintf(w, "  %s  %s", faint.Sprint(stamp), cyan.Sprint(reg.NameOf(e.ToolID)))
	if e.Action != "" {
		yellow.Fprintf(w, "  %s", e.Action)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "    in:  %s\n", truncate(e.Input, 60))
	fmt.Fprintf(w, "    out: %s\n", truncate(e.Output, 60))
}
