package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/khanglvm/dev-tools-hub/internal/mcp"
)

// searchRetention bounds how long search analytics are kept.
const searchRetention = 30 * 24 * time.Hour

// NewServeCmd creates the 'serve' command for running the MCP server.
func NewServeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server (stdio transport)",
		Long: `Start the dev-tools-hub MCP server using stdio transport.

This server exposes the tools to AI clients:
  • devtools_search        - Fuzzy-find tools
  • devtools_list          - List tools and recently used ids
  • devtools_run           - Apply a tool action
  • devtools_convert       - Decimal to 64-bit binary breakdown
  • devtools_toggle_bit    - Flip one bit of a value
  • devtools_history       - Read usage history
  • devtools_history_clear - Erase usage history`,
		Example: `  # Run directly
  dev-tools-hub serve

  # Add to Claude Code
  claude mcp add dev-tools -- dev-tools-hub serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), app)
		},
	}

	return cmd
}

// runServe starts the MCP server and shuts down on SIGINT/SIGTERM.
func runServe(parent context.Context, app *App) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	idx, err := app.Indexer()
	if err != nil {
		return err
	}

	deps := mcp.Deps{
		Registry:    app.Registry,
		Store:       app.Store,
		Indexer:     idx,
		SearchLimit: app.Config.Search.Limit,
		RecentLimit: app.Config.History.RecentLimit,
		Logger:      app.Logger,
	}
	if db := app.analytics(); db != nil {
		deps.Analytics = db
		if err := db.Cleanup(searchRetention); err != nil {
			app.Logger.Warn().Err(err).Msg("search analytics cleanup failed")
		}
	}

	server := mcp.NewServer(deps)
	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server error: %w", err)
	}

	app.Logger.Info().Msg("shutdown complete")
	return nil
}
