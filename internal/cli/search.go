package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/khanglvm/dev-tools-hub/internal/search"
	"github.com/khanglvm/dev-tools-hub/internal/storage"
)

// NewSearchCmd creates the 'search' command, the CLI form of the finder.
func NewSearchCmd(app *App) *cobra.Command {
	var jsonOutput bool
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Fuzzy-find tools by name, keyword or abbreviation",
		Long: `Rank catalog tools against a free-text query.

Matching tolerates typos ("formater") and subsequences ("b64" finds base64).
Results below the configured threshold are dropped; at most search.limit
results are shown.`,
		Example: `  dev-tools-hub search b64
  dev-tools-hub search json format --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			idx, err := app.Indexer()
			if err != nil {
				return err
			}

			if limit < 1 {
				limit = app.Config.Search.Limit
			}
			results, err := idx.Top(query, limit)
			if err != nil {
				return err
			}
			recordSearch(app, query, len(results))

			out := cmd.OutOrStdout()
			if jsonOutput {
				return printJSON(out, results)
			}

			if len(results) == 0 {
				fmt.Fprintf(out, "No tools match %q.\n", query)
				return nil
			}
			printResults(cmd, results)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum results (default search.limit)")
	return cmd
}

func printResults(cmd *cobra.Command, results []search.SearchResult) {
	out := cmd.OutOrStdout()
	for i, r := range results {
		fmt.Fprintf(out, "%2d. %s %s", i+1, r.Tool.Icon.Glyph(), cyan.Sprint(r.ID))
		if r.Score > 0 {
			faint.Fprintf(out, "  %.2f", r.Score)
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "    %s\n", r.Tool.Description)
	}
}

// recordSearch stores hashed-query analytics when the sqlite backend is
// active. Failures are logged only.
func recordSearch(app *App, query string, count int) {
	db := app.analytics()
	if db == nil {
		return
	}
	err := db.RecordSearch(storage.SearchRecord{
		SearchID:     uuid.NewString(),
		QueryHash:    storage.HashQuery(query),
		Timestamp:    time.Now(),
		ResultsCount: count,
	})
	if err != nil {
		app.Logger.Warn().Err(err).Msg("failed to record search")
	}
}
