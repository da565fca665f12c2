/*
Package mcp implements the MCP server that exposes the developer tools.

The server uses stdio transport and exposes 7 tools:
  - devtools_search: Rank catalog tools for a free-text query
  - devtools_list: List catalog tools, optionally by category
  - devtools_run: Apply a tool action to input text
  - devtools_convert: Decimal to 64-bit binary breakdown
  - devtools_toggle_bit: Flip one bit of a decimal value
  - devtools_history: Read the shared usage history
  - devtools_history_clear: Erase the usage history
*/
package mcp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/khanglvm/dev-tools-hub/internal/history"
	"github.com/khanglvm/dev-tools-hub/internal/registry"
	"github.com/khanglvm/dev-tools-hub/internal/search"
	"github.com/khanglvm/dev-tools-hub/internal/storage"
	"github.com/khanglvm/dev-tools-hub/internal/tools"
	"github.com/khanglvm/dev-tools-hub/internal/version"
)

// ServerName is reported to MCP clients during initialization.
const ServerName = "dev-tools-hub"

// SearchRecorder receives one record per search for analytics.
type SearchRecorder interface {
	RecordSearch(search storage.SearchRecord) error
}

// Deps holds the components the server exposes.
type Deps struct {
	Registry *registry.Registry
	Store    *history.Store
	Indexer  *search.Indexer

	// Analytics is optional.
	Analytics SearchRecorder

	// SearchLimit caps devtools_search results when the caller gives none.
	SearchLimit int

	// RecentLimit is the default size of the recently-used list.
	RecentLimit int

	Logger zerolog.Logger
}

// Server represents the dev-tools-hub MCP server.
type Server struct {
	server    *mcp.Server
	registry  *registry.Registry
	runner    *tools.Runner
	store     *history.Store
	indexer   *search.Indexer
	analytics SearchRecorder
	limit     int
	recent    int
	logger    zerolog.Logger
}

// NewServer creates an MCP server and registers all tools.
func NewServer(deps Deps) *Server {
	if deps.SearchLimit < 1 {
		deps.SearchLimit = 8
	}
	if deps.RecentLimit < 1 {
		deps.RecentLimit = history.DefaultRecentLimit
	}

	s := &Server{
		registry:  deps.Registry,
		runner:    tools.NewRunner(deps.Registry, deps.Store),
		store:     deps.Store,
		indexer:   deps.Indexer,
		analytics: deps.Analytics,
		limit:     deps.SearchLimit,
		recent:    deps.RecentLimit,
		logger:    deps.Logger.With().Str("component", "mcp").Logger(),
	}

	s.server = mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: version.Version,
	}, &mcp.ServerOptions{
		Instructions: `dev-tools-hub provides small developer utilities.

Start with devtools_search or devtools_list to find a tool id, then call
devtools_run with that id. Successful runs are appended to a shared history
(newest first, capped) readable with devtools_history.`,
	})

	s.registerTools()
	return s
}

// MCP returns the underlying SDK server.
func (s *Server) MCP() *mcp.Server {
	return s.server
}

// Run serves MCP over stdio until ctx is cancelled or stdin closes.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info().
		Str("version", version.Version).
		Int("tools", s.registry.Len()).
		Msg("starting MCP server")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// recordSearch stores analytics for one query. Failures are logged only.
func (s *Server) recordSearch(query string, count int) {
	if s.analytics == nil {
		return
	}
	err := s.analytics.RecordSearch(storage.SearchRecord{
		SearchID:     uuid.NewString(),
		QueryHash:    storage.HashQuery(query),
		Timestamp:    time.Now(),
		ResultsCount: count,
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to record search")
	}
}
