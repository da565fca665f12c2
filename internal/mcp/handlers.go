package mcp

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/khanglvm/dev-tools-hub/internal/bitvector"
	"github.com/khanglvm/dev-tools-hub/internal/registry"
	"github.com/khanglvm/dev-tools-hub/internal/tools"
)

func ptr[T any](v T) *T { return &v }

// orEmpty keeps JSON arrays from encoding as null.
func orEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

// registerTools adds every devtools_* tool to the SDK server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "devtools_search",
		Description: `Find tools by name, keyword or abbreviation. Tolerates typos and
subsequences ("b64" finds base64). Results are ranked best first.`,
		Annotations: &mcp.ToolAnnotations{Title: "Search Tools", ReadOnlyHint: true},
	}, wrap(s, "devtools_search", s.search))

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "devtools_list",
		Description: "List every tool in catalog order with its actions, plus the recently used tool ids.",
		Annotations: &mcp.ToolAnnotations{Title: "List Tools", ReadOnlyHint: true},
	}, wrap(s, "devtools_list", s.list))

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "devtools_run",
		Description: `Apply a tool action to input text and return the output.
Examples: base64 encode/decode, url-encoder encode/decode, json-formatter
format/minify, text-to-json prettify/minify, html-viewer preview/beautify,
decimal-binary convert/to-decimal.`,
		Annotations: &mcp.ToolAnnotations{Title: "Run Tool", IdempotentHint: true},
	}, wrap(s, "devtools_run", s.run))

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "devtools_convert",
		Description: "Show the 64-bit binary, hex and byte breakdown of an unsigned decimal integer.",
		Annotations: &mcp.ToolAnnotations{Title: "Decimal to Binary", IdempotentHint: true},
	}, wrap(s, "devtools_convert", s.convert))

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "devtools_toggle_bit",
		Description: "Flip one bit (0 = least significant, 63 = most) of a decimal value and return the new value.",
		Annotations: &mcp.ToolAnnotations{Title: "Toggle Bit"},
	}, wrap(s, "devtools_toggle_bit", s.toggleBit))

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "devtools_history",
		Description: "Read recent tool usage, newest first. Optionally filter by tool id.",
		Annotations: &mcp.ToolAnnotations{Title: "History", ReadOnlyHint: true},
	}, wrap(s, "devtools_history", s.history))

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "devtools_history_clear",
		Description: "Erase all usage history.",
		Annotations: &mcp.ToolAnnotations{
			Title:           "Clear History",
			DestructiveHint: ptr(true),
		},
	}, wrap(s, "devtools_history_clear", s.clearHistory))
}

// wrap adapts a plain handler to the SDK signature with panic recovery and
// logging.
func wrap[Args, Result any](s *Server, name string, fn func(context.Context, Args) (Result, error)) mcp.ToolHandlerFor[Args, Result] {
	return func(ctx context.Context, req *mcp.CallToolRequest, args Args) (res *mcp.CallToolResult, out Result, err error) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error().
					Str("tool", name).
					Interface("panic", rec).
					Str("stack", string(debug.Stack())).
					Msg("panic recovered")
				err = fmt.Errorf("%s: internal error", name)
			}
		}()

		out, err = fn(ctx, args)
		if err != nil {
			s.logger.Debug().Err(err).Str("tool", name).Msg("tool failed")
			var zero Result
			return nil, zero, fmt.Errorf("%s failed: %w", name, err)
		}
		s.logger.Debug().Str("tool", name).Msg("tool executed")
		return nil, out, nil
	}
}

func (s *Server) search(_ context.Context, args SearchArgs) (SearchResult, error) {
	limit := args.Limit
	if limit < 1 {
		limit = s.limit
	}

	ranked, err := s.indexer.Top(args.Query, limit)
	if err != nil {
		return SearchResult{}, err
	}
	s.recordSearch(args.Query, len(ranked))

	out := SearchResult{Query: args.Query, Results: make([]ToolInfo, 0, len(ranked))}
	for _, r := range ranked {
		info := toolInfo(r.Tool, false)
		info.Score = r.Score
		out.Results = append(out.Results, info)
	}
	return out, nil
}

func (s *Server) list(_ context.Context, args ListArgs) (ListResult, error) {
	descs := s.registry.All()
	if args.Category != "" {
		cat, err := registry.ParseCategory(args.Category)
		if err != nil {
			return ListResult{}, err
		}
		descs = s.registry.ListByCategory(cat)
	}

	out := ListResult{
		Tools:      make([]ToolInfo, 0, len(descs)),
		Categories: []string{},
		Recent:     orEmpty(s.store.RecentToolIDs(s.recent)),
	}
	for _, d := range descs {
		out.Tools = append(out.Tools, toolInfo(d, true))
	}
	for _, c := range s.registry.ListCategories() {
		out.Categories = append(out.Categories, string(c))
	}
	return out, nil
}

func (s *Server) run(_ context.Context, args RunArgs) (RunResult, error) {
	output, err := s.runner.Run(args.ToolID, args.Action, args.Input)
	if err != nil {
		return RunResult{}, err
	}

	action := args.Action
	if action == "" {
		if d, ok := s.registry.Get(args.ToolID); ok {
			if c, err := d.Component(); err == nil {
				action = c.Actions()[0]
			}
		}
	}
	return RunResult{ToolID: args.ToolID, Action: action, Output: output}, nil
}

func (s *Server) convert(_ context.Context, args ConvertArgs) (BitsResult, error) {
	session := tools.NewBitSession(s.store, bitvector.Empty())
	v, err := session.SetDecimal(args.Decimal)
	if err != nil {
		return BitsResult{}, err
	}
	return bitsResult(v), nil
}

func (s *Server) toggleBit(_ context.Context, args ToggleBitArgs) (BitsResult, error) {
	start, err := bitvector.ParseDecimal(args.Decimal)
	if err != nil {
		return BitsResult{}, err
	}

	session := tools.NewBitSession(s.store, start)
	v, err := session.Toggle(args.Position)
	if err != nil {
		return BitsResult{}, err
	}
	return bitsResult(v), nil
}

func (s *Server) history(_ context.Context, args HistoryArgs) (HistoryResult, error) {
	entries := s.store.List()
	if args.ToolID != "" {
		entries = s.store.ListByTool(args.ToolID)
	}
	if args.Limit > 0 && len(entries) > args.Limit {
		entries = entries[:args.Limit]
	}

	out := HistoryResult{
		Entries: make([]HistoryItem, 0, len(entries)),
		Recent:  orEmpty(s.store.RecentToolIDs(s.recent)),
	}
	for _, e := range entries {
		out.Entries = append(out.Entries, HistoryItem{
			ID:        e.ID,
			ToolID:    e.ToolID,
			ToolName:  s.registry.NameOf(e.ToolID),
			Timestamp: e.Timestamp,
			Action:    e.Action,
			Input:     e.Input,
			Output:    e.Output,
		})
	}
	return out, nil
}

func (s *Server) clearHistory(_ context.Context, _ ClearArgs) (ClearResult, error) {
	n := len(s.store.List())
	s.store.Clear()
	s.logger.Info().Int("entries", n).Msg("history cleared")
	return ClearResult{Cleared: n}, nil
}
