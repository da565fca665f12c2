package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/khanglvm/dev-tools-hub/internal/history"
	"github.com/khanglvm/dev-tools-hub/internal/search"
	"github.com/khanglvm/dev-tools-hub/internal/storage"
	"github.com/khanglvm/dev-tools-hub/internal/tools"
)

type fakeAnalytics struct {
	mu      sync.Mutex
	records []storage.SearchRecord
}

func (f *fakeAnalytics) RecordSearch(r storage.SearchRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, r)
	return nil
}

func newTestServer(t *testing.T) (*Server, *fakeAnalytics) {
	t.Helper()

	reg := tools.Catalog()
	indexer, err := search.NewIndexer(reg, search.DefaultOptions, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create indexer: %v", err)
	}
	t.Cleanup(func() { indexer.Close() })

	analytics := &fakeAnalytics{}
	s := NewServer(Deps{
		Registry:  reg,
		Store:     history.NewStore(history.NewMemory(), history.Options{}, zerolog.Nop()),
		Indexer:   indexer,
		Analytics: analytics,
		Logger:    zerolog.Nop(),
	})
	return s, analytics
}

func TestSearchTool(t *testing.T) {
	s, analytics := newTestServer(t)

	res, err := s.search(context.Background(), SearchArgs{Query: "b64"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(res.Results) == 0 || res.Results[0].ID != tools.Base64ID {
		t.Fatalf("expected base64 first, got %+v", res.Results)
	}
	if len(analytics.records) != 1 {
		t.Fatalf("expected 1 analytics record, got %d", len(analytics.records))
	}
	if analytics.records[0].QueryHash != storage.HashQuery("b64") {
		t.Error("analytics should store the hashed query")
	}
}

func TestSearchToolLimit(t *testing.T) {
	s, _ := newTestServer(t)

	res, err := s.search(context.Background(), SearchArgs{Query: "", Limit: 2})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(res.Results) != 2 {
		t.Errorf("expected 2 results, got %d", len(res.Results))
	}
}

func TestListTool(t *testing.T) {
	s, _ := newTestServer(t)

	res, err := s.list(context.Background(), ListArgs{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(res.Tools) != 6 {
		t.Fatalf("expected 6 tools, got %d", len(res.Tools))
	}
	if res.Tools[0].ID != tools.DecimalBinaryID {
		t.Errorf("expected catalog order, got %s first", res.Tools[0].ID)
	}
	if len(res.Tools[1].Actions) == 0 {
		t.Error("expected actions to be listed")
	}
	if res.Recent == nil {
		t.Error("recent should be an empty list, not nil")
	}

	res, err = s.list(context.Background(), ListArgs{Category: "encoding"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(res.Tools) != 2 {
		t.Errorf("expected 2 encoding tools, got %d", len(res.Tools))
	}

	if _, err := s.list(context.Background(), ListArgs{Category: "nope"}); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestRunToolRecordsHistory(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	res, err := s.run(ctx, RunArgs{ToolID: tools.Base64ID, Input: "hello"})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.Output != "aGVsbG8=" {
		t.Errorf("expected aGVsbG8=, got %q", res.Output)
	}
	if res.Action != "encode" {
		t.Errorf("expected default action encode, got %q", res.Action)
	}

	hist, err := s.history(ctx, HistoryArgs{})
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(hist.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(hist.Entries))
	}
	if hist.Entries[0].ToolName != "Base64 Encoder/Decoder" {
		t.Errorf("unexpected tool name %q", hist.Entries[0].ToolName)
	}
	if len(hist.Recent) != 1 || hist.Recent[0] != tools.Base64ID {
		t.Errorf("unexpected recent list %v", hist.Recent)
	}
}

func TestRunToolErrors(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	if _, err := s.run(ctx, RunArgs{ToolID: "missing", Input: "x"}); err == nil {
		t.Error("expected error for unknown tool")
	}
	if _, err := s.run(ctx, RunArgs{ToolID: tools.Base64ID, Action: "rot13", Input: "x"}); err == nil {
		t.Error("expected error for unknown action")
	}
	if _, err := s.run(ctx, RunArgs{ToolID: tools.JSONFormatterID, Input: "{"}); err == nil {
		t.Error("expected error for malformed JSON")
	}

	if n := len(s.store.List()); n != 0 {
		t.Errorf("failed runs should not record history, got %d entries", n)
	}
}

func TestConvertAndToggle(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	conv, err := s.convert(ctx, ConvertArgs{Decimal: "42"})
	if err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if !strings.HasSuffix(conv.Binary, "101010") || len(conv.Binary) != 64 {
		t.Errorf("unexpected binary %q", conv.Binary)
	}
	if len(conv.Bytes) != 8 || conv.Bytes[7] != "00101010" {
		t.Errorf("unexpected bytes %v", conv.Bytes)
	}
	if conv.Ones != 3 {
		t.Errorf("expected 3 ones, got %d", conv.Ones)
	}

	tog, err := s.toggleBit(ctx, ToggleBitArgs{Decimal: "42", Position: 0})
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if tog.Decimal != "43" {
		t.Errorf("expected 43, got %s", tog.Decimal)
	}

	entries := s.store.List()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Action != tools.ActionBitToggle || entries[0].Input != "42" || entries[0].Output != "43" {
		t.Errorf("unexpected toggle entry %+v", entries[0])
	}

	if _, err := s.toggleBit(ctx, ToggleBitArgs{Decimal: "42", Position: 64}); err == nil {
		t.Error("expected error for position 64")
	}
	if _, err := s.convert(ctx, ConvertArgs{Decimal: "-1"}); err == nil {
		t.Error("expected error for negative input")
	}
}

func TestHistoryClear(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	for _, in := range []string{"a", "b", "c"} {
		if _, err := s.run(ctx, RunArgs{ToolID: tools.URLEncoderID, Input: in}); err != nil {
			t.Fatalf("run failed: %v", err)
		}
	}

	res, err := s.clearHistory(ctx, ClearArgs{})
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if res.Cleared != 3 {
		t.Errorf("expected 3 cleared, got %d", res.Cleared)
	}
	if n := len(s.store.List()); n != 0 {
		t.Errorf("expected empty history, got %d", n)
	}
}

func TestHistoryFilterAndLimit(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	s.run(ctx, RunArgs{ToolID: tools.Base64ID, Input: "a"})
	s.run(ctx, RunArgs{ToolID: tools.URLEncoderID, Input: "b"})
	s.run(ctx, RunArgs{ToolID: tools.Base64ID, Input: "c"})

	res, err := s.history(ctx, HistoryArgs{ToolID: tools.Base64ID})
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(res.Entries) != 2 {
		t.Errorf("expected 2 base64 entries, got %d", len(res.Entries))
	}

	res, err = s.history(ctx, HistoryArgs{Limit: 1})
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(res.Entries) != 1 || res.Entries[0].Input != "c" {
		t.Errorf("expected newest entry only, got %+v", res.Entries)
	}
}

func TestSDKRoundTrip(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	ss, err := s.MCP().Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server connect failed: %v", err)
	}
	defer ss.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect failed: %v", err)
	}
	defer cs.Close()

	listed, err := cs.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("list tools failed: %v", err)
	}
	if len(listed.Tools) != 7 {
		t.Errorf("expected 7 tools, got %d", len(listed.Tools))
	}

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "devtools_run",
		Arguments: map[string]any{"tool_id": "url-encoder", "input": "a b&c"},
	})
	if err != nil {
		t.Fatalf("call failed: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %+v", res.Content)
	}

	data, err := json.Marshal(res.StructuredContent)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	var out RunResult
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if out.Output != "a%20b%26c" {
		t.Errorf("expected a%%20b%%26c, got %q", out.Output)
	}

	res, err = cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "devtools_convert",
		Arguments: map[string]any{"decimal": "abc"},
	})
	if err != nil {
		t.Fatalf("call failed: %v", err)
	}
	if !res.IsError {
		t.Error("expected tool error for non-numeric input")
	}
}
