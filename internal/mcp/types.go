package mcp

import (
	"github.com/khanglvm/dev-tools-hub/internal/bitvector"
	"github.com/khanglvm/dev-tools-hub/internal/registry"
)

// SearchArgs are the devtools_search parameters.
type SearchArgs struct {
	Query string `json:"query" jsonschema:"Free text such as a tool name or abbreviation (b64, json, url). Empty lists every tool."`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum results to return"`
}

// SearchResult is the devtools_search response.
type SearchResult struct {
	Query   string     `json:"query"`
	Results []ToolInfo `json:"results"`
}

// ListArgs are the devtools_list parameters.
type ListArgs struct {
	Category string `json:"category,omitempty" jsonschema:"Restrict to one category: encoding, formatting, conversion, string, crypto, utility"`
}

// ListResult is the devtools_list response.
type ListResult struct {
	Tools      []ToolInfo `json:"tools"`
	Categories []string   `json:"categories"`
	Recent     []string   `json:"recent"`
}

// ToolInfo describes one catalog tool.
type ToolInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Keywords    []string `json:"keywords"`
	Actions     []string `json:"actions,omitempty"`
	Score       float64  `json:"score,omitempty"`
}

// RunArgs are the devtools_run parameters.
type RunArgs struct {
	ToolID string `json:"tool_id" jsonschema:"Tool id from devtools_list, e.g. base64"`
	Action string `json:"action,omitempty" jsonschema:"Tool action, e.g. encode or decode. Defaults to the tool's first action."`
	Input  string `json:"input" jsonschema:"Text to transform"`
}

// RunResult is the devtools_run response.
type RunResult struct {
	ToolID string `json:"tool_id"`
	Action string `json:"action"`
	Output string `json:"output"`
}

// ConvertArgs are the devtools_convert parameters.
type ConvertArgs struct {
	Decimal string `json:"decimal" jsonschema:"Unsigned decimal integer in [0, 2^64-1]"`
}

// ToggleBitArgs are the devtools_toggle_bit parameters.
type ToggleBitArgs struct {
	Decimal  string `json:"decimal" jsonschema:"Current unsigned decimal value"`
	Position int    `json:"position" jsonschema:"Bit position 0-63, 0 is least significant"`
}

// BitsResult is the 64-bit breakdown returned by the bit tools. Bytes are
// most significant first.
type BitsResult struct {
	Decimal string   `json:"decimal"`
	Binary  string   `json:"binary"`
	Hex     string   `json:"hex"`
	Ones    int      `json:"ones"`
	Bytes   []string `json:"bytes"`
}

// HistoryArgs are the devtools_history parameters.
type HistoryArgs struct {
	ToolID string `json:"tool_id,omitempty" jsonschema:"Only entries for this tool id"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Maximum entries to return"`
}

// HistoryResult is the devtools_history response.
type HistoryResult struct {
	Entries []HistoryItem `json:"entries"`
	Recent  []string      `json:"recent"`
}

// HistoryItem is one entry with its tool's display name.
type HistoryItem struct {
	ID        string `json:"id"`
	ToolID    string `json:"toolId"`
	ToolName  string `json:"toolName"`
	Timestamp int64  `json:"timestamp"`
	Action    string `json:"action,omitempty"`
	Input     string `json:"input"`
	Output    string `json:"output"`
}

// ClearArgs are the devtools_history_clear parameters.
type ClearArgs struct{}

// ClearResult is the devtools_history_clear response.
type ClearResult struct {
	Cleared int `json:"cleared"`
}

func toolInfo(d registry.Descriptor, withActions bool) ToolInfo {
	info := ToolInfo{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Category:    string(d.Category),
		Keywords:    d.Keywords,
	}
	if withActions {
		if c, err := d.Component(); err == nil {
			info.Actions = c.Actions()
		}
	}
	return info
}

func bitsResult(v bitvector.BitVector) BitsResult {
	r := BitsResult{
		Decimal: v.DecimalText(),
		Binary:  v.BinaryText(),
		Hex:     v.HexText(),
		Ones:    v.OnesCount(),
	}
	bin := r.Binary
	for i := 0; i < bitvector.ByteCount; i++ {
		r.Bytes = append(r.Bytes, bin[i*8:(i+1)*8])
	}
	return r
}
