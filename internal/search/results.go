/*
Package search implements the fuzzy tool finder.

Two scorers run over the registry's name, description, keywords and
category: fzf-style subsequence matching (so "b64" finds "base64") and a
bleve keyword index with edit-distance queries (so "jsno" finds "json").
Their normalized scores are fused into one ranking; ties keep registry order.
*/
package search

import "github.com/khanglvm/dev-tools-hub/internal/registry"

// SearchResult represents a single ranked tool.
type SearchResult struct {
	Tool  registry.Descriptor `json:"-"`
	ID    string              `json:"id"`
	Name  string              `json:"name"`
	Score float64             `json:"score"`

	// Fuzzy and Keyword are the per-scorer normalized scores.
	Fuzzy   float64 `json:"fuzzy"`
	Keyword float64 `json:"keyword"`
}

// ToolDocument represents a tool as stored in the search index.
type ToolDocument struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	Category    string   `json:"category"`
}

func newToolDocument(d registry.Descriptor) ToolDocument {
	return ToolDocument{
		Name:        d.Name,
		Description: d.Description,
		Keywords:    d.Keywords,
		Category:    string(d.Category),
	}
}

// scored is one scorer's verdict for one tool.
type scored struct {
	id    string
	score float64
}
