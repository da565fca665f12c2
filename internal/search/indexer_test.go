package search

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/khanglvm/dev-tools-hub/internal/tools"
)

func newTestIndexer(t *testing.T) *Indexer {
	t.Helper()
	indexer, err := NewIndexer(tools.Catalog(), DefaultOptions, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create indexer: %v", err)
	}
	t.Cleanup(func() { indexer.Close() })
	return indexer
}

func ids(results []SearchResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.ID
	}
	return out
}

func TestNewIndexerIndexesCatalog(t *testing.T) {
	indexer := newTestIndexer(t)

	count, err := indexer.Count()
	if err != nil {
		t.Fatalf("failed to get count: %v", err)
	}
	if count != 6 {
		t.Errorf("expected 6 indexed tools, got %d", count)
	}
}

func TestSearchEmptyQueryReturnsAllInOrder(t *testing.T) {
	indexer := newTestIndexer(t)

	for _, q := range []string{"", "   ", "\t"} {
		results, err := indexer.Search(q)
		if err != nil {
			t.Fatalf("search %q failed: %v", q, err)
		}
		got := ids(results)
		want := []string{
			tools.DecimalBinaryID, tools.Base64ID, tools.URLEncoderID,
			tools.JSONFormatterID, tools.TextToJSONID, tools.HTMLViewerID,
		}
		if len(got) != len(want) {
			t.Fatalf("query %q: expected %d results, got %v", q, len(want), got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("query %q: position %d = %s, want %s", q, i, got[i], want[i])
			}
		}
	}
}

func TestSearchSubsequence(t *testing.T) {
	indexer := newTestIndexer(t)

	results, err := indexer.Search("b64")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected results for b64")
	}
	if results[0].ID != tools.Base64ID {
		t.Errorf("expected base64 first, got %v", ids(results))
	}
}

func TestSearchExactName(t *testing.T) {
	indexer := newTestIndexer(t)

	tests := []struct {
		query string
		want  string
	}{
		{"html", tools.HTMLViewerID},
		{"url", tools.URLEncoderID},
		{"binary", tools.DecimalBinaryID},
		{"json formatter", tools.JSONFormatterID},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			results, err := indexer.Search(tt.query)
			if err != nil {
				t.Fatalf("search failed: %v", err)
			}
			if len(results) == 0 || results[0].ID != tt.want {
				t.Errorf("expected %s first, got %v", tt.want, ids(results))
			}
		})
	}
}

func TestSearchTypo(t *testing.T) {
	indexer := newTestIndexer(t)

	results, err := indexer.Search("formater")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) == 0 || results[0].ID != tools.JSONFormatterID {
		t.Errorf("expected json-formatter first, got %v", ids(results))
	}
}

func TestSearchNoMatch(t *testing.T) {
	indexer := newTestIndexer(t)

	results, err := indexer.Search("zzqqxx")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if results == nil || len(results) != 0 {
		t.Errorf("expected empty non-nil results, got %v", ids(results))
	}
}

func TestSearchScoresSortedAndBounded(t *testing.T) {
	indexer := newTestIndexer(t)

	results, err := indexer.Search("encode")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) < 2 {
		t.Fatalf("expected at least 2 results, got %v", ids(results))
	}
	for i, r := range results {
		if r.Score < DefaultOptions.Threshold || r.Score > 1 {
			t.Errorf("score out of range for %s: %f", r.ID, r.Score)
		}
		if i > 0 && results[i-1].Score < r.Score {
			t.Errorf("results not sorted at %d: %v", i, ids(results))
		}
	}
}

func TestTopCapsResults(t *testing.T) {
	indexer := newTestIndexer(t)

	results, err := indexer.Top("", 3)
	if err != nil {
		t.Fatalf("top failed: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}

	all, err := indexer.Top("", 0)
	if err != nil {
		t.Fatalf("top failed: %v", err)
	}
	if len(all) != 6 {
		t.Errorf("expected uncapped 6 results, got %d", len(all))
	}
}

func TestThresholdFiltersWeakMatches(t *testing.T) {
	opts := DefaultOptions
	opts.Threshold = 1.01
	indexer, err := NewIndexer(tools.Catalog(), opts, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create indexer: %v", err)
	}
	defer indexer.Close()

	results, err := indexer.Search("json")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected threshold above 1 to drop everything, got %v", ids(results))
	}
}
