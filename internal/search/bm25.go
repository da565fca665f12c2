package search

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// searchKeyword scores every term with bleve and returns tools that matched
// all terms, normalized against the best hit.
func (i *Indexer) searchKeyword(terms []string) ([]scored, error) {
	conjuncts := make([]query.Query, 0, len(terms))
	for _, term := range terms {
		conjuncts = append(conjuncts, buildTermQuery(term))
	}

	req := bleve.NewSearchRequestOptions(bleve.NewConjunctionQuery(conjuncts...), i.registry.Len(), 0, false)
	results, err := i.bleveIndex.Search(req)
	if err != nil {
		return nil, fmt.Errorf("bleve search failed: %w", err)
	}

	hits := make([]scored, 0, len(results.Hits))
	for _, hit := range results.Hits {
		hits = append(hits, scored{id: hit.ID, score: hit.Score})
	}
	return normalizeScores(hits), nil
}

// buildTermQuery matches one term exactly, as a prefix, or within an edit
// distance that grows with its length.
func buildTermQuery(term string) query.Query {
	term = strings.ToLower(term)

	match := bleve.NewMatchQuery(term)
	match.SetBoost(2)

	prefix := bleve.NewPrefixQuery(term)

	fuzzy := bleve.NewFuzzyQuery(term)
	fuzzy.SetFuzziness(fuzzinessFor(term))
	fuzzy.SetBoost(0.5)

	category := bleve.NewTermQuery(term)
	category.SetField("category")

	return bleve.NewDisjunctionQuery(match, prefix, fuzzy, category)
}

func fuzzinessFor(term string) int {
	switch n := utf8.RuneCountInString(term); {
	case n <= 2:
		return 0
	case n <= 5:
		return 1
	default:
		return 2
	}
}
