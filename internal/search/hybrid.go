package search

import (
	"sort"
	"strings"
)

// FusionConfig defines weights for hybrid score fusion.
type FusionConfig struct {
	FuzzyWeight   float64
	KeywordWeight float64
}

// DefaultFusionConfig favors subsequence matching (60% fuzzy, 40% keyword).
var DefaultFusionConfig = FusionConfig{
	FuzzyWeight:   0.6,
	KeywordWeight: 0.4,
}

// Search ranks tools against query. An empty query returns every tool in
// registry order. A query with no matches returns an empty slice.
func (i *Indexer) Search(query string) ([]SearchResult, error) {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		all := i.registry.All()
		out := make([]SearchResult, 0, len(all))
		for _, d := range all {
			out = append(out, SearchResult{Tool: d, ID: d.ID, Name: d.Name})
		}
		return out, nil
	}

	fuzzy := i.searchFuzzy(terms)
	keyword, err := i.searchKeyword(terms)
	if err != nil {
		// Fall back to fuzzy only
		i.logger.Warn().Err(err).Str("query", query).Msg("keyword search failed")
		keyword = nil
	}

	results := i.fuseScores(fuzzy, keyword)

	filtered := results[:0]
	for _, r := range results {
		if r.Score >= i.opts.Threshold {
			filtered = append(filtered, r)
		}
	}

	// Sort by combined score; equal scores keep registry order.
	sort.SliceStable(filtered, func(a, b int) bool {
		return filtered[a].Score > filtered[b].Score
	})

	return filtered, nil
}

// Top returns at most limit results of Search. limit < 1 means no cap.
func (i *Indexer) Top(query string, limit int) ([]SearchResult, error) {
	results, err := i.Search(query)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// fuseScores combines fuzzy and keyword results using weighted fusion.
// The output is in registry order.
func (i *Indexer) fuseScores(fuzzy, keyword []scored) []SearchResult {
	fuzzyMap := make(map[string]float64, len(fuzzy))
	for _, s := range fuzzy {
		fuzzyMap[s.id] = s.score
	}
	keywordMap := make(map[string]float64, len(keyword))
	for _, s := range keyword {
		keywordMap[s.id] = s.score
	}

	cfg := i.opts.Fusion
	out := make([]SearchResult, 0, len(fuzzyMap)+len(keywordMap))

	for _, d := range i.registry.All() {
		fz, hasFuzzy := fuzzyMap[d.ID]
		kw, hasKeyword := keywordMap[d.ID]

		var fused float64
		switch {
		case hasFuzzy && hasKeyword:
			fused = cfg.FuzzyWeight*fz + cfg.KeywordWeight*kw
			// A tool found by both scorers never ranks below either alone.
			if fz > fused {
				fused = fz
			}
		case hasFuzzy:
			fused = fz
		case hasKeyword:
			fused = kw
		default:
			continue
		}

		out = append(out, SearchResult{
			Tool:    d,
			ID:      d.ID,
			Name:    d.Name,
			Score:   fused,
			Fuzzy:   fz,
			Keyword: kw,
		})
	}

	return out
}

// normalizeScores scales scores into [0, 1] relative to the best score.
func normalizeScores(results []scored) []scored {
	if len(results) == 0 {
		return results
	}

	maxScore := results[0].score
	for _, r := range results {
		if r.score > maxScore {
			maxScore = r.score
		}
	}

	normalized := make([]scored, len(results))
	for n, r := range results {
		normalized[n] = r
		if maxScore <= 0 {
			normalized[n].score = 1.0
			continue
		}
		normalized[n].score = r.score / maxScore
	}

	return normalized
}
