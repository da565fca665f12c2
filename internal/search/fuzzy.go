package search

import (
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// fieldWeights discount matches in long free-text fields.
var fieldWeights = struct {
	name, keyword, category, description float64
}{1.0, 1.0, 0.9, 0.7}

// searchFuzzy returns tools where every term is a subsequence of some
// field, scored by fzf relative to a perfect match of the term.
func (i *Indexer) searchFuzzy(terms []string) []scored {
	i.mu.Lock()
	defer i.mu.Unlock()

	ideals := make([]float64, len(terms))
	patterns := make([][]rune, len(terms))
	for t, term := range terms {
		patterns[t] = []rune(strings.ToLower(term))
		ideals[t] = float64(i.match(term, patterns[t]))
	}

	tools := i.registry.All()
	out := make([]scored, 0, len(tools))

	for n, doc := range i.docs {
		total := 0.0
		matchedAll := true

		for t := range terms {
			if ideals[t] <= 0 {
				matchedAll = false
				break
			}
			best := 0.0
			consider := func(text string, weight float64) {
				if s := float64(i.match(text, patterns[t])); s > 0 {
					if v := weight * s / ideals[t]; v > best {
						best = v
					}
				}
			}
			consider(doc.Name, fieldWeights.name)
			for _, kw := range doc.Keywords {
				consider(kw, fieldWeights.keyword)
			}
			consider(doc.Category, fieldWeights.category)
			consider(doc.Description, fieldWeights.description)

			if best == 0 {
				matchedAll = false
				break
			}
			if best > 1 {
				best = 1
			}
			total += best
		}

		if matchedAll {
			out = append(out, scored{id: tools[n].ID, score: total / float64(len(terms))})
		}
	}

	return out
}

// match runs fzf's optimal-alignment matcher. Caller holds mu.
func (i *Indexer) match(text string, pattern []rune) int {
	chars := util.ToChars([]byte(text))
	res, _ := algo.FuzzyMatchV2(false, true, true, &chars, pattern, false, i.slab)
	if res.Start < 0 {
		return 0
	}
	return res.Score
}
