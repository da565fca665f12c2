package search

import (
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
	"github.com/rs/zerolog"

	"github.com/khanglvm/dev-tools-hub/internal/registry"
)

// Options tunes ranking.
type Options struct {
	// Threshold is the minimum fused score, in [0,1], a tool needs to be
	// returned.
	Threshold float64

	// Fusion weights the two scorers when both match.
	Fusion FusionConfig
}

// DefaultOptions mirrors a forgiving command-palette finder.
var DefaultOptions = Options{
	Threshold: 0.4,
	Fusion:    DefaultFusionConfig,
}

var initScheme sync.Once

// Indexer ranks registry tools against free-text queries. It is built once
// per registry and is safe for concurrent use.
type Indexer struct {
	registry   *registry.Registry
	bleveIndex bleve.Index
	docs       []ToolDocument
	opts       Options
	logger     zerolog.Logger

	// mu guards the fzf slab, which is reused across queries.
	mu   sync.Mutex
	slab *util.Slab
}

// NewIndexer indexes every tool in reg with an in-memory bleve index.
func NewIndexer(reg *registry.Registry, opts Options, logger zerolog.Logger) (*Indexer, error) {
	initScheme.Do(func() { algo.Init("default") })

	if opts.Fusion == (FusionConfig{}) {
		opts.Fusion = DefaultFusionConfig
	}

	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create bleve index: %w", err)
	}

	i := &Indexer{
		registry:   reg,
		bleveIndex: index,
		opts:       opts,
		logger:     logger.With().Str("component", "search").Logger(),
		slab:       util.MakeSlab(100*1024, 2048),
	}

	if err := i.indexTools(); err != nil {
		index.Close()
		return nil, err
	}

	return i, nil
}

// buildIndexMapping creates the Bleve index mapping.
func buildIndexMapping() mapping.IndexMapping {
	toolMapping := bleve.NewDocumentMapping()

	toolMapping.AddFieldMappingsAt("name", bleve.NewTextFieldMapping())
	toolMapping.AddFieldMappingsAt("description", bleve.NewTextFieldMapping())
	toolMapping.AddFieldMappingsAt("keywords", bleve.NewTextFieldMapping())

	// Category is a single enum token; keep it verbatim.
	categoryMapping := bleve.NewTextFieldMapping()
	categoryMapping.Analyzer = "keyword"
	toolMapping.AddFieldMappingsAt("category", categoryMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = toolMapping

	return indexMapping
}

// indexTools adds every registry tool, keyed by tool id.
func (i *Indexer) indexTools() error {
	batch := i.bleveIndex.NewBatch()

	for _, d := range i.registry.All() {
		doc := newToolDocument(d)
		i.docs = append(i.docs, doc)
		if err := batch.Index(d.ID, doc); err != nil {
			i.logger.Warn().Err(err).Str("tool", d.ID).Msg("failed to index tool")
		}
	}

	if err := i.bleveIndex.Batch(batch); err != nil {
		return fmt.Errorf("failed to batch index tools: %w", err)
	}

	return nil
}

// Count returns the total number of indexed tools.
func (i *Indexer) Count() (uint64, error) {
	docCount, err := i.bleveIndex.DocCount()
	if err != nil {
		return 0, fmt.Errorf("failed to get doc count: %w", err)
	}
	return docCount, nil
}

// Close closes the index and releases resources.
func (i *Indexer) Close() error {
	if i.bleveIndex != nil {
		return i.bleveIndex.Close()
	}
	return nil
}
