package knowledge

import (
	"context"
	"fmt"

	"github.com/anvidev01/infosetu/internal/log"
)

// Indexer seeds the store with the curated scheme corpus.
type Indexer struct {
	store  *Store
	logger log.Logger
}

// NewIndexer creates an Indexer for store.
func NewIndexer(store *Store, logger log.Logger) *Indexer {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Indexer{store: store, logger: logger}
}

// IndexSchemes embeds and upserts every curated scheme document. It stops at
// the first failure so a partial run is visible in the error and the logs.
func (ix *Indexer) IndexSchemes(ctx context.Context) error {
	docs := SchemeDocuments()
	for i, doc := range docs {
		doc.Metadata = map[string]string{
			"source_type": SourceTypeScheme,
			"scheme":      doc.ID,
		}
		if err := ix.store.Add(ctx, doc); err != nil {
			return fmt.Errorf("index scheme %q (%d/%d): %w", doc.ID, i+1, len(docs), err)
		}
		ix.logger.Info("indexed scheme", "id", doc.ID)
	}
	ix.logger.Info("scheme corpus indexed", "count", len(docs))
	return nil
}
