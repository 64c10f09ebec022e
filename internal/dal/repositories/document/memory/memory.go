// Package memoryrepo keeps documents in process memory. It backs the
// "memory" database driver used for local runs and tests; nothing survives
// a restart.
package memoryrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/corray333/tutti-amici/internal/service/models/collection"
	"github.com/corray333/tutti-amici/internal/service/models/document"
	"github.com/google/uuid"
)

// DocumentRepository is an in-memory document store safe for concurrent use.
type DocumentRepository struct {
	mu          sync.RWMutex
	collections map[collection.Kind][]document.Document
}

// NewDocumentRepository creates an empty in-memory document repository.
func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{
		collections: make(map[collection.Kind][]document.Document),
	}
}

// Create stores a JSON copy of record so later changes to it are not visible.
func (r *DocumentRepository) Create(_ context.Context, kind collection.Kind, record any) (string, error) {
	body, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s document: %w", kind, err)
	}

	doc := document.Document{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", fmt.Errorf("failed to decode %s document: %w", kind, err)
	}

	id := uuid.NewString()
	doc[document.InternalIDKey] = id

	r.mu.Lock()
	r.collections[kind] = append(r.collections[kind], doc)
	r.mu.Unlock()

	return id, nil
}

// Find returns copies of the documents of kind matching filter.
func (r *DocumentRepository) Find(
	_ context.Context,
	kind collection.Kind,
	filter *document.Filter,
) ([]document.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := make([]document.Document, 0, len(r.collections[kind]))
	for _, doc := range r.collections[kind] {
		if filter != nil {
			v, ok := doc[filter.Key].(string)
			if !ok || v != filter.Value {
				continue
			}
		}
		docs = append(docs, clone(doc))
	}

	return docs, nil
}

// ListCollections returns the sorted names of non-empty collections.
func (r *DocumentRepository) ListCollections(_ context.Context, limit int) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.collections))
	for kind, docs := range r.collections {
		if len(docs) > 0 {
			names = append(names, kind.String())
		}
	}
	sort.Strings(names)

	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}

	return names, nil
}

func clone(doc document.Document) document.Document {
	out := make(document.Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}

	return out
}
