package idocumentrepo

import (
	"context"
	"errors"

	"github.com/corray333/tutti-amici/internal/service/models/collection"
	"github.com/corray333/tutti-amici/internal/service/models/document"
)

// ErrStorageUnavailable is returned when no document store is configured.
var ErrStorageUnavailable = errors.New("database is not configured")

// IDocumentRepository is an interface for document store repositories.
type IDocumentRepository interface {
	// Create inserts record into the collection of kind and returns the generated id.
	Create(ctx context.Context, kind collection.Kind, record any) (string, error)

	// Find returns every document of kind, restricted by filter when it is not nil.
	Find(ctx context.Context, kind collection.Kind, filter *document.Filter) ([]document.Document, error)

	// ListCollections returns at most limit collection names.
	ListCollections(ctx context.Context, limit int) ([]string, error)
}
