package mongorepo

import (
	"context"
	"fmt"

	mongodal "github.com/corray333/tutti-amici/internal/dal/mongo"
	"github.com/corray333/tutti-amici/internal/service/models/collection"
	"github.com/corray333/tutti-amici/internal/service/models/document"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DocumentRepository stores each collection kind in its own MongoDB collection.
type DocumentRepository struct {
	client *mongodal.Client
}

// NewDocumentRepository creates a new MongoDB document repository.
func NewDocumentRepository(client *mongodal.Client) *DocumentRepository {
	return &DocumentRepository{
		client: client,
	}
}

// Create inserts record and returns the generated ObjectID in hex form.
func (r *DocumentRepository) Create(ctx context.Context, kind collection.Kind, record any) (string, error) {
	res, err := r.client.Database().Collection(kind.String()).InsertOne(ctx, record)
	if err != nil {
		return "", fmt.Errorf("failed to insert %s document: %w", kind, err)
	}

	return idString(res.InsertedID), nil
}

// Find retrieves documents of kind matching filter. Order is whatever the server returns.
func (r *DocumentRepository) Find(
	ctx context.Context,
	kind collection.Kind,
	filter *document.Filter,
) ([]document.Document, error) {
	cursor, err := r.client.Database().Collection(kind.String()).Find(ctx, filterToBSON(filter))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s documents: %w", kind, err)
	}

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode %s documents: %w", kind, err)
	}

	return toDocuments(raw), nil
}

// ListCollections returns at most limit collection names of the database.
func (r *DocumentRepository) ListCollections(ctx context.Context, limit int) ([]string, error) {
	names, err := r.client.Database().ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}

	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}

	return names, nil
}

func filterToBSON(filter *document.Filter) bson.M {
	if filter == nil {
		return bson.M{}
	}

	return bson.M{filter.Key: filter.Value}
}

func toDocuments(raw []bson.M) []document.Document {
	docs := make([]document.Document, 0, len(raw))
	for _, m := range raw {
		if id, ok := m[document.InternalIDKey]; ok {
			m[document.InternalIDKey] = idString(id)
		}
		docs = append(docs, document.Document(m))
	}

	return docs
}

func idString(id any) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}

	return fmt.Sprint(id)
}
