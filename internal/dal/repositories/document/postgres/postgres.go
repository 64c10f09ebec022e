package postgresrepo

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/tutti-amici/internal/service/models/collection"
	"github.com/corray333/tutti-amici/internal/service/models/document"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const documentsTable = "documents"

// GenericConn is an interface that works with both pgxpool.Pool and pgx.Tx.
type GenericConn interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// DocumentRepository keeps documents of every kind as JSONB rows in one table.
type DocumentRepository struct {
	conn GenericConn
	sb   sq.StatementBuilderType
}

// NewDocumentRepository creates a new Postgres document repository.
func NewDocumentRepository(conn GenericConn) *DocumentRepository {
	return &DocumentRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Create inserts record as a JSONB body and returns its generated UUID.
func (r *DocumentRepository) Create(ctx context.Context, kind collection.Kind, record any) (string, error) {
	body, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s document: %w", kind, err)
	}

	id := uuid.New()

	sql, args, err := r.buildInsert(id, kind, body)
	if err != nil {
		return "", fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sql, args...); err != nil {
		return "", fmt.Errorf("failed to insert %s document: %w", kind, err)
	}

	return id.String(), nil
}

// Find retrieves documents of kind matching filter.
func (r *DocumentRepository) Find(
	ctx context.Context,
	kind collection.Kind,
	filter *document.Filter,
) ([]document.Document, error) {
	sql, args, err := r.buildFind(kind, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s documents: %w", kind, err)
	}
	defer rows.Close()

	docs := make([]document.Document, 0)
	for rows.Next() {
		var (
			id   string
			body []byte
		)
		if err := rows.Scan(&id, &body); err != nil {
			return nil, fmt.Errorf("failed to scan %s document: %w", kind, err)
		}

		doc := document.Document{}
		if err := json.Unmarshal(body, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode %s document %s: %w", kind, id, err)
		}
		doc[document.InternalIDKey] = id

		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return docs, nil
}

// ListCollections returns at most limit distinct collection names that hold documents.
func (r *DocumentRepository) ListCollections(ctx context.Context, limit int) ([]string, error) {
	sql, args, err := r.buildListCollections(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan collection name: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return names, nil
}

func (r *DocumentRepository) buildInsert(id uuid.UUID, kind collection.Kind, body []byte) (string, []interface{}, error) {
	return r.sb.
		Insert(documentsTable).
		Columns("id", "collection", "body").
		Values(id.String(), kind.String(), string(body)).
		ToSql()
}

func (r *DocumentRepository) buildFind(kind collection.Kind, filter *document.Filter) (string, []interface{}, error) {
	query := r.sb.
		Select("id::text", "body").
		From(documentsTable).
		Where(sq.Eq{"collection": kind.String()})

	if filter != nil {
		query = query.Where(sq.Expr("body ->> ? = ?", filter.Key, filter.Value))
	}

	return query.ToSql()
}

func (r *DocumentRepository) buildListCollections(limit int) (string, []interface{}, error) {
	query := r.sb.
		Select("collection").
		Distinct().
		From(documentsTable).
		OrderBy("collection")

	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	return query.ToSql()
}
