package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNoDatabaseName = errors.New("database name is not configured")

// Client represents a MongoDB client bound to a single database.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// Database returns the database all collections live in.
func (c *Client) Database() *mongo.Database {
	return c.db
}

// Close disconnects the client for graceful shutdown.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// NewClient creates a new MongoDB client. The driver connects lazily, so an
// unreachable server is reported by the first operation, not here.
func NewClient(ctx context.Context, uri, dbName string, timeout time.Duration) (*Client, error) {
	if dbName == "" {
		return nil, ErrNoDatabaseName
	}

	opts := options.Client().
		ApplyURI(uri).
		SetAppName("tutti-amici").
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})
	if timeout > 0 {
		opts.SetTimeout(timeout)
		opts.SetServerSelectionTimeout(timeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	return &Client{
		client: client,
		db:     client.Database(dbName),
	}, nil
}
