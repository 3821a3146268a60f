package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/terravista/estate-core/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

// Mongo owns the database client for the whole process lifetime. It is
// constructed once at startup, injected into the repositories, and closed
// on shutdown — no package-level connection state.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens the MongoDB connection and verifies it with a ping.
func Connect(ctx context.Context, cfg *config.AppConfig) (*Mongo, error) {
	uri := cfg.Mongo.URI
	if uri == "" {
		return nil, errors.New("mongo connection URI is required (set MONGODB_URI)")
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Mongo{client: client, db: client.Database(cfg.Mongo.Database)}, nil
}

// DB returns the selected database handle.
func (m *Mongo) DB() *mongo.Database { return m.db }

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
