package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"blog-relay/config"
)

// Mongo holds the client and database opened once at startup and shared for the process lifetime.
type Mongo struct {
	Client   *mongo.Client
	Database *mongo.Database
	cfg      config.MongoConfig
}

// Open creates the client without waiting for the server. The driver connects
// in the background; ConnectTimeout also bounds server selection, so operations
// against an unreachable server fail after that long instead of the driver's 30s.
func Open(cfg config.MongoConfig) (*Mongo, error) {
	timeout := connectTimeout(cfg)

	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)
	opts := options.Client().
		ApplyURI(cfg.ConnectionURI()).
		SetServerAPIOptions(serverAPI).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cl, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	return &Mongo{
		Client:   cl,
		Database: cl.Database(cfg.Database),
		cfg:      cfg,
	}, nil
}

// Bootstrap pings the primary and creates the indexes. Each step gets its own
// ConnectTimeout deadline, so it returns promptly when the server is down.
func (m *Mongo) Bootstrap(ctx context.Context) error {
	timeout := connectTimeout(m.cfg)

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	err := m.Client.Ping(pingCtx, readpref.Primary())
	cancel()
	if err != nil {
		return fmt.Errorf("mongo ping: %w", err)
	}

	idxCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return m.EnsureIndexes(idxCtx)
}

func connectTimeout(cfg config.MongoConfig) time.Duration {
	if cfg.ConnectTimeout <= 0 {
		return 10 * time.Second
	}
	return cfg.ConnectTimeout
}

// Collection returns the blog post collection.
func (m *Mongo) Collection() *mongo.Collection {
	return m.Database.Collection(m.cfg.Collection)
}

// Ping checks the server is reachable. Used by the health endpoint.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.Database.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

// Disconnect closes the client.
func (m *Mongo) Disconnect(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the jobs and the read endpoint query on.
// title is indexed but not unique: dedup is a pre-insert lookup.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	col := m.Collection()

	// title lookups during ingestion
	if _, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "title", Value: 1}},
		Options: options.Index().SetName("idx_title"),
	}); err != nil {
		return fmt.Errorf("create idx_title: %w", err)
	}

	// oldest draft lookup and published listing
	if _, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "status", Value: 1}, {Key: "pubDate", Value: 1}},
		Options: options.Index().SetName("idx_status_pub_date"),
	}); err != nil {
		return fmt.Errorf("create idx_status_pub_date: %w", err)
	}

	return nil
}
