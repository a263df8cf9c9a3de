package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Production collection names.
const (
	UserCollection = "users"
	ListCollection = "lists"
	TaskCollection = "tasks"
)

// connectTimeout bounds the initial ping after connecting.
const connectTimeout = 10 * time.Second

// DisconnectTimeout bounds the disconnect during shutdown.
const DisconnectTimeout = 5 * time.Second

// Client wraps the process-wide Mongo client and the application database.
// It is created once at startup and closed during shutdown; collection
// handles are passed into the stores by the caller.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
	logger *slog.Logger
}

// Connect opens a connection to MongoDB using the given URI, verifies it
// with a ping, and returns a Client bound to the named database.
func Connect(ctx context.Context, uri, database string, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(slog.String("component", "mongodb"))

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		// Best effort: release whatever the driver allocated.
		if dErr := client.Disconnect(context.Background()); dErr != nil {
			log.Warn("failed to disconnect after ping failure", slog.String("error", dErr.Error()))
		}
		return nil, fmt.Errorf("mongodb ping failed: %w", err)
	}

	log.Info("connected to mongodb", slog.String("database", database))

	return &Client{
		client: client,
		db:     client.Database(database),
		logger: log,
	}, nil
}

// Database returns the application database handle.
func (c *Client) Database() *mongo.Database {
	return c.db
}

// Collection returns a handle to the named collection in the application
// database.
func (c *Client) Collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}

// Close disconnects the underlying Mongo client.
func (c *Client) Close(ctx context.Context) error {
	if err := c.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from mongodb: %w", err)
	}
	c.logger.Info("disconnected from mongodb")
	return nil
}

// EnsureUserIndexes creates the unique indexes on the user collection that
// back the username/email uniqueness invariant. Creating an index that
// already exists is a no-op, so this is safe to run on every startup.
func EnsureUserIndexes(ctx context.Context, users *mongo.Collection) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("username_unique"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		},
	}

	if _, err := users.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	return nil
}
