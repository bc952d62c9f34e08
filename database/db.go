package database

import (
	"context"
	"fmt"
	"time"

	"cardoctor/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names inside the configured database.
const (
	ServicesCollection = "services"
	BookingsCollection = "bookings"
)

// ClientOptions builds the driver options for cfg. Credentials from DB_USER and
// DB_PASS take precedence over any embedded in DATABASE_URL.
func ClientOptions(cfg *config.Config) *options.ClientOptions {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	opts := options.Client().
		ApplyURI(cfg.DatabaseURL).
		SetServerAPIOptions(serverAPI).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	if cfg.DBUser != "" {
		opts.SetAuth(options.Credential{Username: cfg.DBUser, Password: cfg.DBPass})
	}
	return opts
}

// Connect opens a MongoDB client and pings the primary.
func Connect(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, ClientOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// Database returns the application database handle.
func Database(client *mongo.Client, cfg *config.Config) *mongo.Database {
	return client.Database(cfg.DBName)
}
