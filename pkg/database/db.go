// Package database owns the process-scoped MongoDB client.
//
// The client is acquired once at boot via Connect and released on shutdown
// via Close; handlers reach the store through Collection. There is no lazy
// or ad-hoc connection establishment on the request path.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/mahimDev/bistro-boss-server/config"
)

var (
	client *mongo.Client
	db     *mongo.Database
)

// Connect opens the MongoDB client and verifies the connection with a ping.
// Returns an error instead of calling log.Fatal so the caller can shut down
// gracefully.
func Connect(ctx context.Context) error {
	opts := options.Client().
		ApplyURI(config.MongoURI()).
		SetMaxPoolSize(25).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	c, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := c.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = c.Disconnect(context.Background())
		return fmt.Errorf("database: ping: %w", err)
	}

	client = c
	db = c.Database(config.MongoDB())
	return nil
}

// Close releases the client. Safe to call when Connect never succeeded.
func Close(ctx context.Context) error {
	if client == nil {
		return nil
	}
	err := client.Disconnect(ctx)
	client = nil
	db = nil
	if err != nil {
		return fmt.Errorf("database: disconnect: %w", err)
	}
	return nil
}

// DB returns the application database handle.
func DB() *mongo.Database { return db }

// Collection returns a named collection from the application database.
// Nil before Connect succeeds; callers constructed for display purposes
// (e.g. the route listing CLI) never dereference it.
func Collection(name string) *mongo.Collection {
	if db == nil {
		return nil
	}
	return db.Collection(name)
}
