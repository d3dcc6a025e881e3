// internal/testutil/setup.go

// Package testutil holds shared helpers for integration and handler
// tests: a per-test Mongo database, fixture builders, and small HTTP
// conveniences. Tests that need Mongo skip when none is reachable.
package testutil

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	clientOnce sync.Once
	client     *mongo.Client
	clientErr  error

	dbCounter int64
	counterMu sync.Mutex
)

// mongoURI returns the test MongoDB URI, overridable via
// CIVICBRIDGE_TEST_MONGO_URI.
func mongoURI() string {
	if uri := os.Getenv("CIVICBRIDGE_TEST_MONGO_URI"); uri != "" {
		return uri
	}
	return "mongodb://localhost:27017"
}

func sharedClient() (*mongo.Client, error) {
	clientOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		c, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI()))
		if err != nil {
			clientErr = err
			return
		}
		if err := c.Ping(ctx, readpref.Primary()); err != nil {
			clientErr = err
			return
		}
		client = c
	})
	return client, clientErr
}

// SetupTestDB returns a fresh database for this test and registers a
// cleanup that drops it. The test is skipped when no MongoDB instance
// is reachable.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	c, err := sharedClient()
	if err != nil {
		t.Skipf("skipping: MongoDB not available at %s: %v", mongoURI(), err)
	}

	counterMu.Lock()
	dbCounter++
	n := dbCounter
	counterMu.Unlock()

	name := fmt.Sprintf("civicbridge_test_%d_%d", time.Now().UnixNano(), n)
	db := c.Database(name)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
	})

	return db
}

// TestContext returns a context with a generous timeout for test
// database operations.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}
