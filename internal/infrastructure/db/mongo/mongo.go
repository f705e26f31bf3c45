package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config selects the deployment and database shared by the key-value store
// and the credential repository.
type Config struct {
	URI      string
	Database string
	// Timeout bounds connecting and every single operation. Zero means 10s.
	Timeout time.Duration
}

// Conn is one client to one database. STORE_BACKEND=mongo and
// AUTH_PROVIDER=mongo both hang off the same Conn, so a process never holds
// two connection pools to the same deployment.
type Conn struct {
	client  *mongo.Client
	db      *mongo.Database
	timeout time.Duration
}

// Connect dials cfg.URI and pings the primary before returning.
func Connect(ctx context.Context, cfg Config) (*Conn, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(cfg.URI).
		SetAppName("blog-system"))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	conn := &Conn{client: client, db: client.Database(cfg.Database), timeout: timeout}
	if err := conn.Ping(connectCtx); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, err
	}
	return conn, nil
}

// Ping reports whether the deployment answers within the operation timeout.
// It backs the readiness probe of every component built on c.
func (c *Conn) Ping(ctx context.Context) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	if err := c.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongo ping: %w", err)
	}
	return nil
}

// Close disconnects the client. Components built on c stop working.
func (c *Conn) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// Store returns the key-value store kept in the local_storage collection.
func (c *Conn) Store() *Store {
	return &Store{conn: c, col: c.db.Collection(collectionStorage)}
}

// Credentials returns the account repository kept in the accounts collection.
func (c *Conn) Credentials() *CredentialRepository {
	return &CredentialRepository{conn: c, col: c.db.Collection(collectionAccounts)}
}

func (c *Conn) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}
