package ports

import "context"

// Fixed keys of the persisted layout.
const (
	KeyToken = "blog_token"
	KeyUser  = "blog_user"
	KeyPosts = "blog_posts"
)

// Store is the persistent key-value adapter every component reads and
// writes through. Values are opaque strings; callers encode JSON themselves.
type Store interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Pinger is implemented by backends that can report their own health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// IdempotencyStore remembers which post a client-supplied key produced.
type IdempotencyStore interface {
	Lookup(ctx context.Context, key string) (postID string, ok bool, err error)
	Remember(ctx context.Context, key, postID string) error
}
