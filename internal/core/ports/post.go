package ports

import (
	"context"

	"github.com/inkwell/blog-system/internal/core/domain"
)

// CreatePostInput carries the fields an author supplies for a new post.
type CreatePostInput struct {
	Title   string
	Content string
	Tags    []string
	// IdempotencyKey, when set, makes repeated submissions return the first post.
	IdempotencyKey string
}

// UpdatePostInput is a partial update; nil fields are left unchanged.
type UpdatePostInput struct {
	Title   *string
	Content *string
	Tags    *[]string
}

// PostRepository owns the authoritative post collection.
type PostRepository interface {
	Hydrate(ctx context.Context) error
	Create(ctx context.Context, input CreatePostInput, author domain.User) (*domain.Post, error)
	Update(ctx context.Context, actor domain.User, id string, patch UpdatePostInput) (*domain.Post, error)
	Delete(ctx context.Context, actor domain.User, id string) error
	Get(id string) (*domain.Post, error)
	List() []domain.Post
	ListByAuthor(userID string) []domain.Post
	// ListByTag returns every post when tag is nil.
	ListByTag(tag *string) []domain.Post
}
