package service

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-system/internal/core/domain"
	"github.com/inkwell/blog-system/internal/core/ports"
	"github.com/inkwell/blog-system/internal/core/service/seed"
	"github.com/inkwell/blog-system/internal/pkg/metrics"
)

// PostRepository owns the post collection. The in-memory slice is
// authoritative after Hydrate; every mutation writes the whole collection
// back to the store before it becomes visible.
type PostRepository struct {
	store       ports.Store
	idempotency ports.IdempotencyStore
	validate    *postValidator
	clock       *Clock
	log         zerolog.Logger

	mu    sync.RWMutex
	posts []domain.Post
}

// NewPostRepository returns a repository over store. idempotency may be nil,
// in which case idempotency keys are ignored.
func NewPostRepository(store ports.Store, idempotency ports.IdempotencyStore, clock *Clock, log zerolog.Logger) *PostRepository {
	if clock == nil {
		clock = NewClock(nil)
	}
	return &PostRepository{
		store:       store,
		idempotency: idempotency,
		validate:    newPostValidator(),
		clock:       clock,
		log:         log,
	}
}

// Hydrate loads the collection. On first run (no posts key) the example posts
// are seeded and written once. Unreadable data yields an empty collection and
// is left in the store untouched until the next mutation.
func (r *PostRepository) Hydrate(ctx context.Context) error {
	raw, ok, err := r.store.Get(ctx, ports.KeyPosts)
	if err != nil {
		return fmt.Errorf("hydrate posts: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !ok {
		posts, err := seed.Posts()
		if err != nil {
			return err
		}
		if err := r.persist(ctx, posts); err != nil {
			return fmt.Errorf("hydrate posts: %w", err)
		}
		r.posts = posts
		r.log.Info().Int("count", len(posts)).Msg("seeded example posts")
		return nil
	}

	var posts []domain.Post
	if err := json.Unmarshal([]byte(raw), &posts); err != nil {
		r.log.Error().
			Err(fmt.Errorf("%w: %s: %v", domain.ErrStoreCorruption, ports.KeyPosts, err)).
			Msg("discarding unreadable posts")
		r.posts = []domain.Post{}
		metrics.PostsStored.Set(0)
		return nil
	}
	if posts == nil {
		posts = []domain.Post{}
	}

	r.posts = posts
	metrics.PostsStored.Set(float64(len(posts)))
	r.log.Debug().Int("count", len(posts)).Msg("posts loaded")
	return nil
}

// Create validates input and prepends a new post authored by author. The
// caller is responsible for passing the signed-in user.
func (r *PostRepository) Create(ctx context.Context, input ports.CreatePostInput, author domain.User) (*domain.Post, error) {
	if err := r.validate.check(&input.Title, &input.Content); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := idempotencyScope(author, input.IdempotencyKey)
	if existing := r.replay(ctx, key, author); existing != nil {
		return existing, nil
	}

	created := r.clock.Next()
	id := created.UnixMilli()
	for r.indexOf(strconv.FormatInt(id, 10)) >= 0 {
		id++
	}

	post := domain.Post{
		ID:        strconv.FormatInt(id, 10),
		Title:     strings.TrimSpace(input.Title),
		Content:   strings.TrimSpace(input.Content),
		Excerpt:   domain.GenerateExcerpt(input.Content),
		Author:    author,
		CreatedAt: created,
		UpdatedAt: created,
		Tags:      domain.NormalizeTags(input.Tags),
	}

	next := make([]domain.Post, 0, len(r.posts)+1)
	next = append(next, post)
	next = append(next, r.posts...)
	if err := r.persist(ctx, next); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	r.posts = next

	if key != "" && r.idempotency != nil {
		if err := r.idempotency.Remember(ctx, key, post.ID); err != nil {
			r.log.Warn().Err(err).Str("idempotency_key", key).Msg("failed to remember idempotency key")
		}
	}

	metrics.PostMutationsTotal.WithLabelValues("create").Inc()
	r.log.Info().Str("post_id", post.ID).Str("author_id", author.ID).Msg("post created")

	out := post.Clone()
	return &out, nil
}

// Update replaces the patched fields of the post and stamps updatedAt. Only
// the author may update; the excerpt is never regenerated.
func (r *PostRepository) Update(ctx context.Context, actor domain.User, id string, patch ports.UpdatePostInput) (*domain.Post, error) {
	if err := r.validate.check(patch.Title, patch.Content); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("update post %s: %w", id, domain.ErrPostNotFound)
	}
	if !r.posts[i].IsAuthoredBy(actor.ID) {
		return nil, fmt.Errorf("update post %s: %w", id, domain.ErrForbidden)
	}

	post := r.posts[i].Clone()
	if patch.Title != nil {
		post.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Content != nil {
		post.Content = strings.TrimSpace(*patch.Content)
	}
	if patch.Tags != nil {
		post.Tags = domain.NormalizeTags(*patch.Tags)
	}
	post.UpdatedAt = r.clock.Now()

	next := slices.Clone(r.posts)
	next[i] = post
	if err := r.persist(ctx, next); err != nil {
		return nil, fmt.Errorf("update post %s: %w", id, err)
	}
	r.posts = next

	metrics.PostMutationsTotal.WithLabelValues("update").Inc()
	r.log.Info().Str("post_id", id).Msg("post updated")

	out := post.Clone()
	return &out, nil
}

// Delete removes the post. Deleting an unknown id is a no-op.
func (r *PostRepository) Delete(ctx context.Context, actor domain.User, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil
	}
	if !r.posts[i].IsAuthoredBy(actor.ID) {
		return fmt.Errorf("delete post %s: %w", id, domain.ErrForbidden)
	}

	next := slices.Delete(slices.Clone(r.posts), i, i+1)
	if err := r.persist(ctx, next); err != nil {
		return fmt.Errorf("delete post %s: %w", id, err)
	}
	r.posts = next

	metrics.PostMutationsTotal.WithLabelValues("delete").Inc()
	r.log.Info().Str("post_id", id).Msg("post deleted")
	return nil
}

// Get returns a copy of the post with the given id.
func (r *PostRepository) Get(id string) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("get post %s: %w", id, domain.ErrPostNotFound)
	}
	p := r.posts[i].Clone()
	return &p, nil
}

func (r *PostRepository) List() []domain.Post {
	return r.filter(func(domain.Post) bool { return true })
}

func (r *PostRepository) ListByAuthor(userID string) []domain.Post {
	return r.filter(func(p domain.Post) bool { return p.Author.ID == userID })
}

func (r *PostRepository) ListByTag(tag *string) []domain.Post {
	if tag == nil {
		return r.List()
	}
	return r.filter(func(p domain.Post) bool { return p.Tags.Contains(*tag) })
}

func (r *PostRepository) filter(keep func(domain.Post) bool) []domain.Post {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		if keep(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}

// replay returns the post author previously created under key, if it still
// exists. Callers hold r.mu so a concurrent create with the same key waits
// for the first to be remembered.
func (r *PostRepository) replay(ctx context.Context, key string, author domain.User) *domain.Post {
	if key == "" || r.idempotency == nil {
		return nil
	}
	id, ok, err := r.idempotency.Lookup(ctx, key)
	if err != nil {
		r.log.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed, creating anyway")
		return nil
	}
	if !ok {
		return nil
	}
	i := r.indexOf(id)
	if i < 0 || !r.posts[i].IsAuthoredBy(author.ID) {
		return nil
	}
	r.log.Info().Str("idempotency_key", key).Str("post_id", id).Msg("idempotent replay")
	p := r.posts[i].Clone()
	return &p
}

// idempotencyScope namespaces a client key by author so two users sending
// the same key never see each other's posts.
func idempotencyScope(author domain.User, key string) string {
	if key == "" {
		return ""
	}
	return author.ID + ":" + key
}

// indexOf scans for id. Callers hold r.mu.
func (r *PostRepository) indexOf(id string) int {
	return slices.IndexFunc(r.posts, func(p domain.Post) bool { return p.ID == id })
}

// persist writes the full collection. Callers hold r.mu.
func (r *PostRepository) persist(ctx context.Context, posts []domain.Post) error {
	raw, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("encode posts: %w", err)
	}
	if err := r.store.Set(ctx, ports.KeyPosts, string(raw)); err != nil {
		return err
	}
	metrics.PostsStored.Set(float64(len(posts)))
	return nil
}
