package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-system/internal/core/domain"
	"github.com/inkwell/blog-system/internal/core/ports"
)

// Blog composes the session manager and the post repository into the state
// exposed to the transport layer. Protected operations take the user the
// caller authenticated and act on that user's behalf.
type Blog struct {
	sessions ports.SessionService
	posts    ports.PostRepository
	log      zerolog.Logger
}

func NewBlog(sessions ports.SessionService, posts ports.PostRepository, log zerolog.Logger) *Blog {
	return &Blog{sessions: sessions, posts: posts, log: log}
}

// Hydrate restores the session, then the posts.
func (b *Blog) Hydrate(ctx context.Context) error {
	if err := b.sessions.Hydrate(ctx); err != nil {
		return err
	}
	if err := b.posts.Hydrate(ctx); err != nil {
		return err
	}
	b.log.Info().
		Bool("authenticated", b.sessions.IsAuthenticated()).
		Int("posts", len(b.posts.List())).
		Msg("blog hydrated")
	return nil
}

// Login returns the new session, or domain.ErrInvalidCredentials.
func (b *Blog) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	ok, err := b.sessions.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	return b.session()
}

func (b *Blog) Register(ctx context.Context, username, email, password string) (*domain.Session, error) {
	if _, err := b.sessions.Register(ctx, username, email, password); err != nil {
		return nil, err
	}
	return b.session()
}

func (b *Blog) Logout(ctx context.Context) error {
	return b.sessions.Logout(ctx)
}

func (b *Blog) Authenticate(token string) (*domain.User, error) {
	return b.sessions.Authenticate(token)
}

func (b *Blog) CurrentUser() *domain.User {
	return b.sessions.CurrentUser()
}

func (b *Blog) IsAuthenticated() bool {
	return b.sessions.IsAuthenticated()
}

// Home lists posts for the public feed, narrowed to tag when it is non-nil.
func (b *Blog) Home(tag *string) ports.HomeView {
	return ports.HomeView{
		Posts:       b.posts.ListByTag(tag),
		Tags:        b.AllTags(),
		SelectedTag: tag,
	}
}

// AllTags returns every distinct tag in order of first appearance.
func (b *Blog) AllTags() []string {
	return distinctTags(b.posts.List())
}

func (b *Blog) PostDetail(id string) (*ports.PostView, error) {
	p, err := b.posts.Get(id)
	if err != nil {
		return nil, err
	}

	canEdit := false
	if u := b.sessions.CurrentUser(); u != nil {
		canEdit = p.IsAuthoredBy(u.ID)
	}
	return &ports.PostView{Post: *p, ReadingTime: p.ReadingTime(), CanEdit: canEdit}, nil
}

// Dashboard lists actor's posts with summary stats.
func (b *Blog) Dashboard(actor *domain.User) (*ports.DashboardView, error) {
	user, err := requireActor(actor)
	if err != nil {
		return nil, err
	}

	posts := b.posts.ListByAuthor(user.ID)
	return &ports.DashboardView{
		User:  *user,
		Posts: posts,
		Stats: ports.DashboardStats{
			TotalPosts: len(posts),
			TotalTags:  len(distinctTags(posts)),
		},
	}, nil
}

func (b *Blog) CreatePost(ctx context.Context, actor *domain.User, input ports.CreatePostInput) (*domain.Post, error) {
	user, err := requireActor(actor)
	if err != nil {
		return nil, err
	}
	return b.posts.Create(ctx, input, *user)
}

// EditPost loads a post for editing, refusing posts actor does not own.
func (b *Blog) EditPost(actor *domain.User, id string) (*domain.Post, error) {
	user, err := requireActor(actor)
	if err != nil {
		return nil, err
	}
	p, err := b.posts.Get(id)
	if err != nil {
		return nil, err
	}
	if !p.IsAuthoredBy(user.ID) {
		return nil, fmt.Errorf("edit post %s: %w", id, domain.ErrForbidden)
	}
	return p, nil
}

func (b *Blog) UpdatePost(ctx context.Context, actor *domain.User, id string, patch ports.UpdatePostInput) (*domain.Post, error) {
	user, err := requireActor(actor)
	if err != nil {
		return nil, err
	}
	return b.posts.Update(ctx, *user, id, patch)
}

func (b *Blog) DeletePost(ctx context.Context, actor *domain.User, id string) error {
	user, err := requireActor(actor)
	if err != nil {
		return err
	}
	return b.posts.Delete(ctx, *user, id)
}

// requireActor copies actor so later session changes cannot alter who a
// request acts as.
func requireActor(actor *domain.User) (*domain.User, error) {
	if actor == nil || actor.ID == "" {
		return nil, domain.ErrUnauthenticated
	}
	u := *actor
	return &u, nil
}

func (b *Blog) session() (*domain.Session, error) {
	u := b.sessions.CurrentUser()
	if u == nil {
		return nil, domain.ErrUnauthenticated
	}
	return &domain.Session{Token: b.sessions.Token(), User: *u}, nil
}

func distinctTags(posts []domain.Post) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, p := range posts {
		for _, t := range p.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}
