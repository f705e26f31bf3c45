package ports

import (
	"context"

	"github.com/inkwell/blog-system/internal/core/domain"
)

// HomeView is the public feed, optionally narrowed to one tag.
type HomeView struct {
	Posts       []domain.Post
	Tags        []string
	SelectedTag *string
}

// PostView is a single post as shown on its detail page.
type PostView struct {
	Post        domain.Post
	ReadingTime int
	CanEdit     bool
}

// DashboardStats summarises the current user's posts.
type DashboardStats struct {
	TotalPosts int
	TotalTags  int
}

// DashboardView lists the current user's posts.
type DashboardView struct {
	User  domain.User
	Posts []domain.Post
	Stats DashboardStats
}

// BlogService is the application shell the transport layer talks to. It
// gates protected operations on the session and delegates the rest.
type BlogService interface {
	Hydrate(ctx context.Context) error

	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Register(ctx context.Context, username, email, password string) (*domain.Session, error)
	Logout(ctx context.Context) error
	Authenticate(token string) (*domain.User, error)
	CurrentUser() *domain.User
	IsAuthenticated() bool

	Home(tag *string) HomeView
	AllTags() []string
	PostDetail(id string) (*PostView, error)

	// The operations below act on behalf of actor, the user the caller
	// authenticated. A nil actor yields domain.ErrUnauthenticated.
	Dashboard(actor *domain.User) (*DashboardView, error)
	CreatePost(ctx context.Context, actor *domain.User, input CreatePostInput) (*domain.Post, error)
	EditPost(actor *domain.User, id string) (*domain.Post, error)
	UpdatePost(ctx context.Context, actor *domain.User, id string, patch UpdatePostInput) (*domain.Post, error)
	DeletePost(ctx context.Context, actor *domain.User, id string) error
}
