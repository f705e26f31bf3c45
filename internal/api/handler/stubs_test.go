package handler

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-system/internal/core/domain"
	"github.com/inkwell/blog-system/internal/core/ports"
)

// stubBlog is a ports.BlogService whose behaviour is set per test. Calls to
// methods without a configured func fail the test.
type stubBlog struct {
	t *testing.T

	// current is what CurrentUser reports, standing in for the live session.
	current *domain.User

	loginFn     func(ctx context.Context, email, password string) (*domain.Session, error)
	registerFn  func(ctx context.Context, username, email, password string) (*domain.Session, error)
	logoutFn    func(ctx context.Context) error
	homeFn      func(tag *string) ports.HomeView
	tagsFn      func() []string
	detailFn    func(id string) (*ports.PostView, error)
	dashboardFn func(actor *domain.User) (*ports.DashboardView, error)
	createFn    func(ctx context.Context, actor *domain.User, input ports.CreatePostInput) (*domain.Post, error)
	editFn      func(actor *domain.User, id string) (*domain.Post, error)
	updateFn    func(ctx context.Context, actor *domain.User, id string, patch ports.UpdatePostInput) (*domain.Post, error)
	deleteFn    func(ctx context.Context, actor *domain.User, id string) error
}

func (s *stubBlog) unexpected(name string) {
	s.t.Helper()
	s.t.Fatalf("unexpected call to %s", name)
}

func (s *stubBlog) Hydrate(context.Context) error { return nil }

func (s *stubBlog) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	if s.loginFn == nil {
		s.unexpected("Login")
	}
	return s.loginFn(ctx, email, password)
}

func (s *stubBlog) Register(ctx context.Context, username, email, password string) (*domain.Session, error) {
	if s.registerFn == nil {
		s.unexpected("Register")
	}
	return s.registerFn(ctx, username, email, password)
}

func (s *stubBlog) Logout(ctx context.Context) error {
	if s.logoutFn == nil {
		s.unexpected("Logout")
	}
	return s.logoutFn(ctx)
}

func (s *stubBlog) Authenticate(string) (*domain.User, error) { return nil, domain.ErrUnauthenticated }
func (s *stubBlog) CurrentUser() *domain.User                 { return s.current }
func (s *stubBlog) IsAuthenticated() bool                     { return s.current != nil }

func (s *stubBlog) Home(tag *string) ports.HomeView {
	if s.homeFn == nil {
		s.unexpected("Home")
	}
	return s.homeFn(tag)
}

func (s *stubBlog) AllTags() []string {
	if s.tagsFn == nil {
		s.unexpected("AllTags")
	}
	return s.tagsFn()
}

func (s *stubBlog) PostDetail(id string) (*ports.PostView, error) {
	if s.detailFn == nil {
		s.unexpected("PostDetail")
	}
	return s.detailFn(id)
}

func (s *stubBlog) Dashboard(actor *domain.User) (*ports.DashboardView, error) {
	if s.dashboardFn == nil {
		s.unexpected("Dashboard")
	}
	return s.dashboardFn(actor)
}

func (s *stubBlog) CreatePost(ctx context.Context, actor *domain.User, input ports.CreatePostInput) (*domain.Post, error) {
	if s.createFn == nil {
		s.unexpected("CreatePost")
	}
	return s.createFn(ctx, actor, input)
}

func (s *stubBlog) EditPost(actor *domain.User, id string) (*domain.Post, error) {
	if s.editFn == nil {
		s.unexpected("EditPost")
	}
	return s.editFn(actor, id)
}

func (s *stubBlog) UpdatePost(ctx context.Context, actor *domain.User, id string, patch ports.UpdatePostInput) (*domain.Post, error) {
	if s.updateFn == nil {
		s.unexpected("UpdatePost")
	}
	return s.updateFn(ctx, actor, id, patch)
}

func (s *stubBlog) DeletePost(ctx context.Context, actor *domain.User, id string) error {
	if s.deleteFn == nil {
		s.unexpected("DeletePost")
	}
	return s.deleteFn(ctx, actor, id)
}

var (
	eldhose = domain.User{ID: "1", Username: "eldhose", Email: "eldhose@example.com"}
	created = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
)

func samplePost() domain.Post {
	return domain.Post{
		ID:        "1",
		Title:     "Getting Started with React Hooks",
		Content:   "React Hooks changed how we write components.",
		Excerpt:   "React Hooks changed how we write components.",
		Author:    eldhose,
		CreatedAt: created,
		UpdatedAt: created,
		Tags:      domain.Tags{"React", "JavaScript"},
	}
}

// newJSONContext builds an echo context for a request with a JSON body.
func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// withUser injects u the way the Auth middleware does.
func withUser(c echo.Context, u domain.User) echo.Context {
	c.Set(ContextKeyUser, &u)
	return c
}

// httpCode returns the status an echo.HTTPError carries, or 0.
func httpCode(err error) int {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return 0
}
