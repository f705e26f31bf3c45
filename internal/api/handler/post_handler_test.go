package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/inkwell/blog-system/internal/core/domain"
	"github.com/inkwell/blog-system/internal/core/ports"
)

func TestPostHandler_List_TagFilter(t *testing.T) {
	var gotTag *string
	stub := &stubBlog{
		t: t,
		homeFn: func(tag *string) ports.HomeView {
			gotTag = tag
			return ports.HomeView{Posts: []domain.Post{samplePost()}, Tags: []string{"React", "JavaScript"}, SelectedTag: tag}
		},
	}
	handler := NewPostHandler(stub)

	c, rec := newJSONContext(http.MethodGet, "/v1/posts?tag=React", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotTag == nil || *gotTag != "React" {
		t.Fatalf("expected tag React, got %v", gotTag)
	}

	var resp homeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Posts) != 1 || resp.SelectedTag == nil || *resp.SelectedTag != "React" {
		t.Fatalf("unexpected response %+v", resp)
	}
	p := resp.Posts[0]
	if p.Slug != "getting-started-with-react-hooks" {
		t.Fatalf("unexpected slug %q", p.Slug)
	}
	if p.Links.Self != "/v1/posts/1" || p.Links.Edit != "/v1/posts/1/edit" {
		t.Fatalf("unexpected links %+v", p.Links)
	}
}

func TestPostHandler_List_EmptyTagMeansAll(t *testing.T) {
	stub := &stubBlog{
		t: t,
		homeFn: func(tag *string) ports.HomeView {
			if tag != nil {
				t.Fatalf("expected nil tag, got %q", *tag)
			}
			return ports.HomeView{Posts: []domain.Post{}, Tags: []string{}}
		},
	}

	c, rec := newJSONContext(http.MethodGet, "/v1/posts?tag=", "")
	if err := NewPostHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if posts, ok := resp["posts"].([]any); !ok || len(posts) != 0 {
		t.Fatalf("expected empty posts array, got %v", resp["posts"])
	}
}

func TestPostHandler_Get(t *testing.T) {
	stub := &stubBlog{
		t: t,
		detailFn: func(id string) (*ports.PostView, error) {
			if id != "1" {
				return nil, domain.ErrPostNotFound
			}
			return &ports.PostView{Post: samplePost(), ReadingTime: 3, CanEdit: true}, nil
		},
	}
	handler := NewPostHandler(stub)

	c, rec := newJSONContext(http.MethodGet, "/v1/posts/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["can_edit"] != true || resp["reading_time"] != float64(3) || resp["id"] != "1" {
		t.Fatalf("unexpected detail payload %+v", resp)
	}

	c, _ = newJSONContext(http.MethodGet, "/v1/posts/nope", "")
	c.SetParamNames("id")
	c.SetParamValues("nope")
	if err := handler.Get(c); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostHandler_Create(t *testing.T) {
	stub := &stubBlog{
		t: t,
		createFn: func(ctx context.Context, actor *domain.User, input ports.CreatePostInput) (*domain.Post, error) {
			if actor == nil || actor.ID != eldhose.ID {
				t.Fatalf("unexpected actor %+v", actor)
			}
			if input.IdempotencyKey != "abc-123" {
				t.Fatalf("idempotency key not forwarded: %q", input.IdempotencyKey)
			}
			if input.Title != "Getting Started with React Hooks" || len(input.Tags) != 2 {
				t.Fatalf("unexpected input %+v", input)
			}
			p := samplePost()
			return &p, nil
		},
	}
	handler := NewPostHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/v1/posts",
		`{"title":"Getting Started with React Hooks","content":"body","tags":["React","JavaScript"]}`)
	c.Request().Header.Set(HeaderIdempotencyKey, " abc-123 ")
	if err := handler.Create(withUser(c, eldhose)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/v1/posts/1" {
		t.Fatalf("unexpected Location %q", loc)
	}
}

func TestPostHandler_Create_ValidationError(t *testing.T) {
	stub := &stubBlog{
		t: t,
		createFn: func(ctx context.Context, actor *domain.User, input ports.CreatePostInput) (*domain.Post, error) {
			return nil, &domain.ValidationError{Fields: map[string]string{"title": "Title is required"}}
		},
	}

	c, _ := newJSONContext(http.MethodPost, "/v1/posts", `{"title":"","content":""}`)
	err := NewPostHandler(stub).Create(withUser(c, eldhose))
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPostHandler_Update_PartialFields(t *testing.T) {
	stub := &stubBlog{
		t: t,
		updateFn: func(ctx context.Context, actor *domain.User, id string, patch ports.UpdatePostInput) (*domain.Post, error) {
			if id != "1" {
				t.Fatalf("unexpected id %q", id)
			}
			if patch.Title == nil || *patch.Title != "New title here" {
				t.Fatalf("title not forwarded: %+v", patch)
			}
			if patch.Content != nil || patch.Tags != nil {
				t.Fatalf("omitted fields should stay nil: %+v", patch)
			}
			p := samplePost()
			p.Title = *patch.Title
			return &p, nil
		},
	}

	c, rec := newJSONContext(http.MethodPut, "/v1/posts/1", `{"title":"New title here"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := NewPostHandler(stub).Update(withUser(c, eldhose)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestPostHandler_EditAndDelete_Forbidden(t *testing.T) {
	stub := &stubBlog{
		t:        t,
		editFn:   func(*domain.User, string) (*domain.Post, error) { return nil, domain.ErrForbidden },
		deleteFn: func(context.Context, *domain.User, string) error { return domain.ErrForbidden },
	}
	handler := NewPostHandler(stub)

	c, _ := newJSONContext(http.MethodGet, "/v1/posts/1/edit", "")
	if err := handler.Edit(withUser(c, eldhose)); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on edit, got %v", err)
	}

	c, _ = newJSONContext(http.MethodDelete, "/v1/posts/1", "")
	if err := handler.Delete(withUser(c, eldhose)); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on delete, got %v", err)
	}
}

func TestPostHandler_Dashboard(t *testing.T) {
	stub := &stubBlog{
		t: t,
		dashboardFn: func(actor *domain.User) (*ports.DashboardView, error) {
			return &ports.DashboardView{
				User:  *actor,
				Posts: []domain.Post{samplePost()},
				Stats: ports.DashboardStats{TotalPosts: 1, TotalTags: 2},
			}, nil
		},
	}

	c, rec := newJSONContext(http.MethodGet, "/v1/dashboard", "")
	if err := NewPostHandler(stub).Dashboard(withUser(c, eldhose)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp dashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Stats.TotalPosts != 1 || resp.Stats.TotalTags != 2 || resp.User.ID != "1" {
		t.Fatalf("unexpected dashboard %+v", resp)
	}
}

func TestPostHandler_ActsAsAuthenticatedUser(t *testing.T) {
	// The live session moved to another account after the request was
	// authenticated. Every protected call must still act as eldhose.
	other := &domain.User{ID: "2", Username: "priya", Email: "priya@example.com"}
	checkActor := func(name string, actor *domain.User) {
		t.Helper()
		if actor == nil || actor.ID != eldhose.ID {
			t.Fatalf("%s: expected actor %q, got %+v", name, eldhose.ID, actor)
		}
	}
	p := samplePost()
	stub := &stubBlog{
		t:       t,
		current: other,
		dashboardFn: func(actor *domain.User) (*ports.DashboardView, error) {
			checkActor("Dashboard", actor)
			return &ports.DashboardView{User: *actor, Posts: []domain.Post{}}, nil
		},
		createFn: func(_ context.Context, actor *domain.User, _ ports.CreatePostInput) (*domain.Post, error) {
			checkActor("CreatePost", actor)
			return &p, nil
		},
		editFn: func(actor *domain.User, _ string) (*domain.Post, error) {
			checkActor("EditPost", actor)
			return &p, nil
		},
		updateFn: func(_ context.Context, actor *domain.User, _ string, _ ports.UpdatePostInput) (*domain.Post, error) {
			checkActor("UpdatePost", actor)
			return &p, nil
		},
		deleteFn: func(_ context.Context, actor *domain.User, _ string) error {
			checkActor("DeletePost", actor)
			return nil
		},
	}
	handler := NewPostHandler(stub)

	c, _ := newJSONContext(http.MethodGet, "/v1/dashboard", "")
	if err := handler.Dashboard(withUser(c, eldhose)); err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	c, _ = newJSONContext(http.MethodPost, "/v1/posts", `{"title":"Hello there","content":"body"}`)
	if err := handler.Create(withUser(c, eldhose)); err != nil {
		t.Fatalf("create: %v", err)
	}
	c, _ = newJSONContext(http.MethodGet, "/v1/posts/1/edit", "")
	if err := handler.Edit(withUser(c, eldhose)); err != nil {
		t.Fatalf("edit: %v", err)
	}
	c, _ = newJSONContext(http.MethodPut, "/v1/posts/1", `{"title":"New title here"}`)
	if err := handler.Update(withUser(c, eldhose)); err != nil {
		t.Fatalf("update: %v", err)
	}
	c, _ = newJSONContext(http.MethodDelete, "/v1/posts/1", "")
	if err := handler.Delete(withUser(c, eldhose)); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestPostHandler_Protected_MissingUser(t *testing.T) {
	handler := NewPostHandler(&stubBlog{t: t})

	c, _ := newJSONContext(http.MethodPost, "/v1/posts", `{"title":"Hello there","content":"body"}`)
	if err := handler.Create(c); httpCode(err) != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	c, _ = newJSONContext(http.MethodGet, "/v1/dashboard", "")
	if err := handler.Dashboard(c); httpCode(err) != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestPostHandler_Tags(t *testing.T) {
	stub := &stubBlog{t: t, tagsFn: func() []string { return []string{"Go"} }}

	c, rec := newJSONContext(http.MethodGet, "/v1/tags", "")
	if err := NewPostHandler(stub).Tags(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Body.String() != "{\"tags\":[\"Go\"]}\n" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}
