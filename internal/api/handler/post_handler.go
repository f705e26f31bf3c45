package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-system/internal/core/ports"
)

// HeaderIdempotencyKey deduplicates repeated create submissions.
const HeaderIdempotencyKey = "Idempotency-Key"

// PostHandler handles HTTP requests for post operations.
type PostHandler struct {
	blog ports.BlogService
}

func NewPostHandler(blog ports.BlogService) *PostHandler {
	return &PostHandler{blog: blog}
}

// List handles GET /v1/posts.
//
// @Summary      List posts
// @Description  Newest first. An empty or missing tag returns every post.
// @Tags         posts
// @Produce      json
// @Param        tag  query     string  false  "Exact tag to filter by"
// @Success      200  {object}  homeResponse
// @Router       /v1/posts [get]
func (h *PostHandler) List(c echo.Context) error {
	var tag *string
	if t := c.QueryParam("tag"); t != "" {
		tag = &t
	}

	home := h.blog.Home(tag)
	return c.JSON(http.StatusOK, homeResponse{
		Posts:       toPostResponses(home.Posts),
		Tags:        home.Tags,
		SelectedTag: home.SelectedTag,
	})
}

// Tags handles GET /v1/tags.
//
// @Summary      List distinct tags
// @Tags         posts
// @Produce      json
// @Success      200  {object}  tagsResponse
// @Router       /v1/tags [get]
func (h *PostHandler) Tags(c echo.Context) error {
	return c.JSON(http.StatusOK, tagsResponse{Tags: h.blog.AllTags()})
}

// Get handles GET /v1/posts/:id.
//
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  postDetailResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	view, err := h.blog.PostDetail(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostDetailResponse(view))
}

// Dashboard handles GET /v1/dashboard.
//
// @Summary      Current user's posts and stats
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/dashboard [get]
func (h *PostHandler) Dashboard(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	dash, err := h.blog.Dashboard(user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboardResponse{
		User:  toUserResponse(dash.User),
		Posts: toPostResponses(dash.Posts),
		Stats: dashboardStatsResponse{
			TotalPosts: dash.Stats.TotalPosts,
			TotalTags:  dash.Stats.TotalTags,
		},
	})
}

// Create handles POST /v1/posts.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string             false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createPostRequest  true   "Post fields"
// @Success      201              {object}  postResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /v1/posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	post, err := h.blog.CreatePost(c.Request().Context(), user, ports.CreatePostInput{
		Title:          req.Title,
		Content:        req.Content,
		Tags:           req.Tags,
		IdempotencyKey: strings.TrimSpace(c.Request().Header.Get(HeaderIdempotencyKey)),
	})
	if err != nil {
		return err
	}

	resp := toPostResponse(*post)
	c.Response().Header().Set(echo.HeaderLocation, resp.Links.Self)
	return c.JSON(http.StatusCreated, resp)
}

// Edit handles GET /v1/posts/:id/edit: the post as loaded into the edit form.
//
// @Summary      Load a post for editing
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  postResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/posts/{id}/edit [get]
func (h *PostHandler) Edit(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	post, err := h.blog.EditPost(user, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(*post))
}

// Update handles PUT /v1/posts/:id.
//
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Post id"
// @Param        body  body      updatePostRequest  true  "Fields to change"
// @Success      200   {object}  postResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	post, err := h.blog.UpdatePost(c.Request().Context(), user, c.Param("id"), toUpdateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponse(*post))
}

// Delete handles DELETE /v1/posts/:id.
//
// @Summary      Delete a post
// @Tags         posts
// @Security     BearerAuth
// @Param        id   path  string  true  "Post id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.blog.DeletePost(c.Request().Context(), user, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
