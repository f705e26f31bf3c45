package handler

import (
	"github.com/gosimple/slug"

	"github.com/inkwell/blog-system/internal/core/domain"
	"github.com/inkwell/blog-system/internal/core/ports"
)

func toPostResponse(p domain.Post) postResponse {
	tags := []string(p.Tags)
	if tags == nil {
		tags = []string{}
	}
	return postResponse{
		ID:          p.ID,
		Slug:        slug.Make(p.Title),
		Title:       p.Title,
		Content:     p.Content,
		Excerpt:     p.Excerpt,
		Author:      toUserResponse(p.Author),
		Tags:        tags,
		ReadingTime: p.ReadingTime(),
		CreatedAt:   domain.FormatTimestamp(p.CreatedAt),
		UpdatedAt:   domain.FormatTimestamp(p.UpdatedAt),
		Links: postLinks{
			Self: "/v1/posts/" + p.ID,
			Edit: "/v1/posts/" + p.ID + "/edit",
		},
	}
}

func toPostResponses(posts []domain.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	return out
}

func toPostDetailResponse(v *ports.PostView) postDetailResponse {
	resp := postDetailResponse{postResponse: toPostResponse(v.Post), CanEdit: v.CanEdit}
	resp.ReadingTime = v.ReadingTime
	return resp
}

func toUpdateInput(req updatePostRequest) ports.UpdatePostInput {
	return ports.UpdatePostInput{Title: req.Title, Content: req.Content, Tags: req.Tags}
}
