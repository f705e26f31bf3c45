package handler

// --- Request / Response types ---

type createPostRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// updatePostRequest is a partial update; omitted fields are left unchanged.
type updatePostRequest struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Tags    *[]string `json:"tags"`
}

type postLinks struct {
	Self string `json:"self"`
	Edit string `json:"edit"`
}

type postResponse struct {
	ID          string       `json:"id"`
	Slug        string       `json:"slug"`
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	Excerpt     string       `json:"excerpt"`
	Author      userResponse `json:"author"`
	Tags        []string     `json:"tags"`
	ReadingTime int          `json:"reading_time"`
	CreatedAt   string       `json:"created_at" example:"2024-01-15T10:00:00.000Z"`
	UpdatedAt   string       `json:"updated_at" example:"2024-01-15T10:00:00.000Z"`
	Links       postLinks    `json:"_links"`
}

type postDetailResponse struct {
	postResponse
	CanEdit bool `json:"can_edit"`
}

type homeResponse struct {
	Posts       []postResponse `json:"posts"`
	Tags        []string       `json:"tags"`
	SelectedTag *string        `json:"selected_tag"`
}

type tagsResponse struct {
	Tags []string `json:"tags"`
}

type dashboardStatsResponse struct {
	TotalPosts int `json:"total_posts"`
	TotalTags  int `json:"total_tags"`
}

type dashboardResponse struct {
	User  userResponse           `json:"user"`
	Posts []postResponse         `json:"posts"`
	Stats dashboardStatsResponse `json:"stats"`
}
