package domain

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"
)

const (
	MaxTags          = 10
	MinTitleLength   = 5
	MinContentLength = 50

	excerptSentences = 2
	excerptMaxLength = 150
	wordsPerMinute   = 200

	// TimestampLayout is ISO-8601 in UTC with exactly three fractional
	// digits, e.g. 2024-01-15T10:00:00.000Z.
	TimestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

var ErrPostNotFound = errors.New("post not found")
var ErrForbidden = errors.New("you can only edit your own posts")

// Post is a blog entry. Author is a snapshot of the user at creation time,
// not a live reference.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Excerpt   string    `json:"excerpt"`
	Author    User      `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Tags      Tags      `json:"tags"`
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// MarshalJSON writes createdAt and updatedAt in TimestampLayout so stored
// posts always carry millisecond precision. Decoding uses the default
// RFC 3339 parser, which accepts that layout.
func (p Post) MarshalJSON() ([]byte, error) {
	type plain Post
	return json.Marshal(struct {
		plain
		CreatedAt string `json:"createdAt"`
		UpdatedAt string `json:"updatedAt"`
	}{
		plain:     plain(p),
		CreatedAt: FormatTimestamp(p.CreatedAt),
		UpdatedAt: FormatTimestamp(p.UpdatedAt),
	})
}

// IsAuthoredBy reports whether userID owns the post.
func (p *Post) IsAuthoredBy(userID string) bool {
	return userID != "" && p.Author.ID == userID
}

// ReadingTime estimates minutes to read the content at 200 words per minute.
func (p *Post) ReadingTime() int {
	words := len(strings.Split(p.Content, " "))
	return int(math.Ceil(float64(words) / wordsPerMinute))
}

// Clone returns a deep copy so callers never share the tag backing array.
func (p Post) Clone() Post {
	p.Tags = append(Tags(nil), p.Tags...)
	if p.Tags == nil {
		p.Tags = Tags{}
	}
	return p
}

// GenerateExcerpt derives a short summary from markdown content: emphasis,
// heading and code markers are removed, the first two sentences are kept and
// the result is capped at 150 characters.
func GenerateExcerpt(content string) string {
	plain := strings.TrimSpace(strings.NewReplacer("#", "", "*", "", "`", "").Replace(content))

	var sentences []string
	for _, s := range strings.Split(plain, ".") {
		if strings.TrimSpace(s) != "" {
			sentences = append(sentences, s)
		}
	}

	n := min(len(sentences), excerptSentences)
	excerpt := strings.Join(sentences[:n], ".")
	if len(sentences) > excerptSentences {
		excerpt += "."
	}

	if r := []rune(excerpt); len(r) > excerptMaxLength {
		return string(r[:excerptMaxLength]) + "..."
	}
	return excerpt
}
