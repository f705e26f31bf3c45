// Package seed holds the example posts written on first start.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/inkwell/blog-system/internal/core/domain"
)

//go:embed posts.json
var postsJSON []byte

// Posts decodes a fresh copy of the embedded example posts.
func Posts() ([]domain.Post, error) {
	var posts []domain.Post
	if err := json.Unmarshal(postsJSON, &posts); err != nil {
		return nil, fmt.Errorf("decode seed posts: %w", err)
	}
	return posts, nil
}
