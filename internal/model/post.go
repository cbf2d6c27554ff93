package model

import "time"

// Post is the feed-side snapshot of a post. The durable store owns the
// authoritative row; the cache keeps a denormalized copy for fast reads.
type Post struct {
	ID         string    `json:"postId"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
