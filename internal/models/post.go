package models

import "time"

// Post represents a blog post with its embedded likes and comments.
type Post struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Category   string    `json:"category"`
	Likes      []string  `json:"likes"`    // user IDs, most recent first
	Comments   []Comment `json:"comments"` // most recent first
	Version    int64     `json:"-"`        // Internal use, optimistic concurrency
	CreatedAt  time.Time `json:"createdAt"`
}

// Comment is a single immutable comment on a post.
type Comment struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}

// PostPatch carries the editable post fields; nil means leave unchanged.
type PostPatch struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Category *string `json:"category"`
}
