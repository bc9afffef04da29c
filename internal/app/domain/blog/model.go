// Package blog holds the shop's editorial content entities.
package blog

import "time"

// Post status values.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Post is one blog article.
type Post struct {
	ID          string
	Title       string
	Slug        string
	Excerpt     string
	Content     string
	ImageURL    string
	TagIDs      []string
	Status      string
	PublishedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Tag labels posts for filtering.
type Tag struct {
	ID        string
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
