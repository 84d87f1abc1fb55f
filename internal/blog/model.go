package blog

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Excerpt       string    `json:"excerpt"`
	Author        string    `json:"author"`
	PublishedAt   time.Time `json:"publishedAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Tags          []string  `json:"tags"`
	Featured      bool      `json:"featured"`
	ReadingTime   int       `json:"readingTime"`
	FeaturedImage *string   `json:"featuredImage,omitempty"`
	ImageAlt      *string   `json:"imageAlt,omitempty"`
}

// NewPost carries the caller-supplied fields for an insert. The repository
// assigns ID, timestamps, and reading time.
type NewPost struct {
	Title         string
	Content       string
	Excerpt       string
	Author        string
	Tags          []string
	Featured      bool
	FeaturedImage *string
	ImageAlt      *string
}

// Changes is a sparse update: nil fields are left untouched.
type Changes struct {
	Title         *string
	Content       *string
	Excerpt       *string
	Author        *string
	Tags          *[]string
	Featured      *bool
	FeaturedImage *string
	ImageAlt      *string
}

func (c Changes) Empty() bool {
	return c.Title == nil && c.Content == nil && c.Excerpt == nil &&
		c.Author == nil && c.Tags == nil && c.Featured == nil &&
		c.FeaturedImage == nil && c.ImageAlt == nil
}

// Query selects and pages posts. Zero-value string fields and a nil Featured
// mean "no constraint". Page and Limit are expected to be normalized by the
// service before reaching a repository.
type Query struct {
	Search   string
	Tag      string
	Featured *bool
	Page     int
	Limit    int
}

func (q Query) Offset() int {
	return (q.Page - 1) * q.Limit
}

type ListResult struct {
	Items []*Post `json:"items"`
	Total int64   `json:"total"`
	Page  int     `json:"page"`
	Limit int     `json:"limit"`
}
