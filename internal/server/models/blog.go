package models

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/wastecms/internal/common"
)

type Blog struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Category  string    `json:"category"`
	Tags      []string  `json:"tags"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BlogInput is the create/update form of a blog post. Tags is the raw
// comma-separated text.
type BlogInput struct {
	Title    string
	Excerpt  string
	Content  string
	Author   string
	Category string
	Tags     string
}

func (in *BlogInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Excerpt = strings.TrimSpace(in.Excerpt)
	in.Content = strings.TrimSpace(in.Content)
	in.Author = strings.TrimSpace(in.Author)
	in.Category = strings.TrimSpace(in.Category)
}

func (in BlogInput) Validate() error {
	return required(
		"title", in.Title,
		"excerpt", in.Excerpt,
		"content", in.Content,
		"author", in.Author,
		"category", in.Category,
	)
}

// TagList parses the tags text.
func (in BlogInput) TagList() []string {
	return common.ParseTags(in.Tags)
}
