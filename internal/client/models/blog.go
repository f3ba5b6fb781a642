package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/dmitrijs2005/wastecms/internal/common"
)

// CategoryAll disables the category filter.
const CategoryAll = "All"

// Categories are the filter choices of the public blog listing.
var Categories = []string{CategoryAll, "Circular Economy", "Technology", "Sustainability", "Industry Insights"}

// Blog is a blog post as returned by the API. Content is HTML.
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

func (b Blog) GetID() string { return b.ID }

// UnmarshalJSON also accepts the "_id" key used by document-store backends.
func (b *Blog) UnmarshalJSON(data []byte) error {
	type alias Blog
	var v struct {
		alias
		LegacyID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*b = Blog(v.alias)
	if b.ID == "" {
		b.ID = v.LegacyID
	}
	return nil
}

// BlogForm holds the fields of the create/edit blog form. Tags is the raw
// comma-separated text.
type BlogForm struct {
	Title    string
	Excerpt  string
	Content  string
	Author   string
	Category string
	Tags     string
}

// Validate checks that every required field is filled in.
func (f BlogForm) Validate() error {
	for _, c := range []struct{ field, value string }{
		{"title", f.Title},
		{"excerpt", f.Excerpt},
		{"content", f.Content},
		{"author", f.Author},
		{"category", f.Category},
	} {
		if err := required(c.field, c.value); err != nil {
			return err
		}
	}
	return nil
}

// TagList returns the parsed tags of the form.
func (f BlogForm) TagList() []string {
	return common.ParseTags(f.Tags)
}

// EditForm pre-populates a form from an existing post. The image is never
// carried over: an edit submitted without a new image keeps the stored one.
func EditForm(b Blog) BlogForm {
	return BlogForm{
		Title:    b.Title,
		Excerpt:  b.Excerpt,
		Content:  b.Content,
		Author:   b.Author,
		Category: b.Category,
		Tags:     common.FormatTags(b.Tags),
	}
}

// FilterBlogs keeps posts whose title or excerpt contains query (case
// insensitive) and whose category matches. An empty category or CategoryAll
// matches everything.
func FilterBlogs(posts []Blog, query, category string) []Blog {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Blog, 0, len(posts))
	for _, p := range posts {
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Title), q) &&
			!strings.Contains(strings.ToLower(p.Excerpt), q) {
			continue
		}
		if category != "" && category != CategoryAll && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out
}

// AuthorInitial is the first letter of the author's name, upper-cased.
func AuthorInitial(author string) string {
	for _, r := range strings.TrimSpace(author) {
		return strings.ToUpper(string(r))
	}
	return ""
}
