package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/wastecms/internal/client/client"
	"github.com/dmitrijs2005/wastecms/internal/client/models"
)

const (
	LoadingText      = "Loading..."
	BlogNotFoundText = "Blog not found"
	NoBlogsText      = "No blogs found"
)

// Renderer writes records to w. Image paths are resolved against APIBaseURL
// and share links point at SiteURL.
type Renderer struct {
	W          io.Writer
	APIBaseURL string
	SiteURL    string
}

func New(w io.Writer, apiBaseURL, siteURL string) *Renderer {
	return &Renderer{W: w, APIBaseURL: apiBaseURL, SiteURL: siteURL}
}

func (r *Renderer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.W, format, args...)
}

// Slide renders the current carousel testimonial with its position, e.g.
// "[2/5]".
func (r *Renderer) Slide(t models.Testimonial, index, total int) {
	r.printf("[%d/%d] %s\n", index+1, total, Stars(t.Rating))
	r.printf("  %q\n", strings.TrimSpace(t.Testimonial))
	r.printf("  %s\n", byline(t))
	if img := client.ResolveImageURL(r.APIBaseURL, t.Image); img != "" {
		r.printf("  photo: %s\n", img)
	}
}

// ModerationRow renders one line of the admin testimonial table. Actions
// lists the available moderation actions; pending marks a record with a
// request in flight.
func (r *Renderer) ModerationRow(t models.Testimonial, pending bool) {
	actions := make([]string, 0, 3)
	for _, a := range models.Actions(t) {
		actions = append(actions, string(a))
	}
	state := string(t.Status)
	if pending {
		state += "…"
	}
	r.printf("%s  %-9s %s  %s  [%s]\n", t.ID, state, Stars(t.Rating), byline(t), strings.Join(actions, "|"))
}

// Testimonial renders the full record for the admin detail view.
func (r *Renderer) Testimonial(t models.Testimonial) {
	r.printf("%s  (%s)\n", t.Name, t.Status)
	r.printf("%s\n", byline(t))
	if t.Industry != "" {
		r.printf("Industry: %s\n", t.Industry)
	}
	r.printf("Rating:   %s\n", Stars(t.Rating))
	if d := Date(t.CreatedAt); d != "" {
		r.printf("Received: %s\n", d)
	}
	if img := client.ResolveImageURL(r.APIBaseURL, t.Image); img != "" {
		r.printf("Image:    %s\n", img)
	}
	r.printf("\n%s\n", strings.TrimSpace(t.Testimonial))
}

// BlogCard renders a post in list form.
func (r *Renderer) BlogCard(b models.Blog) {
	r.printf("%s  [%s]\n", b.Title, b.Category)
	r.printf("  %s · %s · /blog/%s\n", b.Author, Date(b.CreatedAt), b.Slug)
	if ex := PlainText(b.Excerpt); ex != "" {
		r.printf("  %s\n", ex)
	}
}

// BlogList renders posts or the empty state.
func (r *Renderer) BlogList(posts []models.Blog) {
	if len(posts) == 0 {
		r.printf("%s\n", NoBlogsText)
		return
	}
	for _, b := range posts {
		r.BlogCard(b)
	}
}

// AdminBlogRow renders one line of the admin blog table.
func (r *Renderer) AdminBlogRow(b models.Blog, pending bool) {
	mark := ""
	if pending {
		mark = " …"
	}
	r.printf("%s  %s  (%s)%s\n", b.ID, b.Title, b.Slug, mark)
}

// BlogDetail renders a whole post with its share links.
func (r *Renderer) BlogDetail(b models.Blog) {
	r.printf("%s\n", b.Title)
	r.printf("%s\n", strings.Repeat("=", max(len([]rune(b.Title)), 3)))
	r.printf("(%s) %s · %s · %s\n", models.AuthorInitial(b.Author), b.Author, Date(b.CreatedAt), b.Category)
	if img := client.ResolveImageURL(r.APIBaseURL, b.Image); img != "" {
		r.printf("Image: %s\n", img)
	}
	r.printf("\n%s\n\n", PlainText(b.Content))
	if len(b.Tags) > 0 {
		r.printf("Tags: %s\n", strings.Join(b.Tags, ", "))
	}
	for _, l := range ShareLinks(r.SiteURL, b) {
		r.printf("Share on %s: %s\n", l.Network, l.URL)
	}
}

func byline(t models.Testimonial) string {
	role := make([]string, 0, 2)
	for _, v := range []string{t.Position, t.Company} {
		if v = strings.TrimSpace(v); v != "" {
			role = append(role, v)
		}
	}
	if len(role) == 0 {
		return t.Name
	}
	return t.Name + " - " + strings.Join(role, ", ")
}
