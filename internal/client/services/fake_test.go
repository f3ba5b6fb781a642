package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/wastecms/internal/client/client"
	"github.com/dmitrijs2005/wastecms/internal/client/models"
	"github.com/dmitrijs2005/wastecms/internal/common"
)

// fakeAPI реализует client.APIClient; каждое поле-функция подменяет один вызов.
type fakeAPI struct {
	calls atomic.Int32

	listApproved func(ctx context.Context) ([]models.Testimonial, error)
	submit       func(ctx context.Context, f models.TestimonialForm, img *models.Upload) (models.Testimonial, error)
	listAll      func(ctx context.Context) ([]models.Testimonial, error)
	updateStatus func(ctx context.Context, id string, s models.Status) (models.Testimonial, error)
	deleteTestim func(ctx context.Context, id string) (string, error)
	listBlogs    func(ctx context.Context) ([]models.Blog, error)
	getBlog      func(ctx context.Context, slug string) (models.Blog, error)
	createBlog   func(ctx context.Context, f models.BlogForm, img *models.Upload) (models.Blog, error)
	updateBlog   func(ctx context.Context, id string, f models.BlogForm, img *models.Upload) (models.Blog, error)
	deleteBlog   func(ctx context.Context, id string) (string, error)
}

var _ client.APIClient = (*fakeAPI)(nil)

func (f *fakeAPI) Login(ctx context.Context, email, password string) (string, error) {
	f.calls.Add(1)
	return "token", nil
}

func (f *fakeAPI) ListApprovedTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	f.calls.Add(1)
	return f.listApproved(ctx)
}

func (f *fakeAPI) SubmitTestimonial(ctx context.Context, form models.TestimonialForm, image *models.Upload) (models.Testimonial, error) {
	f.calls.Add(1)
	return f.submit(ctx, form, image)
}

func (f *fakeAPI) ListTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	f.calls.Add(1)
	return f.listAll(ctx)
}

func (f *fakeAPI) UpdateTestimonialStatus(ctx context.Context, id string, status models.Status) (models.Testimonial, error) {
	f.calls.Add(1)
	return f.updateStatus(ctx, id, status)
}

func (f *fakeAPI) DeleteTestimonial(ctx context.Context, id string) (string, error) {
	f.calls.Add(1)
	return f.deleteTestim(ctx, id)
}

func (f *fakeAPI) ListBlogs(ctx context.Context) ([]models.Blog, error) {
	f.calls.Add(1)
	return f.listBlogs(ctx)
}

func (f *fakeAPI) GetBlogBySlug(ctx context.Context, slug string) (models.Blog, error) {
	f.calls.Add(1)
	return f.getBlog(ctx, slug)
}

func (f *fakeAPI) CreateBlog(ctx context.Context, form models.BlogForm, image *models.Upload) (models.Blog, error) {
	f.calls.Add(1)
	return f.createBlog(ctx, form, image)
}

func (f *fakeAPI) UpdateBlog(ctx context.Context, id string, form models.BlogForm, image *models.Upload) (models.Blog, error) {
	f.calls.Add(1)
	return f.updateBlog(ctx, id, form, image)
}

func (f *fakeAPI) DeleteBlog(ctx context.Context, id string) (string, error) {
	f.calls.Add(1)
	return f.deleteBlog(ctx, id)
}

// fakeGuard stands in for the session.
type fakeGuard struct {
	mu       sync.Mutex
	signedIn bool
	toLogin  int
	cleared  int
}

func (g *fakeGuard) RequireSession(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.signedIn {
		g.toLogin++
		return errNoSessionForTest
	}
	return nil
}

func (g *fakeGuard) HandleError(ctx context.Context, err error) bool {
	if !isUnauthorized(err) {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.signedIn = false
	g.cleared++
	g.toLogin++
	return true
}

func (g *fakeGuard) navigations() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.toLogin
}

var errNoSessionForTest = errors.New("no session")

func isUnauthorized(err error) bool {
	return errors.Is(err, common.ErrorUnauthorized)
}

func yes(string) bool { return true }
func no(string) bool  { return false }

func unauthorized() error { return &client.StatusError{StatusCode: 401, Message: "Token is not valid"} }
func serverError() error  { return &client.StatusError{StatusCode: 500, Message: "Server error"} }

func testimonials() []models.Testimonial {
	return []models.Testimonial{
		{ID: "t1", Name: "A", Rating: 5, Status: models.StatusPending},
		{ID: "t2", Name: "B", Rating: 4, Status: models.StatusApproved},
		{ID: "t3", Name: "C", Rating: 3, Status: models.StatusRejected},
	}
}

func blogs() []models.Blog {
	return []models.Blog{
		{
			ID: "b2", Slug: "second", Title: "Second", Excerpt: "E2", Content: "<p>2</p>",
			Author: "Ann", Category: "Technology", Tags: []string{"x"}, Image: "uploads/b2.jpg",
		},
		{
			ID: "b1", Slug: "first", Title: "First", Excerpt: "E1", Content: "<p>1</p>",
			Author: "Bob", Category: "Sustainability", Tags: []string{"a", "b"},
		},
	}
}
