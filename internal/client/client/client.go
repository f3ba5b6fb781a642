package client

import (
	"context"

	"github.com/dmitrijs2005/wastecms/internal/client/models"
)

// TokenSource supplies the current admin bearer token ("" when signed out).
type TokenSource interface {
	Token(ctx context.Context) string
}

// APIClient is the content API as seen by the client workflows.
type APIClient interface {
	Login(ctx context.Context, email, password string) (string, error)

	ListApprovedTestimonials(ctx context.Context) ([]models.Testimonial, error)
	SubmitTestimonial(ctx context.Context, form models.TestimonialForm, image *models.Upload) (models.Testimonial, error)
	ListTestimonials(ctx context.Context) ([]models.Testimonial, error)
	UpdateTestimonialStatus(ctx context.Context, id string, status models.Status) (models.Testimonial, error)
	DeleteTestimonial(ctx context.Context, id string) (string, error)

	ListBlogs(ctx context.Context) ([]models.Blog, error)
	GetBlogBySlug(ctx context.Context, slug string) (models.Blog, error)
	CreateBlog(ctx context.Context, form models.BlogForm, image *models.Upload) (models.Blog, error)
	UpdateBlog(ctx context.Context, id string, form models.BlogForm, image *models.Upload) (models.Blog, error)
	DeleteBlog(ctx context.Context, id string) (string, error)
}
