package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/wastecms/internal/client/client"
	"github.com/dmitrijs2005/wastecms/internal/client/models"
	"github.com/dmitrijs2005/wastecms/internal/common"
	"github.com/dmitrijs2005/wastecms/internal/logging"
)

var errNotCached = errors.New("not in the current list")

// PublicService serves the visitor-facing reads and the testimonial
// submission form. It needs no session.
type PublicService struct {
	api client.APIClient
	log logging.Logger

	mu         sync.Mutex
	submitting bool
}

func NewPublicService(api client.APIClient, log logging.Logger) *PublicService {
	return &PublicService{api: api, log: log.With("view", "public")}
}

// ListApprovedTestimonials returns what the public endpoint returns; the
// endpoint is trusted to filter by status. An empty list is not an error.
func (p *PublicService) ListApprovedTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	items, err := p.api.ListApprovedTestimonials(ctx)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	if items == nil {
		items = []models.Testimonial{}
	}
	return items, nil
}

// ListBlogs returns the posts matching the search query and category.
func (p *PublicService) ListBlogs(ctx context.Context, query, category string) ([]models.Blog, error) {
	items, err := p.api.ListBlogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	return models.FilterBlogs(items, query, category), nil
}

// GetBlogBySlug fetches one post. A missing slug yields common.ErrorNotFound,
// which callers render as a final "not found" state.
func (p *PublicService) GetBlogBySlug(ctx context.Context, slug string) (models.Blog, error) {
	if strings.Trim(slug, " \t/") == "" {
		return models.Blog{}, common.ErrorNotFound
	}
	blog, err := p.api.GetBlogBySlug(ctx, slug)
	if err != nil {
		return models.Blog{}, fmt.Errorf("get blog %q: %w", slug, err)
	}
	return blog, nil
}

// SubmitTestimonial validates the form locally and posts it. Invalid input
// never reaches the network.
func (p *PublicService) SubmitTestimonial(ctx context.Context, form models.TestimonialForm, image *models.Upload) (models.Testimonial, error) {
	if err := form.Validate(); err != nil {
		return models.Testimonial{}, err
	}

	p.mu.Lock()
	if p.submitting {
		p.mu.Unlock()
		return models.Testimonial{}, ErrBusy
	}
	p.submitting = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.submitting = false
		p.mu.Unlock()
	}()

	created, err := p.api.SubmitTestimonial(ctx, form, image)
	if err != nil {
		p.log.Warn(ctx, "testimonial submission failed", "error", err)
		return models.Testimonial{}, fmt.Errorf("submit testimonial: %w", err)
	}

	p.log.Info(ctx, "testimonial submitted", "id", created.ID, "status", created.Status)
	return created, nil
}
