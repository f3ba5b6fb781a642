package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/wastecms/internal/client/models"
	"github.com/dmitrijs2005/wastecms/internal/common"
	"github.com/dmitrijs2005/wastecms/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raoForm() models.TestimonialForm {
	f := models.NewTestimonialForm()
	f.Name = "A. Rao"
	f.Position = "Manager"
	f.Company = "Acme"
	f.Testimonial = "Great service"
	return f
}

func TestPublic_SubmitTestimonial_RatingOutOfRangeNoNetwork(t *testing.T) {
	api := &fakeAPI{}
	p := NewPublicService(api, logging.Discard())

	for _, r := range []int{-5, 0, 6, 42} {
		f := raoForm()
		f.Rating = r
		_, err := p.SubmitTestimonial(context.Background(), f, nil)
		require.ErrorIs(t, err, common.ErrorValidation, "rating %d", r)
	}
	assert.Equal(t, int32(0), api.calls.Load())
}

func TestPublic_SubmitTestimonial_Pending(t *testing.T) {
	api := &fakeAPI{submit: func(ctx context.Context, f models.TestimonialForm, img *models.Upload) (models.Testimonial, error) {
		assert.Nil(t, img)
		return models.Testimonial{ID: "t9", Name: f.Name, Rating: f.Rating, Status: models.StatusPending}, nil
	}}
	p := NewPublicService(api, logging.Discard())

	got, err := p.SubmitTestimonial(context.Background(), raoForm(), nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.Equal(t, 5, got.Rating)
}

func TestPublic_SubmitTestimonial_DoubleSubmit(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	api := &fakeAPI{submit: func(ctx context.Context, f models.TestimonialForm, img *models.Upload) (models.Testimonial, error) {
		close(entered)
		<-release
		return models.Testimonial{ID: "t9"}, nil
	}}
	p := NewPublicService(api, logging.Discard())

	done := make(chan error, 1)
	go func() {
		_, err := p.SubmitTestimonial(context.Background(), raoForm(), nil)
		done <- err
	}()
	<-entered

	_, err := p.SubmitTestimonial(context.Background(), raoForm(), nil)
	require.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, <-done)
}

func TestPublic_SubmitTestimonial_ServerError(t *testing.T) {
	api := &fakeAPI{submit: func(ctx context.Context, f models.TestimonialForm, img *models.Upload) (models.Testimonial, error) {
		return models.Testimonial{}, serverError()
	}}
	p := NewPublicService(api, logging.Discard())

	_, err := p.SubmitTestimonial(context.Background(), raoForm(), nil)
	require.Error(t, err)
}

func TestPublic_ListApprovedTestimonials_EmptyIsNotError(t *testing.T) {
	api := &fakeAPI{listApproved: func(ctx context.Context) ([]models.Testimonial, error) { return nil, nil }}
	p := NewPublicService(api, logging.Discard())

	got, err := p.ListApprovedTestimonials(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPublic_ListApprovedTestimonials_NoLocalFiltering(t *testing.T) {
	// the endpoint is trusted; whatever it returns is shown
	api := &fakeAPI{listApproved: func(ctx context.Context) ([]models.Testimonial, error) { return testimonials(), nil }}
	p := NewPublicService(api, logging.Discard())

	got, err := p.ListApprovedTestimonials(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestPublic_GetBlogBySlug(t *testing.T) {
	api := &fakeAPI{getBlog: func(ctx context.Context, slug string) (models.Blog, error) {
		if slug == "first" {
			return blogs()[1], nil
		}
		return models.Blog{}, errors.Join(common.ErrorNotFound)
	}}
	p := NewPublicService(api, logging.Discard())

	b, err := p.GetBlogBySlug(context.Background(), "first")
	require.NoError(t, err)
	assert.Equal(t, "b1", b.ID)

	_, err = p.GetBlogBySlug(context.Background(), "missing")
	require.ErrorIs(t, err, common.ErrorNotFound)

	calls := api.calls.Load()
	_, err = p.GetBlogBySlug(context.Background(), " / ")
	require.ErrorIs(t, err, common.ErrorNotFound)
	assert.Equal(t, calls, api.calls.Load())
}

func TestPublic_ListBlogs_Filters(t *testing.T) {
	api := &fakeAPI{listBlogs: func(ctx context.Context) ([]models.Blog, error) {
		return []models.Blog{
			{ID: "1", Title: "Zero waste", Category: "Sustainability"},
			{ID: "2", Title: "Robots sorting plastic", Category: "Technology"},
		}, nil
	}}
	p := NewPublicService(api, logging.Discard())

	got, err := p.ListBlogs(context.Background(), "", "Technology")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
}
