package testimonials

import (
	"context"

	"github.com/dmitrijs2005/wastecms/internal/server/models"
)

// Repository stores testimonials. Lists are ordered newest first and unknown
// ids yield common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, t *models.Testimonial) (*models.Testimonial, error)
	List(ctx context.Context) ([]models.Testimonial, error)
	ListByStatus(ctx context.Context, status models.Status) ([]models.Testimonial, error)
	GetByID(ctx context.Context, id string) (*models.Testimonial, error)
	UpdateStatus(ctx context.Context, id string, status models.Status) (*models.Testimonial, error)
	Delete(ctx context.Context, id string) error
}
