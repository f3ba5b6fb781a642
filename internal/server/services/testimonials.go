package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/wastecms/internal/dbx"
	"github.com/dmitrijs2005/wastecms/internal/logging"
	"github.com/dmitrijs2005/wastecms/internal/server/models"
	"github.com/dmitrijs2005/wastecms/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/wastecms/internal/server/storage"
	"github.com/google/uuid"
)

// TestimonialService handles public submissions and admin moderation.
type TestimonialService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
	images      imageKeeper
	log         logging.Logger
}

func NewTestimonialService(db dbx.DBTX, m repomanager.RepositoryManager, store storage.ImageStore, log logging.Logger) *TestimonialService {
	return &TestimonialService{
		db:          db,
		repomanager: m,
		images:      imageKeeper{store: store, log: log},
		log:         log,
	}
}

// ListApproved returns the testimonials shown on the public site.
func (s *TestimonialService) ListApproved(ctx context.Context) ([]models.Testimonial, error) {
	return s.repomanager.Testimonials(s.db).ListByStatus(ctx, models.StatusApproved)
}

// ListAll returns every testimonial regardless of status.
func (s *TestimonialService) ListAll(ctx context.Context) ([]models.Testimonial, error) {
	return s.repomanager.Testimonials(s.db).List(ctx)
}

// Submit stores a public submission as pending. The rating defaults to 5.
func (s *TestimonialService) Submit(ctx context.Context, in models.TestimonialInput, image *models.Upload) (*models.Testimonial, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	path, err := s.images.save(ctx, image)
	if err != nil {
		return nil, err
	}

	t := &models.Testimonial{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Position:    in.Position,
		Company:     in.Company,
		Industry:    in.Industry,
		Testimonial: in.Testimonial,
		Rating:      in.Rating,
		Image:       path,
		Status:      models.StatusPending,
	}

	created, err := s.repomanager.Testimonials(s.db).Create(ctx, t)
	if err != nil {
		s.images.discard(ctx, path)
		return nil, fmt.Errorf("error creating testimonial: %w", err)
	}

	s.log.Info(ctx, "testimonial submitted", "id", created.ID)
	return created, nil
}

// UpdateStatus moves a testimonial to any valid status.
func (s *TestimonialService) UpdateStatus(ctx context.Context, id, status string) (*models.Testimonial, error) {
	st, err := models.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	t, err := s.repomanager.Testimonials(s.db).UpdateStatus(ctx, id, st)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "testimonial status changed", "id", id, "status", st)
	return t, nil
}

// Delete removes the testimonial and then its image.
func (s *TestimonialService) Delete(ctx context.Context, id string) error {
	var image string
	err := inTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Testimonials(tx)
		t, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		image = t.Image
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.images.discard(ctx, image)
	s.log.Info(ctx, "testimonial deleted", "id", id)
	return nil
}
