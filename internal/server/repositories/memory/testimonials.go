package memory

import (
	"context"
	"time"

	"github.com/dmitrijs2005/wastecms/internal/common"
	"github.com/dmitrijs2005/wastecms/internal/server/models"
)

type TestimonialRepository struct {
	s *Store
}

func (r *TestimonialRepository) Create(ctx context.Context, t *models.Testimonial) (*models.Testimonial, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.testimonials[t.ID]; ok {
		return nil, common.ErrorAlreadyExists
	}

	t.CreatedAt = r.s.now()
	r.s.testimonials[t.ID] = &testimonialRow{seq: r.s.next(), t: *t}
	return t, nil
}

func (r *TestimonialRepository) List(ctx context.Context) ([]models.Testimonial, error) {
	return r.filter(func(models.Testimonial) bool { return true }), nil
}

func (r *TestimonialRepository) ListByStatus(ctx context.Context, status models.Status) ([]models.Testimonial, error) {
	return r.filter(func(t models.Testimonial) bool { return t.Status == status }), nil
}

func (r *TestimonialRepository) filter(keep func(models.Testimonial) bool) []models.Testimonial {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows := make([]*testimonialRow, 0, len(r.s.testimonials))
	for _, row := range r.s.testimonials {
		if keep(row.t) {
			rows = append(rows, row)
		}
	}

	order := newestFirst(func(i int) (time.Time, int64) { return rows[i].t.CreatedAt, rows[i].seq }, len(rows))
	out := make([]models.Testimonial, 0, len(rows))
	for _, i := range order {
		out = append(out, rows[i].t)
	}
	return out
}

func (r *TestimonialRepository) GetByID(ctx context.Context, id string) (*models.Testimonial, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.testimonials[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := row.t
	return &out, nil
}

func (r *TestimonialRepository) UpdateStatus(ctx context.Context, id string, status models.Status) (*models.Testimonial, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.testimonials[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	row.t.Status = status
	out := row.t
	return &out, nil
}

func (r *TestimonialRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.testimonials[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.testimonials, id)
	return nil
}
