package memory

import (
	"context"
	"time"

	"github.com/dmitrijs2005/wastecms/internal/common"
	"github.com/dmitrijs2005/wastecms/internal/server/models"
)

type BlogRepository struct {
	s *Store
}

func (r *BlogRepository) Create(ctx context.Context, b *models.Blog) (*models.Blog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.blogs[b.ID]; ok {
		return nil, common.ErrorAlreadyExists
	}
	if r.bySlug(b.Slug) != nil {
		return nil, common.ErrorAlreadyExists
	}

	now := r.s.now()
	b.CreatedAt, b.UpdatedAt = now, now
	r.s.blogs[b.ID] = &blogRow{seq: r.s.next(), b: cloneBlog(*b)}
	return b, nil
}

func (r *BlogRepository) Update(ctx context.Context, b *models.Blog) (*models.Blog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.blogs[b.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}

	stored := &row.b
	stored.Title = b.Title
	stored.Excerpt = b.Excerpt
	stored.Content = b.Content
	stored.Author = b.Author
	stored.Category = b.Category
	stored.Tags = cloneBlog(*b).Tags
	stored.Image = b.Image
	stored.UpdatedAt = r.s.now()

	out := cloneBlog(*stored)
	return &out, nil
}

func (r *BlogRepository) List(ctx context.Context) ([]models.Blog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows := make([]*blogRow, 0, len(r.s.blogs))
	for _, row := range r.s.blogs {
		rows = append(rows, row)
	}

	order := newestFirst(func(i int) (time.Time, int64) { return rows[i].b.CreatedAt, rows[i].seq }, len(rows))
	out := make([]models.Blog, 0, len(rows))
	for _, i := range order {
		out = append(out, cloneBlog(rows[i].b))
	}
	return out, nil
}

func (r *BlogRepository) GetByID(ctx context.Context, id string) (*models.Blog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.blogs[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := cloneBlog(row.b)
	return &out, nil
}

func (r *BlogRepository) GetBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row := r.bySlug(slug)
	if row == nil {
		return nil, common.ErrorNotFound
	}
	out := cloneBlog(row.b)
	return &out, nil
}

func (r *BlogRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.bySlug(slug) != nil, nil
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.blogs[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.blogs, id)
	return nil
}

// bySlug expects the store lock to be held.
func (r *BlogRepository) bySlug(slug string) *blogRow {
	for _, row := range r.s.blogs {
		if row.b.Slug == slug {
			return row
		}
	}
	return nil
}
