package blogs

import (
	"context"

	"github.com/dmitrijs2005/wastecms/internal/server/models"
)

// Repository stores blog posts. Create fails with common.ErrorAlreadyExists
// when the slug is taken; unknown ids and slugs yield common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, b *models.Blog) (*models.Blog, error)
	Update(ctx context.Context, b *models.Blog) (*models.Blog, error)
	List(ctx context.Context) ([]models.Blog, error)
	GetByID(ctx context.Context, id string) (*models.Blog, error)
	GetBySlug(ctx context.Context, slug string) (*models.Blog, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Delete(ctx context.Context, id string) error
}
