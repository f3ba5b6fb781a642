package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/wastecms/internal/common"
	"github.com/dmitrijs2005/wastecms/internal/dbx"
	"github.com/dmitrijs2005/wastecms/internal/logging"
	"github.com/dmitrijs2005/wastecms/internal/server/models"
	"github.com/dmitrijs2005/wastecms/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/wastecms/internal/server/storage"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

// slugAttempts bounds the retries when a concurrent create takes the slug
// between the lookup and the insert.
const slugAttempts = 5

// BlogService manages blog posts. Post bodies are HTML and are sanitised
// before they are stored.
type BlogService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
	images      imageKeeper
	policy      *bluemonday.Policy
	log         logging.Logger
}

func NewBlogService(db dbx.DBTX, m repomanager.RepositoryManager, store storage.ImageStore, log logging.Logger) *BlogService {
	return &BlogService{
		db:          db,
		repomanager: m,
		images:      imageKeeper{store: store, log: log},
		policy:      bluemonday.UGCPolicy(),
		log:         log,
	}
}

// List returns every post, newest first.
func (s *BlogService) List(ctx context.Context) ([]models.Blog, error) {
	return s.repomanager.Blogs(s.db).List(ctx)
}

func (s *BlogService) GetBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, common.ErrorNotFound
	}
	return s.repomanager.Blogs(s.db).GetBySlug(ctx, slug)
}

// prepare normalises, sanitises and validates in.
func (s *BlogService) prepare(in *models.BlogInput) error {
	in.Normalize()
	in.Content = strings.TrimSpace(s.policy.Sanitize(in.Content))
	return in.Validate()
}

// Create stores a new post under a slug derived from its title.
func (s *BlogService) Create(ctx context.Context, in models.BlogInput, image *models.Upload) (*models.Blog, error) {
	if err := s.prepare(&in); err != nil {
		return nil, err
	}

	path, err := s.images.save(ctx, image)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Blogs(s.db)
	b := &models.Blog{
		ID:       uuid.NewString(),
		Title:    in.Title,
		Excerpt:  in.Excerpt,
		Content:  in.Content,
		Author:   in.Author,
		Category: in.Category,
		Tags:     in.TagList(),
		Image:    path,
	}

	for attempt := 1; ; attempt++ {
		b.Slug, err = uniqueSlug(ctx, b.Title, repo.SlugExists)
		if err != nil {
			break
		}

		var created *models.Blog
		created, err = repo.Create(ctx, b)
		if err == nil {
			s.log.Info(ctx, "blog created", "id", created.ID, "slug", created.Slug)
			return created, nil
		}
		if !errors.Is(err, common.ErrorAlreadyExists) || attempt == slugAttempts {
			break
		}
	}

	s.images.discard(ctx, path)
	return nil, fmt.Errorf("error creating blog: %w", err)
}

// Update rewrites the post's fields. The slug never changes, and without a
// new image the stored one is kept. A replaced image is removed afterwards.
func (s *BlogService) Update(ctx context.Context, id string, in models.BlogInput, image *models.Upload) (*models.Blog, error) {
	if err := s.prepare(&in); err != nil {
		return nil, err
	}

	if _, err := s.repomanager.Blogs(s.db).GetByID(ctx, id); err != nil {
		return nil, err
	}

	path, err := s.images.save(ctx, image)
	if err != nil {
		return nil, err
	}

	var previous string
	var updated *models.Blog
	err = inTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Blogs(tx)
		current, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		previous = current.Image

		next := &models.Blog{
			ID:       current.ID,
			Slug:     current.Slug,
			Title:    in.Title,
			Excerpt:  in.Excerpt,
			Content:  in.Content,
			Author:   in.Author,
			Category: in.Category,
			Tags:     in.TagList(),
			Image:    current.Image,
		}
		if path != "" {
			next.Image = path
		}

		updated, err = repo.Update(ctx, next)
		return err
	})
	if err != nil {
		s.images.discard(ctx, path)
		return nil, err
	}

	if path != "" && previous != path {
		s.images.discard(ctx, previous)
	}

	s.log.Info(ctx, "blog updated", "id", id)
	return updated, nil
}

// Delete removes the post and then its image.
func (s *BlogService) Delete(ctx context.Context, id string) error {
	var image string
	err := inTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Blogs(tx)
		b, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		image = b.Image
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.images.discard(ctx, image)
	s.log.Info(ctx, "blog deleted", "id", id)
	return nil
}
