package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/wastecms/internal/client/client"
	"github.com/dmitrijs2005/wastecms/internal/client/models"
	"github.com/dmitrijs2005/wastecms/internal/logging"
)

// formKey guards the single blog form against double submission.
const formKey = "\x00blog-form"

// BlogService backs the admin blog list and the create/edit form.
type BlogService struct {
	api   client.APIClient
	guard SessionGuard
	log   logging.Logger
	view  *listView[models.Blog]
}

func NewBlogService(ctx context.Context, api client.APIClient, guard SessionGuard, log logging.Logger) *BlogService {
	return &BlogService{
		api:   api,
		guard: guard,
		log:   log.With("view", "blogs"),
		view:  newListView[models.Blog](ctx),
	}
}

// Load fetches all posts. The listing endpoint is public but the view is an
// admin one, so a session is still required.
func (b *BlogService) Load(ctx context.Context) error {
	if err := b.guard.RequireSession(ctx); err != nil {
		return err
	}
	return b.load(ctx)
}

func (b *BlogService) load(ctx context.Context) error {
	if err := b.view.startLoad(); err != nil {
		return err
	}

	opCtx, done := b.view.opContext(ctx)
	items, err := b.api.ListBlogs(opCtx)
	done()

	if err := b.view.finishLoad(items, err); err != nil {
		return b.fail(ctx, "load blogs", err)
	}
	b.log.Debug(ctx, "blogs loaded", "count", len(items))
	return nil
}

func (b *BlogService) Blogs() []models.Blog { return b.view.snapshot() }

func (b *BlogService) Loading() bool { return b.view.isLoading() }

// Pending reports whether a mutation on the post id is in flight.
func (b *BlogService) Pending(id string) bool { return b.view.pending(id) }

// Submitting reports whether the form is being submitted.
func (b *BlogService) Submitting() bool { return b.view.pending(formKey) }

// Find returns the cached post with the given id.
func (b *BlogService) Find(id string) (models.Blog, bool) { return b.view.find(id) }

// EditForm returns the form pre-filled from the cached post id.
func (b *BlogService) EditForm(id string) (models.BlogForm, error) {
	blog, ok := b.view.find(id)
	if !ok {
		return models.BlogForm{}, fmt.Errorf("blog %s: %w", id, errNotCached)
	}
	return models.EditForm(blog), nil
}

// Create submits a new post and prepends the server's record to the list.
func (b *BlogService) Create(ctx context.Context, form models.BlogForm, image *models.Upload) (models.Blog, error) {
	if err := form.Validate(); err != nil {
		return models.Blog{}, err
	}

	if err := b.view.begin(formKey); err != nil {
		return models.Blog{}, err
	}
	defer b.view.end(formKey)

	opCtx, done := b.view.opContext(ctx)
	created, err := b.api.CreateBlog(opCtx, form, image)
	done()

	if err != nil {
		return models.Blog{}, b.fail(ctx, "create blog", err)
	}
	if err := b.view.apply(models.Created(created)); err != nil {
		return models.Blog{}, err
	}

	b.log.Info(ctx, "blog created", "id", created.ID, "slug", created.Slug)
	return created, nil
}

// Update submits an edited post. With a nil image no image part is sent and
// the server keeps the stored image.
func (b *BlogService) Update(ctx context.Context, id string, form models.BlogForm, image *models.Upload) (models.Blog, error) {
	if err := form.Validate(); err != nil {
		return models.Blog{}, err
	}

	if err := b.view.begin(formKey, id); err != nil {
		return models.Blog{}, err
	}
	defer b.view.end(formKey, id)

	opCtx, done := b.view.opContext(ctx)
	updated, err := b.api.UpdateBlog(opCtx, id, form, image)
	done()

	if err != nil {
		return models.Blog{}, b.fail(ctx, "update blog", err)
	}
	if err := b.view.apply(models.Updated(id, updated)); err != nil {
		return models.Blog{}, err
	}

	b.log.Info(ctx, "blog updated", "id", id)
	return updated, nil
}

// Delete removes a post after confirm agrees.
func (b *BlogService) Delete(ctx context.Context, id string, confirm Confirmer) error {
	if confirm == nil || !confirm("Are you sure you want to delete this blog?") {
		return ErrCancelled
	}

	if err := b.view.begin(id); err != nil {
		return err
	}
	defer b.view.end(id)

	opCtx, done := b.view.opContext(ctx)
	_, err := b.api.DeleteBlog(opCtx, id)
	done()

	if err != nil {
		return b.fail(ctx, "delete blog", err)
	}
	if err := b.view.apply(models.Deleted[models.Blog](id)); err != nil {
		return err
	}

	b.log.Info(ctx, "blog deleted", "id", id)
	return nil
}

func (b *BlogService) Close() { b.view.close() }

func (b *BlogService) fail(ctx context.Context, op string, err error) error {
	if b.view.isClosed() {
		return ErrViewClosed
	}
	b.guard.HandleError(ctx, err)
	b.log.Warn(ctx, op+" failed", "error", err)
	return fmt.Errorf("%s: %w", op, err)
}
