package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/wastecms/internal/client/client"
	"github.com/dmitrijs2005/wastecms/internal/client/models"
	"github.com/dmitrijs2005/wastecms/internal/logging"
)

// ModerationService backs the admin testimonial list.
type ModerationService struct {
	api   client.APIClient
	guard SessionGuard
	log   logging.Logger
	view  *listView[models.Testimonial]
}

func NewModerationService(ctx context.Context, api client.APIClient, guard SessionGuard, log logging.Logger) *ModerationService {
	return &ModerationService{
		api:   api,
		guard: guard,
		log:   log.With("view", "moderation"),
		view:  newListView[models.Testimonial](ctx),
	}
}

// Load fetches every testimonial, whatever its status.
func (m *ModerationService) Load(ctx context.Context) error {
	if err := m.guard.RequireSession(ctx); err != nil {
		return err
	}
	return m.load(ctx)
}

func (m *ModerationService) load(ctx context.Context) error {
	if err := m.view.startLoad(); err != nil {
		return err
	}

	opCtx, done := m.view.opContext(ctx)
	items, err := m.api.ListTestimonials(opCtx)
	done()

	if err := m.view.finishLoad(items, err); err != nil {
		return m.fail(ctx, "load testimonials", err)
	}
	m.log.Debug(ctx, "testimonials loaded", "count", len(items))
	return nil
}

// Testimonials returns a copy of the cached list.
func (m *ModerationService) Testimonials() []models.Testimonial { return m.view.snapshot() }

// Loading is true while the initial fetch is in flight.
func (m *ModerationService) Loading() bool { return m.view.isLoading() }

// Pending reports whether a mutation on id is in flight.
func (m *ModerationService) Pending(id string) bool { return m.view.pending(id) }

// SetStatus approves or rejects a testimonial and replaces the cached entry
// with what the server returned.
func (m *ModerationService) SetStatus(ctx context.Context, id string, status models.Status) (models.Testimonial, error) {
	switch status {
	case models.StatusApproved, models.StatusRejected:
	case models.StatusPending:
		return models.Testimonial{}, &models.ValidationError{Field: "status", Reason: "can only approve or reject"}
	default:
		return models.Testimonial{}, &models.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", status)}
	}

	if err := m.view.begin(id); err != nil {
		return models.Testimonial{}, err
	}
	defer m.view.end(id)

	opCtx, done := m.view.opContext(ctx)
	updated, err := m.api.UpdateTestimonialStatus(opCtx, id, status)
	done()

	if err != nil {
		return models.Testimonial{}, m.fail(ctx, "update status", err)
	}
	if err := m.view.apply(models.Updated(id, updated)); err != nil {
		return models.Testimonial{}, err
	}

	m.log.Info(ctx, "testimonial status changed", "id", id, "status", updated.Status)
	return updated, nil
}

// Delete removes a testimonial after confirm agrees.
func (m *ModerationService) Delete(ctx context.Context, id string, confirm Confirmer) error {
	if confirm == nil || !confirm("Are you sure you want to delete this testimonial?") {
		return ErrCancelled
	}

	if err := m.view.begin(id); err != nil {
		return err
	}
	defer m.view.end(id)

	opCtx, done := m.view.opContext(ctx)
	_, err := m.api.DeleteTestimonial(opCtx, id)
	done()

	if err != nil {
		return m.fail(ctx, "delete testimonial", err)
	}
	if err := m.view.apply(models.Deleted[models.Testimonial](id)); err != nil {
		return err
	}

	m.log.Info(ctx, "testimonial deleted", "id", id)
	return nil
}

// Close discards the view; responses still in flight are dropped.
func (m *ModerationService) Close() { m.view.close() }

func (m *ModerationService) fail(ctx context.Context, op string, err error) error {
	if m.view.isClosed() {
		return ErrViewClosed
	}
	m.guard.HandleError(ctx, err)
	m.log.Warn(ctx, op+" failed", "error", err)
	return fmt.Errorf("%s: %w", op, err)
}
