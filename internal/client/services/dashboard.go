package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/wastecms/internal/client/client"
	"github.com/dmitrijs2005/wastecms/internal/logging"
)

// Dashboard is the admin entry view: the moderation list and the blog list
// side by side.
type Dashboard struct {
	Testimonials *ModerationService
	Blogs        *BlogService

	guard SessionGuard
}

// DashboardErrors carries the outcome of each list fetch separately.
type DashboardErrors struct {
	Testimonials error
	Blogs        error
}

func (e DashboardErrors) Any() bool {
	return e.Testimonials != nil || e.Blogs != nil
}

func NewDashboard(ctx context.Context, api client.APIClient, guard SessionGuard, log logging.Logger) *Dashboard {
	return &Dashboard{
		Testimonials: NewModerationService(ctx, api, guard, log),
		Blogs:        NewBlogService(ctx, api, guard, log),
		guard:        guard,
	}
}

// Load checks the session once and then fetches both lists concurrently. A
// failure of one fetch neither blocks nor clears the other list.
func (d *Dashboard) Load(ctx context.Context) (DashboardErrors, error) {
	if err := d.guard.RequireSession(ctx); err != nil {
		return DashboardErrors{}, err
	}

	var (
		wg   sync.WaitGroup
		errs DashboardErrors
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		errs.Testimonials = d.Testimonials.load(ctx)
	}()
	go func() {
		defer wg.Done()
		errs.Blogs = d.Blogs.load(ctx)
	}()
	wg.Wait()

	return errs, nil
}

// Loading is true while either list is still being fetched.
func (d *Dashboard) Loading() bool {
	return d.Testimonials.Loading() || d.Blogs.Loading()
}

func (d *Dashboard) Close() {
	d.Testimonials.Close()
	d.Blogs.Close()
}
