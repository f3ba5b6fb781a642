// Package services holds the client workflows behind the terminal views:
// testimonial moderation, blog management, the public content reads and the
// admin dashboard that loads both admin lists at once.
//
// Each admin view owns its cached list. Lists are reconciled with the
// server's responses through models.Reduce and never refetched after a
// mutation. A view is closed when the UI leaves it; results that arrive after
// that are dropped with ErrViewClosed.
package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/wastecms/internal/client/models"
)

var (
	// ErrBusy is returned when a mutation is already in flight for the same
	// record or form. No request is issued.
	ErrBusy = errors.New("operation already in progress")
	// ErrCancelled is returned when the user declines a confirmation.
	ErrCancelled = errors.New("cancelled by user")
	// ErrViewClosed is returned when the view was closed before the response
	// arrived; the response is discarded.
	ErrViewClosed = errors.New("view closed")
)

// Confirmer asks the user to confirm a destructive action. A nil Confirmer
// counts as a refusal.
type Confirmer func(prompt string) bool

// SessionGuard is the part of the session the admin views depend on.
type SessionGuard interface {
	RequireSession(ctx context.Context) error
	HandleError(ctx context.Context, err error) bool
}

// listView is the state shared by the admin list views: the cached list, the
// loading flag, in-flight mutation keys and the view lifetime.
type listView[T models.Identifiable] struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	items    []T
	loading  bool
	inflight map[string]struct{}
	closed   bool
}

func newListView[T models.Identifiable](parent context.Context) *listView[T] {
	ctx, cancel := context.WithCancel(parent)
	return &listView[T]{
		ctx:      ctx,
		cancel:   cancel,
		items:    []T{},
		inflight: make(map[string]struct{}),
	}
}

// opContext returns a context cancelled by either ctx or the view closing.
func (v *listView[T]) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	opCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(v.ctx, cancel)
	return opCtx, func() {
		stop()
		cancel()
	}
}

// begin marks all keys in flight, or none of them when one already is.
func (v *listView[T]) begin(keys ...string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return ErrViewClosed
	}
	for _, k := range keys {
		if _, busy := v.inflight[k]; busy {
			return ErrBusy
		}
	}
	for _, k := range keys {
		v.inflight[k] = struct{}{}
	}
	return nil
}

func (v *listView[T]) end(keys ...string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, k := range keys {
		delete(v.inflight, k)
	}
}

func (v *listView[T]) pending(key string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.inflight[key]
	return ok
}

func (v *listView[T]) startLoad() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrViewClosed
	}
	v.loading = true
	return nil
}

// finishLoad stores items unless the fetch failed or the view is gone. A
// failed fetch keeps the previous list.
func (v *listView[T]) finishLoad(items []T, err error) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.loading = false
	if v.closed {
		return ErrViewClosed
	}
	if err != nil {
		return err
	}
	if items == nil {
		items = []T{}
	}
	v.items = items
	return nil
}

func (v *listView[T]) isLoading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

func (v *listView[T]) apply(a models.ListAction[T]) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrViewClosed
	}
	v.items = models.Reduce(v.items, a)
	return nil
}

func (v *listView[T]) isClosed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

func (v *listView[T]) snapshot() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]T, len(v.items))
	copy(out, v.items)
	return out
}

func (v *listView[T]) find(id string) (T, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, item := range v.items {
		if item.GetID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (v *listView[T]) close() {
	v.mu.Lock()
	v.closed = true
	v.mu.Unlock()
	v.cancel()
}
