// Package carousel drives the public testimonial slider: one current index
// over the approved list, advanced on a timer until the visitor takes over.
package carousel

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/wastecms/internal/client/models"
)

// EmptyText is shown when there is nothing to cycle through.
const EmptyText = "No testimonials yet"

// DefaultInterval is the auto-advance period.
const DefaultInterval = 5 * time.Second

// Carousel is safe for concurrent use. The zero value is not usable; create
// one with New.
type Carousel struct {
	mu       sync.Mutex
	items    []models.Testimonial
	index    int
	auto     bool
	onChange func(models.Testimonial, int)

	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a carousel over items. Auto-advance is on until the first
// manual navigation. onChange, when non-nil, is called after every move with
// the new current item and index; it runs without the lock held.
func New(items []models.Testimonial, onChange func(models.Testimonial, int)) *Carousel {
	cp := make([]models.Testimonial, len(items))
	copy(cp, items)
	return &Carousel{items: cp, auto: true, onChange: onChange}
}

// Empty reports the "no testimonials yet" state. It is terminal for the view.
func (c *Carousel) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0
}

func (c *Carousel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Current returns the testimonial under the index and false for an empty
// carousel.
func (c *Carousel) Current() (models.Testimonial, int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.items) == 0 {
		return models.Testimonial{}, 0, false
	}
	return c.items[c.index], c.index, true
}

// AutoAdvance reports whether the timer still moves the carousel.
func (c *Carousel) AutoAdvance() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.auto
}

// Next moves forward by one and turns auto-advance off.
func (c *Carousel) Next() { c.move(1, true) }

// Previous moves back by one and turns auto-advance off.
func (c *Carousel) Previous() { c.move(-1, true) }

// GoTo jumps to index i (taken modulo the length, so negative values count
// from the end) and turns auto-advance off.
func (c *Carousel) GoTo(i int) {
	c.mu.Lock()
	n := len(c.items)
	c.auto = false
	if n == 0 {
		c.mu.Unlock()
		return
	}
	c.index = wrap(i, n)
	item, idx := c.items[c.index], c.index
	c.mu.Unlock()

	c.notify(item, idx)
}

// tick is one auto-advance step. It does nothing once the visitor navigated.
func (c *Carousel) tick() { c.move(1, false) }

func (c *Carousel) move(delta int, manual bool) {
	c.mu.Lock()
	if manual {
		c.auto = false
	} else if !c.auto {
		c.mu.Unlock()
		return
	}
	n := len(c.items)
	if n == 0 {
		c.mu.Unlock()
		return
	}
	c.index = wrap(c.index+delta, n)
	item, idx := c.items[c.index], c.index
	c.mu.Unlock()

	c.notify(item, idx)
}

func (c *Carousel) notify(item models.Testimonial, idx int) {
	if c.onChange != nil {
		c.onChange(item, idx)
	}
}

// Start launches the auto-advance goroutine. It stops when ctx is done, when
// Close is called or after the first manual navigation. Calling Start on a
// running or empty carousel is a no-op.
func (c *Carousel) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}

	c.mu.Lock()
	if c.cancel != nil || len(c.items) == 0 {
		c.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})
	done := c.done
	c.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !c.AutoAdvance() {
					return
				}
				c.tick()
			}
		}
	}()
}

// Close stops auto-advance and waits for the goroutine to exit.
func (c *Carousel) Close() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
