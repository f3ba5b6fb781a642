// Package memory keeps every repository in process memory. It backs the
// server when no database DSN is configured and the service tests.
package memory

import (
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/wastecms/internal/server/models"
)

// Store is the shared state of the in-memory repositories. It is safe for
// concurrent use.
type Store struct {
	mu           sync.RWMutex
	seq          int64
	now          func() time.Time
	admins       map[string]*models.Admin
	testimonials map[string]*testimonialRow
	blogs        map[string]*blogRow
}

type testimonialRow struct {
	seq int64
	t   models.Testimonial
}

type blogRow struct {
	seq int64
	b   models.Blog
}

func NewStore() *Store {
	return &Store{
		now:          time.Now,
		admins:       make(map[string]*models.Admin),
		testimonials: make(map[string]*testimonialRow),
		blogs:        make(map[string]*blogRow),
	}
}

func (s *Store) Admins() *AdminRepository             { return &AdminRepository{s: s} }
func (s *Store) Testimonials() *TestimonialRepository { return &TestimonialRepository{s: s} }
func (s *Store) Blogs() *BlogRepository               { return &BlogRepository{s: s} }

func (s *Store) next() int64 {
	s.seq++
	return s.seq
}

// newestFirst orders by creation time, then by insertion order, both descending.
func newestFirst(at func(i int) (time.Time, int64), n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	slices.SortFunc(idx, func(a, b int) int {
		ta, sa := at(a)
		tb, sb := at(b)
		if c := tb.Compare(ta); c != 0 {
			return c
		}
		switch {
		case sa > sb:
			return -1
		case sa < sb:
			return 1
		default:
			return 0
		}
	})
	return idx
}

func cloneBlog(b models.Blog) models.Blog {
	b.Tags = slices.Clone(b.Tags)
	if b.Tags == nil {
		b.Tags = []string{}
	}
	return b
}
