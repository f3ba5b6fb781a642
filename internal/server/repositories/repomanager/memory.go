package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/wastecms/internal/dbx"
	"github.com/dmitrijs2005/wastecms/internal/server/repositories/admins"
	"github.com/dmitrijs2005/wastecms/internal/server/repositories/blogs"
	"github.com/dmitrijs2005/wastecms/internal/server/repositories/memory"
	"github.com/dmitrijs2005/wastecms/internal/server/repositories/testimonials"
)

// MemoryRepositoryManager serves every repository from one memory.Store. The
// database handle passed to the factories is ignored and may be nil.
type MemoryRepositoryManager struct {
	store *memory.Store
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{store: memory.NewStore()}
}

func (m *MemoryRepositoryManager) Admins(dbx.DBTX) admins.Repository {
	return m.store.Admins()
}

func (m *MemoryRepositoryManager) Testimonials(dbx.DBTX) testimonials.Repository {
	return m.store.Testimonials()
}

func (m *MemoryRepositoryManager) Blogs(dbx.DBTX) blogs.Repository {
	return m.store.Blogs()
}

// RunMigrations has nothing to do for the in-memory store.
func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}
