package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/wastecms/internal/dbx"
	"github.com/dmitrijs2005/wastecms/internal/server/repositories/admins"
	"github.com/dmitrijs2005/wastecms/internal/server/repositories/blogs"
	"github.com/dmitrijs2005/wastecms/internal/server/repositories/testimonials"
)

// RepositoryManager vends repositories bound to a database handle, which may
// be a *sql.DB or a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Admins(db dbx.DBTX) admins.Repository
	Testimonials(db dbx.DBTX) testimonials.Repository
	Blogs(db dbx.DBTX) blogs.Repository
}
