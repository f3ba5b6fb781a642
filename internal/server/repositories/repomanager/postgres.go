// Package repomanager provides the RepositoryManager implementations:
// PostgreSQL, wiring together repository constructors and database
// migrations (via goose), and the in-memory store.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/wastecms/internal/dbx"
	"github.com/dmitrijs2005/wastecms/internal/server/migrations"
	"github.com/dmitrijs2005/wastecms/internal/server/repositories/admins"
	"github.com/dmitrijs2005/wastecms/internal/server/repositories/blogs"
	"github.com/dmitrijs2005/wastecms/internal/server/repositories/testimonials"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Admins returns an admins.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Admins(db dbx.DBTX) admins.Repository {
	return admins.NewPostgresRepository(db)
}

// Testimonials returns a testimonials.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Testimonials(db dbx.DBTX) testimonials.Repository {
	return testimonials.NewPostgresRepository(db)
}

// Blogs returns a blogs.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Blogs(db dbx.DBTX) blogs.Repository {
	return blogs.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}

// OpenPostgres opens a pgx connection pool for dsn and checks it is reachable.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
