// Package server wires the content API together: configuration, repositories,
// image storage, services and the HTTP router, and runs it until the context
// is cancelled.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/wastecms/internal/dbx"
	"github.com/dmitrijs2005/wastecms/internal/logging"
	"github.com/dmitrijs2005/wastecms/internal/server/config"
	"github.com/dmitrijs2005/wastecms/internal/server/httpapi"
	"github.com/dmitrijs2005/wastecms/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/wastecms/internal/server/services"
	"github.com/dmitrijs2005/wastecms/internal/server/storage"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	handler http.Handler
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)
	return newApp(ctx, c, logger)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	app := &App{config: c, logger: logger}

	m, err := app.initRepositories(ctx)
	if err != nil {
		return nil, err
	}

	store, err := app.initStorage(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}

	// services keep a nil handle in memory mode; the memory manager ignores it
	var db dbx.DBTX
	if app.db != nil {
		db = app.db
	}

	as := services.NewAuthService(db, m, logger, c.SecretKey, c.AccessTokenValidityDuration)
	if err := as.SeedAdmin(ctx, c.AdminEmail, c.AdminPassword); err != nil {
		app.Close()
		return nil, fmt.Errorf("admin seed error: %w", err)
	}

	ts := services.NewTestimonialService(db, m, store, logger)
	bs := services.NewBlogService(db, m, store, logger)

	app.handler = httpapi.NewHandler(as, ts, bs, store, logger, httpapi.Options{
		MaxUploadSize:  c.MaxUploadSize,
		LoginRateLimit: c.LoginRateLimit,
		AllowedOrigins: c.CORSAllowedOrigins,
	}).Routes()

	return app, nil
}

func (app *App) initRepositories(ctx context.Context) (repomanager.RepositoryManager, error) {
	if app.config.UsesMemory() {
		app.logger.Warn(ctx, "using in-memory repositories, data is lost on exit")
		return repomanager.NewMemoryRepositoryManager(), nil
	}

	db, err := repomanager.OpenPostgres(ctx, app.config.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	app.db = db

	m := repomanager.NewPostgresRepositoryManager()
	if err := m.RunMigrations(ctx, db); err != nil {
		app.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return m, nil
}

func (app *App) initStorage(ctx context.Context) (storage.ImageStore, error) {
	switch app.config.StorageBackend {
	case config.StorageS3:
		s, err := storage.NewS3Store(ctx, storage.S3Settings{
			User:         app.config.S3RootUser,
			Password:     app.config.S3RootPassword,
			Bucket:       app.config.S3Bucket,
			Region:       app.config.S3Region,
			BaseEndpoint: app.config.S3BaseEndpoint,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 storage init error: %w", err)
		}
		return s, nil
	case config.StorageLocal, "":
		s, err := storage.NewLocalStore(app.config.UploadDir)
		if err != nil {
			return nil, fmt.Errorf("local storage init error: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", app.config.StorageBackend)
	}
}

// Handler is the root HTTP handler.
func (app *App) Handler() http.Handler {
	return app.handler
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves HTTP until ctx is cancelled or a termination signal arrives,
// then shuts the server down gracefully.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	listen, err := net.Listen("tcp", app.config.EndpointAddr)
	if err != nil {
		return err
	}
	return app.serve(ctx, listen)
}

func (app *App) serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           app.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())
		errCh <- srv.Serve(listen)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	app.logger.Info(context.Background(), "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close releases the database connection, if any.
func (app *App) Close() error {
	if app.db == nil {
		return nil
	}
	err := app.db.Close()
	app.db = nil
	return err
}
