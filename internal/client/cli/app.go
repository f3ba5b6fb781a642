package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/wastecms/internal/client/carousel"
	"github.com/dmitrijs2005/wastecms/internal/client/client"
	"github.com/dmitrijs2005/wastecms/internal/client/config"
	"github.com/dmitrijs2005/wastecms/internal/client/models"
	"github.com/dmitrijs2005/wastecms/internal/client/render"
	"github.com/dmitrijs2005/wastecms/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/wastecms/internal/client/services"
	"github.com/dmitrijs2005/wastecms/internal/client/session"
	"github.com/dmitrijs2005/wastecms/internal/common"
	"github.com/dmitrijs2005/wastecms/internal/logging"
)

// View names the screen the REPL is on. It only affects the prompt and the
// notices printed on navigation.
type View string

const (
	ViewHome      View = "home"
	ViewCarousel  View = "testimonials"
	ViewBlogs     View = "blogs"
	ViewLogin     View = "login"
	ViewDashboard View = "dashboard"
)

// sessionManager is what the App needs from the session.
type sessionManager interface {
	services.SessionGuard
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	Active() bool
}

type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	api     client.APIClient
	session sessionManager
	public  *services.PublicService
	render  *render.Renderer
	reader  *bufio.Reader
	out     io.Writer

	mu       sync.Mutex
	view     View
	dash     *services.Dashboard
	carousel *carousel.Carousel
}

// NewApp opens the local store, restores the session and builds the API
// adapter. Output goes to stdout, input is read from stdin.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	return newApp(ctx, c, log, os.Stdin, os.Stdout)
}

func newApp(ctx context.Context, c *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	httpClient, err := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := &App{
		config: c,
		log:    log,
		db:     db,
		api:    httpClient,
		reader: bufio.NewReader(in),
		out:    &syncWriter{w: out},
		view:   ViewHome,
	}

	sess, err := session.New(ctx, metadata.NewSQLiteRepository(db), httpClient, a, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	httpClient.UseTokenSource(sess)

	a.session = sess
	a.public = services.NewPublicService(httpClient, log)
	a.render = render.New(a.out, httpClient.BaseURL(), c.ShareBaseURL())
	return a, nil
}

// Run blocks in the REPL until the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.printf("Welcome to the wastecms client (type 'help' for commands)\n")
	runREPL(ctx, a, a.getStatus, a.reader)
}

// Close tears down the open views and the local store.
func (a *App) Close() {
	a.leaveViews()
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Error(context.Background(), "closing local database", "error", err)
		}
	}
}

// ToLogin implements session.Navigator. The admin views are closed so their
// late results are dropped.
func (a *App) ToLogin() {
	a.leaveViews()
	a.setView(ViewLogin)
	a.printf("Please sign in: type 'login'.\n")
}

func (a *App) isLoggedIn() bool {
	return a.session.Active()
}

func (a *App) getStatus() string {
	a.mu.Lock()
	v := a.view
	a.mu.Unlock()

	if a.isLoggedIn() {
		return fmt.Sprintf("(admin %s)", v)
	}
	return fmt.Sprintf("(%s)", v)
}

func (a *App) setView(v View) {
	a.mu.Lock()
	a.view = v
	a.mu.Unlock()
}

// leaveViews closes the carousel and the dashboard, if open.
func (a *App) leaveViews() {
	a.mu.Lock()
	c, d := a.carousel, a.dash
	a.carousel, a.dash = nil, nil
	a.mu.Unlock()

	if c != nil {
		c.Close()
	}
	if d != nil {
		d.Close()
	}
}

func (a *App) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}

func (a *App) confirm(prompt string) bool {
	return Confirm(a.reader, prompt, a.out)
}

// report turns a failed command into one notification line. Errors the
// session already acted upon print nothing more.
func (a *App) report(err error) {
	var ve *models.ValidationError
	switch {
	case err == nil:
	case errors.Is(err, services.ErrCancelled):
		a.printf("Cancelled.\n")
	case errors.Is(err, services.ErrBusy):
		a.printf("Still working on the previous request.\n")
	case errors.Is(err, services.ErrViewClosed),
		errors.Is(err, session.ErrNoSession),
		errors.Is(err, common.ErrorUnauthorized):
	case errors.As(err, &ve):
		a.printf("Invalid %s: %s\n", ve.Field, ve.Reason)
	case errors.Is(err, common.ErrorValidation):
		a.printf("Invalid input: %s\n", err)
	case errors.Is(err, common.ErrorNotFound):
		a.printf("Not found.\n")
	case errors.Is(err, client.ErrUnavailable):
		a.printf("Server unavailable, try again later.\n")
	default:
		if msg := client.ServerMessage(err); msg != "" {
			a.printf("Error: %s\n", msg)
			return
		}
		a.printf("Error: %s\n", err)
	}
}

// syncWriter serialises writes from the REPL and the carousel goroutine.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
