// Package session owns the admin bearer token of the terminal client: it loads
// it from the local store at start, persists it on login, and drops it on
// logout or when the API rejects it.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/wastecms/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/wastecms/internal/common"
	"github.com/dmitrijs2005/wastecms/internal/logging"
)

// ErrNoSession is returned on entry to an admin view when nobody is signed in.
var ErrNoSession = errors.New("admin session required")

// Navigator switches the UI to the login view.
type Navigator interface {
	ToLogin()
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func()

func (f NavigatorFunc) ToLogin() { f() }

// Authenticator exchanges admin credentials for a bearer token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// Session is the single piece of process-wide state of the client. It is
// safe for concurrent use and implements client.TokenSource.
type Session struct {
	repo metadata.Repository
	auth Authenticator
	nav  Navigator
	log  logging.Logger

	mu    sync.RWMutex
	token string
}

// New loads the persisted token (if any) and returns the session.
func New(ctx context.Context, repo metadata.Repository, auth Authenticator, nav Navigator, log logging.Logger) (*Session, error) {
	if nav == nil {
		nav = NavigatorFunc(func() {})
	}
	s := &Session{repo: repo, auth: auth, nav: nav, log: log}

	tok, err := repo.Get(ctx, common.TokenMetadataKey)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		// signed out
	case err != nil:
		return nil, fmt.Errorf("load session: %w", err)
	default:
		s.token = tok
	}

	return s, nil
}

// Token returns the current bearer token or "".
func (s *Session) Token(ctx context.Context) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Active reports whether a token is held.
func (s *Session) Active() bool {
	return s.Token(context.Background()) != ""
}

// Login exchanges the credentials for a token and persists it. On any failure
// the previous session, if there was one, is left as it was.
func (s *Session) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	}

	tok, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if err := s.repo.Set(ctx, common.TokenMetadataKey, tok); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	s.token = tok
	s.mu.Unlock()

	s.log.Info(ctx, "admin signed in", "email", email)
	return nil
}

// Logout forgets the token and navigates to the login view.
func (s *Session) Logout(ctx context.Context) error {
	_, err := s.clear(ctx)
	s.nav.ToLogin()
	return err
}

// RequireSession must be called on entry to an admin view before any data
// request. Without a token it navigates to login and returns ErrNoSession.
func (s *Session) RequireSession(ctx context.Context) error {
	if s.Token(ctx) != "" {
		return nil
	}
	s.nav.ToLogin()
	return ErrNoSession
}

// HandleError inspects the error of a failed admin call. When the API
// rejected the token, the session is cleared, the UI is sent to login and
// true is returned. Only the call that actually drops the token navigates,
// so concurrent rejections of the same token sign out once.
func (s *Session) HandleError(ctx context.Context, err error) bool {
	if !errors.Is(err, common.ErrorUnauthorized) {
		return false
	}

	dropped, cerr := s.clear(ctx)
	if cerr != nil {
		s.log.Error(ctx, "failed to clear rejected token", "error", cerr)
	}
	if !dropped {
		return true
	}
	s.log.Warn(ctx, "admin token rejected, signing out")
	s.nav.ToLogin()
	return true
}

// clear reports whether a token was held when it was called. The store is
// only touched by the call that drops it.
func (s *Session) clear(ctx context.Context) (bool, error) {
	s.mu.Lock()
	had := s.token != ""
	s.token = ""
	s.mu.Unlock()

	if !had {
		return false, nil
	}
	if err := s.repo.Delete(ctx, common.TokenMetadataKey); err != nil {
		return had, fmt.Errorf("clear session: %w", err)
	}
	return had, nil
}
