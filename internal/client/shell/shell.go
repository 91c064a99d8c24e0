// Package shell owns the in-memory session and the current route of the
// notes client. It is the session context handed to the entry flows (as
// their login handler) and to the notes panel (for the profile and logout).
package shell

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/noteapp/internal/client/models"
	"github.com/dmitrijs2005/noteapp/internal/logging"
)

const (
	RouteNotes  = "/"
	RouteSignup = "/signup"
	RouteVerify = "/verify"
)

var ErrUnknownRoute = errors.New("unknown route")

// SessionStore is the durable mirror of the session.
type SessionStore interface {
	Load(ctx context.Context) (models.Session, bool)
	Save(ctx context.Context, token string, profile models.UserProfile) error
	Clear(ctx context.Context) error
}

// Gateway is the part of the API client the shell drives.
type Gateway interface {
	SetToken(token string)
	OnUnauthorized(fn func())
}

type Shell struct {
	store SessionStore
	api   Gateway
	log   logging.Logger

	mu      sync.Mutex
	session *models.Session
	route   string
}

// New wires the shell to the gateway's unauthorized event.
func New(store SessionStore, api Gateway, log logging.Logger) *Shell {
	if log == nil {
		log = logging.NewNopLogger()
	}
	s := &Shell{store: store, api: api, log: log.With("component", "shell"), route: RouteSignup}
	api.OnUnauthorized(s.handleUnauthorized)
	return s
}

// Start restores a persisted session and lands on the route the guards
// allow.
func (s *Shell) Start(ctx context.Context) string {
	sess, ok := s.store.Load(ctx)

	s.mu.Lock()
	if ok {
		s.session = &sess
	} else {
		s.session = nil
	}
	s.mu.Unlock()

	if ok {
		s.api.SetToken(sess.Token)
		s.log.Info(ctx, "session restored", "user", sess.User.DisplayName())
	} else {
		s.api.SetToken("")
	}

	route, _ := s.Navigate(RouteNotes)
	return route
}

// Navigate moves to path after applying the guards and returns the route
// actually shown.
func (s *Shell) Navigate(path string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch path {
	case RouteNotes, RouteSignup, RouteVerify:
	default:
		return s.route, fmt.Errorf("%w: %s", ErrUnknownRoute, path)
	}

	s.route = guard(path, s.session != nil)
	return s.route, nil
}

func guard(path string, authenticated bool) string {
	switch {
	case authenticated && (path == RouteSignup || path == RouteVerify):
		return RouteNotes
	case !authenticated && path == RouteNotes:
		return RouteSignup
	default:
		return path
	}
}

func (s *Shell) Route() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.route
}

func (s *Shell) Session() (models.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return models.Session{}, false
	}
	return *s.session, true
}

func (s *Shell) Authenticated() bool {
	_, ok := s.Session()
	return ok
}

// Login installs the session, persists it and shows the notes. A storage
// failure only costs restart survival.
func (s *Shell) Login(ctx context.Context, token string, profile models.UserProfile) {
	s.mu.Lock()
	s.session = &models.Session{Token: token, User: profile}
	s.route = RouteNotes
	s.mu.Unlock()

	s.api.SetToken(token)
	if err := s.store.Save(ctx, token, profile); err != nil {
		s.log.Warn(ctx, "session not persisted", "error", err)
	}
	s.log.Info(ctx, "logged in", "user", profile.DisplayName())
}

// Logout drops the session everywhere and returns to the entry flow. It is
// safe to call when already logged out.
func (s *Shell) Logout(ctx context.Context) {
	s.drop(ctx)
	if err := s.store.Clear(ctx); err != nil {
		s.log.Warn(ctx, "session storage not cleared", "error", err)
	}
}

// handleUnauthorized runs after the gateway has already cleared storage.
func (s *Shell) handleUnauthorized() {
	ctx := context.Background()
	s.log.Info(ctx, "server rejected the session")
	s.drop(ctx)
}

func (s *Shell) drop(ctx context.Context) {
	s.mu.Lock()
	had := s.session != nil
	s.session = nil
	s.route = RouteSignup
	s.mu.Unlock()

	s.api.SetToken("")
	if had {
		s.log.Info(ctx, "logged out")
	}
}
