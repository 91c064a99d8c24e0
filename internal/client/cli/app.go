package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/noteapp/internal/client/client"
	"github.com/dmitrijs2005/noteapp/internal/client/config"
	"github.com/dmitrijs2005/noteapp/internal/client/flows"
	"github.com/dmitrijs2005/noteapp/internal/client/notespanel"
	"github.com/dmitrijs2005/noteapp/internal/client/services"
	"github.com/dmitrijs2005/noteapp/internal/client/session"
	"github.com/dmitrijs2005/noteapp/internal/client/shell"
	"github.com/dmitrijs2005/noteapp/internal/logging"
)

type App struct {
	config *config.Config
	log    logging.Logger

	shell  *shell.Shell
	signup *flows.Signup
	signin *flows.SignIn
	panel  *notespanel.Panel

	reader  *bufio.Reader
	out     io.Writer
	mounted string
	closers []func() error
}

// NewApp opens session storage and wires every component for cfg. The
// caller must Run the app, which also releases storage.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logging.New(logging.Options{Backend: cfg.LogBackend, Level: cfg.LogLevel, Output: os.Stderr})
	if err != nil {
		return nil, err
	}

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "error opening session storage", "backend", cfg.StorageBackend, "error", err)
		return nil, err
	}

	app, err := newApp(cfg, store, log, os.Stdin, os.Stdout)
	if err != nil {
		_ = closeStore()
		return nil, err
	}
	app.closers = append(app.closers, closeStore)
	return app, nil
}

func newApp(cfg *config.Config, store *session.Store, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	api, err := client.NewHTTPClient(cfg.APIBaseURL, store,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	auth := services.NewAuthService(api)
	notes := services.NewNoteService(api)
	sh := shell.New(store, api, log)

	return &App{
		config: cfg,
		log:    log,
		shell:  sh,
		signup: flows.NewSignup(auth, store, sh, log),
		signin: flows.NewSignIn(auth, store, sh, nil, log),
		panel:  notespanel.New(notes, sh, log),
		reader: bufio.NewReader(in),
		out:    out,
	}, nil
}

// Run restores the session and serves commands until exit or end of input.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	a.shell.Start(ctx)
	fmt.Fprintln(a.out, "Welcome to the notes CLI (type 'help' for commands)")

	runREPL(ctx, a, a.status, a.reader)
	return nil
}

// Close stops background work and releases storage.
func (a *App) Close() error {
	a.signin.Close()

	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) route() string { return a.shell.Route() }

func (a *App) navigate(path string) {
	if _, err := a.shell.Navigate(path); err != nil {
		fmt.Fprintln(a.out, err)
	}
}

func (a *App) status() string {
	if sess, ok := a.shell.Session(); ok {
		if name := sess.User.DisplayName(); name != "" {
			return fmt.Sprintf("(%s %s)", name, a.route())
		}
	}
	return fmt.Sprintf("(%s)", a.route())
}
