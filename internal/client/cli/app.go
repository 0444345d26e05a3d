// Package cli is the interactive command-line client of the catalog API.
//
// NewApp opens the local session cache, builds the HTTP client and the
// services; Run restores a cached login, starts the connectivity watcher and
// blocks in the REPL until the user exits.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/bookstore/internal/client/client"
	"github.com/dmitrijs2005/bookstore/internal/client/config"
	"github.com/dmitrijs2005/bookstore/internal/client/repositories/session"
	"github.com/dmitrijs2005/bookstore/internal/client/services"
	"github.com/dmitrijs2005/bookstore/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	sessions services.SessionService
	catalog  services.CatalogService
	reader   *bufio.Reader
	out      io.Writer

	mu    sync.Mutex
	email string
	mode  Mode
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.CacheDSN)
	if err != nil {
		logger.Error(ctx, "error initializing session cache", "dsn", c.CacheDSN, "error", err)
		return nil, err
	}

	api, err := client.New(c.ServerBaseURL, client.WithTimeout(c.RequestTimeout))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	sessions := services.NewSessionService(api, session.NewSQLiteRepository(db))

	return &App{
		config:   c,
		logger:   logger.With("module", "cli"),
		db:       db,
		sessions: sessions,
		catalog:  services.NewCatalogService(api, sessions),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

// Run blocks until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.restoreSession(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}()

	a.printf("Bookstore CLI %s (type 'help' for commands)\n", a.config.ServerBaseURL)
	runREPL(ctx, a, a.status, a.reader)

	cancel()
	wg.Wait()
}

func (a *App) restoreSession(ctx context.Context) {
	sess, err := a.sessions.Current(ctx)
	if err != nil {
		if !errors.Is(err, services.ErrNoSession) {
			a.logger.Warn(ctx, "cannot read cached session", "error", err)
		}
		return
	}
	a.setEmail(sess.Email)
	a.printf("Resumed session of %s (valid until %s)\n", sess.Email, sess.ExpiresAt.Local().Format(time.RFC1123))
}

func (a *App) isLoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.email != ""
}

func (a *App) setEmail(email string) {
	a.mu.Lock()
	a.email = email
	a.mu.Unlock()
}

func (a *App) status() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := a.email
	if a.mode != "" {
		if s != "" {
			s += " "
		}
		s += string(a.mode)
	}
	return s
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(ctx, "connectivity changed", "mode", mode)
	}
}

// StartOnlineStatusWatcher probes the server every interval and flips the
// prompt between online and offline.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		a.probe(ctx)

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) probe(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.sessions.Ping(pctx)
	cancel()

	if ctx.Err() != nil {
		return
	}
	if err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}
