package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/bookstore/internal/client/config"
	"github.com/dmitrijs2005/bookstore/internal/client/models"
	"github.com/dmitrijs2005/bookstore/internal/client/services"
	"github.com/dmitrijs2005/bookstore/internal/logging"
)

type fakeSessions struct {
	mu sync.Mutex

	current  *models.Session
	loginErr error
	pingErr  error
	regErr   error

	registered []models.SellerInput
	pings      int
}

func (f *fakeSessions) Login(ctx context.Context, email, password string) (*models.Session, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.current = &models.Session{Email: email, AccessToken: "tok", ExpiresAt: time.Now().Add(time.Hour)}
	return f.current, nil
}

func (f *fakeSessions) Register(ctx context.Context, in models.SellerInput) (*models.Seller, error) {
	if f.regErr != nil {
		return nil, f.regErr
	}
	f.registered = append(f.registered, in)
	return &models.Seller{ID: int64(len(f.registered)), FirstName: in.FirstName, LastName: in.LastName, Email: in.Email}, nil
}

func (f *fakeSessions) Current(ctx context.Context) (*models.Session, error) {
	if f.current == nil {
		return nil, services.ErrNoSession
	}
	return f.current, nil
}

func (f *fakeSessions) Logout(ctx context.Context) error {
	f.current = nil
	return nil
}

func (f *fakeSessions) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pings++
	return f.pingErr
}

func (f *fakeSessions) setPingErr(err error) {
	f.mu.Lock()
	f.pingErr = err
	f.mu.Unlock()
}

type fakeCatalog struct {
	sellers []models.Seller
	books   []models.Book
	seller  *models.SellerWithBooks
	err     error

	added   []models.BookInput
	deleted []int64
}

func (f *fakeCatalog) Sellers(ctx context.Context) ([]models.Seller, error) { return f.sellers, f.err }

func (f *fakeCatalog) Seller(ctx context.Context, id int64) (*models.SellerWithBooks, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.seller, nil
}

func (f *fakeCatalog) DeleteSeller(ctx context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeCatalog) Books(ctx context.Context) ([]models.Book, error) { return f.books, f.err }

func (f *fakeCatalog) AddBook(ctx context.Context, in models.BookInput) (*models.Book, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.added = append(f.added, in)
	return &models.Book{ID: 11, Title: in.Title, Author: in.Author, Year: in.Year, CountPages: in.CountPages, SellerID: in.SellerID}, nil
}

func (f *fakeCatalog) DeleteBook(ctx context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

// newTestApp wires an App to fakes; input feeds the prompts.
func newTestApp(t *testing.T, input string) (*App, *fakeSessions, *fakeCatalog, *bytes.Buffer) {
	t.Helper()

	origPassword := getPassword
	getPassword = func(io.Writer) (string, error) { return "pw", nil }
	t.Cleanup(func() { getPassword = origPassword })

	sess := &fakeSessions{}
	cat := &fakeCatalog{}
	out := &bytes.Buffer{}
	cfg := &config.Config{}
	cfg.LoadDefaults()

	app := &App{
		config:   cfg,
		logger:   logging.Discard(),
		sessions: sess,
		catalog:  cat,
		reader:   bufio.NewReader(strings.NewReader(input)),
		out:      out,
	}
	return app, sess, cat, out
}
