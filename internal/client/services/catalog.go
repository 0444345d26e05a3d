package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/bookstore/internal/client/client"
	"github.com/dmitrijs2005/bookstore/internal/client/models"
)

// CatalogService runs catalog calls with the cached token attached.
// A 401 from the server ends the local session.
type CatalogService interface {
	Sellers(ctx context.Context) ([]models.Seller, error)
	Seller(ctx context.Context, id int64) (*models.SellerWithBooks, error)
	DeleteSeller(ctx context.Context, id int64) error
	Books(ctx context.Context) ([]models.Book, error)
	AddBook(ctx context.Context, in models.BookInput) (*models.Book, error)
	DeleteBook(ctx context.Context, id int64) error
}

type catalogService struct {
	api      API
	sessions SessionService
}

func NewCatalogService(api API, sessions SessionService) CatalogService {
	return &catalogService{api: api, sessions: sessions}
}

func (c *catalogService) Sellers(ctx context.Context) ([]models.Seller, error) {
	return c.api.ListSellers(ctx)
}

// Seller needs a session: the server only shows sellers to authenticated
// callers.
func (c *catalogService) Seller(ctx context.Context, id int64) (*models.SellerWithBooks, error) {
	sess, err := c.sessions.Current(ctx)
	if err != nil {
		return nil, err
	}
	s, err := c.api.GetSeller(ctx, sess.AccessToken, id)
	return s, c.checkAuth(ctx, err)
}

func (c *catalogService) DeleteSeller(ctx context.Context, id int64) error {
	return c.checkAuth(ctx, c.api.DeleteSeller(ctx, c.optionalToken(ctx), id))
}

func (c *catalogService) Books(ctx context.Context) ([]models.Book, error) {
	return c.api.ListBooks(ctx)
}

func (c *catalogService) AddBook(ctx context.Context, in models.BookInput) (*models.Book, error) {
	b, err := c.api.CreateBook(ctx, c.optionalToken(ctx), in)
	return b, c.checkAuth(ctx, err)
}

func (c *catalogService) DeleteBook(ctx context.Context, id int64) error {
	return c.checkAuth(ctx, c.api.DeleteBook(ctx, c.optionalToken(ctx), id))
}

func (c *catalogService) optionalToken(ctx context.Context) string {
	sess, err := c.sessions.Current(ctx)
	if err != nil {
		return ""
	}
	return sess.AccessToken
}

// checkAuth drops the cached session on a 401 and returns err unchanged.
func (c *catalogService) checkAuth(ctx context.Context, err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		_ = c.sessions.Logout(ctx)
	}
	return err
}
