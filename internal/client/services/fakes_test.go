package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/bookstore/internal/client/client"
	"github.com/dmitrijs2005/bookstore/internal/client/models"
	"github.com/dmitrijs2005/bookstore/internal/client/repositories/session"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	token    *models.Token
	loginErr error
	err      error

	gotToken string
	calls    []string
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*models.Token, error) {
	f.calls = append(f.calls, "login:"+email)
	return f.token, f.loginErr
}

func (f *fakeAPI) Register(ctx context.Context, in models.SellerInput) (*models.Seller, error) {
	f.calls = append(f.calls, "register")
	if f.err != nil {
		return nil, f.err
	}
	return &models.Seller{ID: 1, FirstName: in.FirstName, LastName: in.LastName, Email: in.Email}, nil
}

func (f *fakeAPI) ListSellers(ctx context.Context) ([]models.Seller, error) {
	f.calls = append(f.calls, "sellers")
	return []models.Seller{{ID: 1}}, f.err
}

func (f *fakeAPI) GetSeller(ctx context.Context, token string, id int64) (*models.SellerWithBooks, error) {
	f.calls = append(f.calls, "seller")
	f.gotToken = token
	if f.err != nil {
		return nil, f.err
	}
	return &models.SellerWithBooks{Seller: models.Seller{ID: id}}, nil
}

func (f *fakeAPI) DeleteSeller(ctx context.Context, token string, id int64) error {
	f.calls = append(f.calls, "deleteseller")
	f.gotToken = token
	return f.err
}

func (f *fakeAPI) ListBooks(ctx context.Context) ([]models.Book, error) {
	f.calls = append(f.calls, "books")
	return []models.Book{{ID: 2}}, f.err
}

func (f *fakeAPI) CreateBook(ctx context.Context, token string, in models.BookInput) (*models.Book, error) {
	f.calls = append(f.calls, "addbook")
	f.gotToken = token
	if f.err != nil {
		return nil, f.err
	}
	return &models.Book{ID: 5, Title: in.Title, SellerID: in.SellerID}, nil
}

func (f *fakeAPI) DeleteBook(ctx context.Context, token string, id int64) error {
	f.calls = append(f.calls, "deletebook")
	f.gotToken = token
	return f.err
}

func (f *fakeAPI) Ping(ctx context.Context) error { return f.err }

func newRepo(t *testing.T) session.Repository {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return session.NewSQLiteRepository(db)
}

func signedToken(t *testing.T, sub string, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sub,
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("whatever"))
	require.NoError(t, err)
	return tok
}
