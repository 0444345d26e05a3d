// Package services holds the CLI's application services: the login session
// kept in the local cache and catalog calls made on behalf of that session.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookstore/internal/client/models"
	"github.com/dmitrijs2005/bookstore/internal/client/repositories/session"
	"github.com/dmitrijs2005/bookstore/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSession means nobody is logged in or the cached token has expired.
var ErrNoSession = errors.New("not logged in")

// API is the part of the catalog HTTP client the services depend on.
type API interface {
	Login(ctx context.Context, email, password string) (*models.Token, error)
	Register(ctx context.Context, in models.SellerInput) (*models.Seller, error)
	ListSellers(ctx context.Context) ([]models.Seller, error)
	GetSeller(ctx context.Context, token string, id int64) (*models.SellerWithBooks, error)
	DeleteSeller(ctx context.Context, token string, id int64) error
	ListBooks(ctx context.Context) ([]models.Book, error)
	CreateBook(ctx context.Context, token string, in models.BookInput) (*models.Book, error)
	DeleteBook(ctx context.Context, token string, id int64) error
	Ping(ctx context.Context) error
}

// SessionService logs the CLI in and out.
type SessionService interface {
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Register(ctx context.Context, in models.SellerInput) (*models.Seller, error)
	Current(ctx context.Context) (*models.Session, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
}

type sessionService struct {
	api  API
	repo session.Repository
	now  func() time.Time
}

func NewSessionService(api API, repo session.Repository) SessionService {
	return &sessionService{api: api, repo: repo, now: time.Now}
}

// Login authenticates against the server and caches the token until its
// expiry. The expiry is read from the token's exp claim; the signature is
// not checked here, the server does that on every request.
func (s *sessionService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	tok, err := s.api.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, err
	}

	expiresAt, err := tokenExpiry(tok.AccessToken)
	if err != nil {
		return nil, err
	}

	sess := &models.Session{Email: strings.TrimSpace(email), AccessToken: tok.AccessToken, ExpiresAt: expiresAt}
	if err := s.repo.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *sessionService) Register(ctx context.Context, in models.SellerInput) (*models.Seller, error) {
	return s.api.Register(ctx, in)
}

// Current returns the cached session. Expired sessions are dropped and
// reported as ErrNoSession.
func (s *sessionService) Current(ctx context.Context) (*models.Session, error) {
	sess, err := s.repo.Get(ctx)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	if !sess.Active(s.now()) {
		if err := s.repo.Clear(ctx); err != nil {
			return nil, err
		}
		return nil, ErrNoSession
	}
	return sess, nil
}

func (s *sessionService) Logout(ctx context.Context) error {
	return s.repo.Clear(ctx)
}

func (s *sessionService) Ping(ctx context.Context) error {
	return s.api.Ping(ctx)
}

func tokenExpiry(raw string) (time.Time, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, fmt.Errorf("malformed access token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, errors.New("malformed access token: no exp claim")
	}
	return claims.ExpiresAt.Time, nil
}
