package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookstore/internal/common"
	"github.com/dmitrijs2005/bookstore/internal/server/auth"
	"github.com/dmitrijs2005/bookstore/internal/server/models"
	"github.com/dmitrijs2005/bookstore/internal/server/repositories/repomanager"
)

// TokenResponse is the body returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Credentials is a login attempt.
type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthService verifies credentials, issues access tokens and resolves a
// presented token back to the seller it was issued for.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	codec       *auth.Codec
	now         func() time.Time
}

// NewAuthService constructs an AuthService over the seller store.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, codec *auth.Codec) *AuthService {
	return &AuthService{db: db, repomanager: m, codec: codec, now: time.Now}
}

// Authenticate returns the seller whose email and password both match, or
// (nil, nil) when there is no such seller. Storage failures are returned
// as errors.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.Seller, error) {
	seller, err := s.repomanager.Sellers(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			checkPassword(string(dummyHash()), password)
			return nil, nil
		}
		return nil, fmt.Errorf("error looking up seller: %w", err)
	}

	if !checkPassword(seller.Password, password) {
		return nil, nil
	}
	return seller, nil
}

// LookupByEmail resolves a token subject. It never looks at the password.
// Returns (nil, nil) when no seller has this email.
func (s *AuthService) LookupByEmail(ctx context.Context, email string) (*models.Seller, error) {
	seller, err := s.repomanager.Sellers(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error looking up seller: %w", err)
	}
	return seller, nil
}

// Login authenticates the credentials and mints a bearer token whose subject
// is the seller's email. Unknown email and wrong password are
// indistinguishable: both yield common.ErrorUnauthorized.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	email = strings.TrimSpace(email)
	if err := validateStruct(Credentials{Email: email, Password: password}); err != nil {
		return nil, err
	}

	seller, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, common.ErrorUnauthorized
	}

	token, err := s.codec.Encode(seller.Email, s.codec.Expiry(s.now()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return &TokenResponse{AccessToken: token, TokenType: common.TokenTypeBearer}, nil
}

// Authorize decodes token and returns the seller it names. Every failure
// (bad or expired token, seller gone) matches common.ErrorUnauthorized
// except storage errors, which are returned wrapped.
func (s *AuthService) Authorize(ctx context.Context, token string) (*models.Seller, error) {
	claims, err := s.codec.Decode(token)
	if err != nil {
		return nil, err
	}

	seller, err := s.LookupByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, fmt.Errorf("%w: unknown subject", common.ErrorUnauthorized)
	}
	return seller, nil
}
