// Package auth signs and verifies the bearer tokens handed out at login.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bookstore/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Issuer is written to the iss claim and required on decode.
const Issuer = "bookstore"

// Claims is the token payload. The subject is the seller's email.
type Claims struct {
	jwt.RegisteredClaims
}

// Codec encodes and decodes HMAC-signed JWTs with a single pinned algorithm.
// It holds no mutable state and is safe for concurrent use.
type Codec struct {
	secret []byte
	method *jwt.SigningMethodHMAC
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec returns a Codec for algorithm (HS256, HS384 or HS512). ttl is the
// lifetime Expiry adds to the issue time.
func NewCodec(secret []byte, algorithm string, ttl time.Duration) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("auth: empty secret key")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("auth: token lifetime must be positive, got %s", ttl)
	}

	var method *jwt.SigningMethodHMAC
	switch algorithm {
	case "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("auth: unsupported algorithm %q", algorithm)
	}

	return &Codec{secret: secret, method: method, ttl: ttl, now: time.Now}, nil
}

// Expiry returns the absolute expiry of a token issued at now.
func (c *Codec) Expiry(now time.Time) time.Time {
	return now.Add(c.ttl)
}

// Encode signs a token for subject that expires at expiry.
func (c *Codec) Encode(subject string, expiry time.Time) (string, error) {
	if subject == "" {
		return "", errors.New("auth: empty subject")
	}

	token := jwt.NewWithClaims(c.method, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    Issuer,
			IssuedAt:  jwt.NewNumericDate(c.now()),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	})

	s, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return s, nil
}

// Decode verifies tokenString and returns its claims.
//
// An expired token yields common.ErrTokenExpired; any other defect (bad
// signature, other algorithm, malformed, missing exp or subject) yields
// common.ErrInvalidToken. Both match common.ErrorUnauthorized.
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(Issuer),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
