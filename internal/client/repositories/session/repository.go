// Package session persists the CLI login in the local SQLite cache.
package session

import (
	"context"

	"github.com/dmitrijs2005/bookstore/internal/client/models"
)

// Repository stores at most one session. Get returns common.ErrorNotFound
// when nothing is cached.
type Repository interface {
	Get(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, s *models.Session) error
	Clear(ctx context.Context) error
}
