package sellers

import (
	"context"

	"github.com/dmitrijs2005/bookstore/internal/server/models"
)

// Repository is the credential store: seller accounts keyed by id and email.
// Lookups return common.ErrorNotFound when no row matches.
type Repository interface {
	Create(ctx context.Context, seller *models.Seller) (*models.Seller, error)
	GetByID(ctx context.Context, id int64) (*models.Seller, error)
	GetByEmail(ctx context.Context, email string) (*models.Seller, error)
	List(ctx context.Context) ([]models.Seller, error)
	Update(ctx context.Context, seller *models.Seller) (*models.Seller, error)
	Delete(ctx context.Context, id int64) error
}
