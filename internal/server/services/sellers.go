package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bookstore/internal/common"
	"github.com/dmitrijs2005/bookstore/internal/dbx"
	"github.com/dmitrijs2005/bookstore/internal/server/models"
	"github.com/dmitrijs2005/bookstore/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

// SellerInput is a registration request.
type SellerInput struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Password  string `json:"password" validate:"required,max=72"`
}

// SellerUpdate carries the editable profile fields. The password cannot be
// changed through it.
type SellerUpdate struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=254"`
}

type SellerService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hashCost    int
}

func NewSellerService(db *sql.DB, m repomanager.RepositoryManager) *SellerService {
	return &SellerService{db: db, repomanager: m, hashCost: bcrypt.DefaultCost}
}

// Register creates a seller account. The password is stored as a bcrypt
// hash. A taken email yields common.ErrorAlreadyExists.
func (s *SellerService) Register(ctx context.Context, in SellerInput) (*models.Seller, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	hash, err := hashPassword(in.Password, s.hashCost)
	if errors.Is(err, common.ErrorValidation) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	seller := &models.Seller{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  hash,
	}
	created, err := s.repomanager.Sellers(s.db).Create(ctx, seller)
	if err != nil {
		return nil, fmt.Errorf("error creating seller: %w", err)
	}
	return created, nil
}

func (s *SellerService) List(ctx context.Context) ([]models.Seller, error) {
	list, err := s.repomanager.Sellers(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing sellers: %w", err)
	}
	return list, nil
}

// GetWithBooks returns the seller and its books (ordered by id), read in one
// read-only transaction.
func (s *SellerService) GetWithBooks(ctx context.Context, id int64) (*models.SellerWithBooks, error) {
	var out *models.SellerWithBooks

	err := dbx.WithTx(ctx, s.db, &sql.TxOptions{ReadOnly: true}, func(ctx context.Context, tx dbx.DBTX) error {
		seller, err := s.repomanager.Sellers(tx).GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("error getting seller: %w", err)
		}
		books, err := s.repomanager.Books(tx).ListBySeller(ctx, id)
		if err != nil {
			return fmt.Errorf("error listing books: %w", err)
		}
		out = &models.SellerWithBooks{Seller: *seller, Books: books}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites first name, last name and email of seller id.
func (s *SellerService) Update(ctx context.Context, id int64, in SellerUpdate) (*models.Seller, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	seller := &models.Seller{ID: id, FirstName: in.FirstName, LastName: in.LastName, Email: in.Email}
	updated, err := s.repomanager.Sellers(s.db).Update(ctx, seller)
	if err != nil {
		return nil, fmt.Errorf("error updating seller: %w", err)
	}
	return updated, nil
}

// Delete removes seller id together with all of its books. Both deletes run
// in one transaction: if the seller does not exist nothing is removed and
// common.ErrorNotFound is returned.
func (s *SellerService) Delete(ctx context.Context, id int64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Books(tx).DeleteBySeller(ctx, id); err != nil {
			return fmt.Errorf("error deleting books: %w", err)
		}
		if err := s.repomanager.Sellers(tx).Delete(ctx, id); err != nil {
			return fmt.Errorf("error deleting seller: %w", err)
		}
		return nil
	})
}
