package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bookstore/internal/common"
	"github.com/dmitrijs2005/bookstore/internal/server/models"
	"github.com/dmitrijs2005/bookstore/internal/server/repositories/books"
	"github.com/dmitrijs2005/bookstore/internal/server/repositories/repomanager"
)

// BookInput is the body of book create and update requests.
type BookInput struct {
	Title      string `json:"title" validate:"required,max=255"`
	Author     string `json:"author" validate:"required,max=255"`
	Year       int    `json:"year" validate:"gt=0,lte=2147483647"`
	CountPages int    `json:"count_pages" validate:"gt=0,lte=2147483647"`
	SellerID   int64  `json:"seller_id" validate:"gt=0"`
}

type BookService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewBookService(db *sql.DB, m repomanager.RepositoryManager) *BookService {
	return &BookService{db: db, repomanager: m}
}

// Create adds a book for an existing seller. An unknown seller is a
// validation failure (books.ErrUnknownSeller).
func (s *BookService) Create(ctx context.Context, in BookInput) (*models.Book, error) {
	book, err := s.prepare(ctx, in)
	if err != nil {
		return nil, err
	}

	created, err := s.repomanager.Books(s.db).Create(ctx, book)
	if err != nil {
		return nil, fmt.Errorf("error creating book: %w", err)
	}
	return created, nil
}

func (s *BookService) List(ctx context.Context) ([]models.Book, error) {
	list, err := s.repomanager.Books(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing books: %w", err)
	}
	return list, nil
}

func (s *BookService) Get(ctx context.Context, id int64) (*models.Book, error) {
	b, err := s.repomanager.Books(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting book: %w", err)
	}
	return b, nil
}

func (s *BookService) Update(ctx context.Context, id int64, in BookInput) (*models.Book, error) {
	book, err := s.prepare(ctx, in)
	if err != nil {
		return nil, err
	}
	book.ID = id

	updated, err := s.repomanager.Books(s.db).Update(ctx, book)
	if err != nil {
		return nil, fmt.Errorf("error updating book: %w", err)
	}
	return updated, nil
}

func (s *BookService) Delete(ctx context.Context, id int64) error {
	if err := s.repomanager.Books(s.db).Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting book: %w", err)
	}
	return nil
}

// prepare validates in and checks that the owning seller exists.
func (s *BookService) prepare(ctx context.Context, in BookInput) (*models.Book, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	if _, err := s.repomanager.Sellers(s.db).GetByID(ctx, in.SellerID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, books.ErrUnknownSeller
		}
		return nil, fmt.Errorf("error getting seller: %w", err)
	}

	return &models.Book{
		Title:      in.Title,
		Author:     in.Author,
		Year:       in.Year,
		CountPages: in.CountPages,
		SellerID:   in.SellerID,
	}, nil
}
