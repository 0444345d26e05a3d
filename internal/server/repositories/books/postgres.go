// Package books provides the PostgreSQL-backed book repository.
package books

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookstore/internal/common"
	"github.com/dmitrijs2005/bookstore/internal/dbx"
	"github.com/dmitrijs2005/bookstore/internal/server/models"
)

// ErrUnknownSeller is returned when a book references a seller that does
// not exist. It matches common.ErrorValidation.
var ErrUnknownSeller = common.NewValidationError("seller_id", "seller does not exist")

const bookColumns = `id, title, author, year, count_pages, seller_id`

// PostgresRepository implements book storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, book *models.Book) (*models.Book, error) {
	query :=
		`INSERT INTO books (title, author, year, count_pages, seller_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		book.Title, book.Author, book.Year, book.CountPages, book.SellerID).Scan(&book.ID)

	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, ErrUnknownSeller
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return book, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	b := &models.Book{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&b.ID, &b.Title, &b.Author, &b.Year, &b.CountPages, &b.SellerID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return b, nil
}

// List returns every book ordered by id.
func (r *PostgresRepository) List(ctx context.Context) ([]models.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books ORDER BY id`
	return r.selectMany(ctx, query)
}

// ListBySeller returns the books owned by sellerID ordered by id. An unknown
// seller yields an empty slice, not an error.
func (r *PostgresRepository) ListBySeller(ctx context.Context, sellerID int64) ([]models.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE seller_id = $1 ORDER BY id`
	return r.selectMany(ctx, query, sellerID)
}

func (r *PostgresRepository) selectMany(ctx context.Context, query string, args ...any) ([]models.Book, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select books: %w", err)
	}
	defer rows.Close()

	result := make([]models.Book, 0)
	for rows.Next() {
		var b models.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Year, &b.CountPages, &b.SellerID); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, book *models.Book) (*models.Book, error) {
	query :=
		`UPDATE books SET title = $1, author = $2, year = $3, count_pages = $4, seller_id = $5
		 WHERE id = $6
		 `

	res, err := r.db.ExecContext(ctx, query,
		book.Title, book.Author, book.Year, book.CountPages, book.SellerID, book.ID)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, ErrUnknownSeller
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return nil, common.ErrorNotFound
	}
	return book, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// DeleteBySeller removes all books of sellerID and reports how many rows went.
func (r *PostgresRepository) DeleteBySeller(ctx context.Context, sellerID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE seller_id = $1`, sellerID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}
