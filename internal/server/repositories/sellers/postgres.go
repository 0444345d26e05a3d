// Package sellers provides the PostgreSQL-backed seller (account) repository.
package sellers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookstore/internal/common"
	"github.com/dmitrijs2005/bookstore/internal/dbx"
	"github.com/dmitrijs2005/bookstore/internal/server/models"
)

// PostgresRepository implements seller storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts seller and fills in the generated ID. A taken email yields
// common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, seller *models.Seller) (*models.Seller, error) {
	query :=
		`INSERT INTO sellers (first_name, last_name, email, password)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		seller.FirstName, seller.LastName, seller.Email, seller.Password).Scan(&seller.ID)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return seller, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Seller, error) {
	query :=
		`SELECT id, first_name, last_name, email, password FROM sellers
		 WHERE id = $1
		 `
	return r.getOne(ctx, query, id)
}

// GetByEmail is the only lookup the auth paths use; the password hash is
// returned so the caller can verify it.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Seller, error) {
	query :=
		`SELECT id, first_name, last_name, email, password FROM sellers
		 WHERE email = $1
		 `
	return r.getOne(ctx, query, email)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.Seller, error) {
	s := &models.Seller{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.Password)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return s, nil
}

// List returns all sellers ordered by id.
func (r *PostgresRepository) List(ctx context.Context) ([]models.Seller, error) {
	query := `SELECT id, first_name, last_name, email, password FROM sellers ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select sellers: %w", err)
	}
	defer rows.Close()

	result := make([]models.Seller, 0)
	for rows.Next() {
		var s models.Seller
		if err := rows.Scan(&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.Password); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update overwrites the profile fields (first name, last name, email) of the
// seller with seller.ID. The password column is left alone.
func (r *PostgresRepository) Update(ctx context.Context, seller *models.Seller) (*models.Seller, error) {
	query :=
		`UPDATE sellers SET first_name = $1, last_name = $2, email = $3
		 WHERE id = $4
		 RETURNING password
		 `

	err := r.db.QueryRowContext(ctx, query,
		seller.FirstName, seller.LastName, seller.Email, seller.ID).Scan(&seller.Password)

	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrorNotFound
		case dbx.IsUniqueViolation(err):
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return seller, nil
}

// Delete removes the seller row. Books must be removed first (see
// books.Repository.DeleteBySeller); callers do both inside one transaction.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM sellers WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
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
