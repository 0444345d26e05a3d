package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/bookstore/internal/dbx"
	"github.com/dmitrijs2005/bookstore/internal/server/repositories/books"
	"github.com/dmitrijs2005/bookstore/internal/server/repositories/sellers"
)

// RepositoryManager vends repositories bound to either the pool or an open
// transaction, so a service can run several of them in one dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Sellers(db dbx.DBTX) sellers.Repository
	Books(db dbx.DBTX) books.Repository
}
