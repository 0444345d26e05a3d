package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/bookstore/internal/common"
	"github.com/dmitrijs2005/bookstore/internal/dbx"
	"github.com/dmitrijs2005/bookstore/internal/server/models"
	"github.com/dmitrijs2005/bookstore/internal/server/repositories/books"
	"github.com/dmitrijs2005/bookstore/internal/server/repositories/sellers"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// memStore is an in-memory catalog shared by fakeSellersRepo and
// fakeBooksRepo. Transactions are not modelled: rollback is asserted via
// sqlmock expectations instead.
type memStore struct {
	mu      sync.Mutex
	sellers map[int64]models.Seller
	books   map[int64]models.Book
	nextID  int64

	// injected failures
	getErr       error
	listErr      error
	deleteBooks  error
	deleteSeller error
}

func newMemStore() *memStore {
	return &memStore{sellers: map[int64]models.Seller{}, books: map[int64]models.Book{}}
}

func (m *memStore) addSeller(s models.Seller) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	s.ID = m.nextID
	m.sellers[s.ID] = s
	return s.ID
}

func (m *memStore) addBook(b models.Book) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	b.ID = m.nextID
	m.books[b.ID] = b
	return b.ID
}

type fakeSellersRepo struct{ st *memStore }

func (r *fakeSellersRepo) Create(_ context.Context, s *models.Seller) (*models.Seller, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, existing := range r.st.sellers {
		if existing.Email == s.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	r.st.nextID++
	s.ID = r.st.nextID
	r.st.sellers[s.ID] = *s
	return s, nil
}

func (r *fakeSellersRepo) GetByID(_ context.Context, id int64) (*models.Seller, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if r.st.getErr != nil {
		return nil, r.st.getErr
	}
	s, ok := r.st.sellers[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &s, nil
}

func (r *fakeSellersRepo) GetByEmail(_ context.Context, email string) (*models.Seller, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if r.st.getErr != nil {
		return nil, r.st.getErr
	}
	for _, s := range r.st.sellers {
		if s.Email == email {
			return &s, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeSellersRepo) List(context.Context) ([]models.Seller, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if r.st.listErr != nil {
		return nil, r.st.listErr
	}
	out := make([]models.Seller, 0, len(r.st.sellers))
	for _, s := range r.st.sellers {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeSellersRepo) Update(_ context.Context, s *models.Seller) (*models.Seller, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	cur, ok := r.st.sellers[s.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	for id, existing := range r.st.sellers {
		if id != s.ID && existing.Email == s.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	s.Password = cur.Password
	r.st.sellers[s.ID] = *s
	return s, nil
}

func (r *fakeSellersRepo) Delete(_ context.Context, id int64) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if r.st.deleteSeller != nil {
		return r.st.deleteSeller
	}
	if _, ok := r.st.sellers[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.st.sellers, id)
	return nil
}

type fakeBooksRepo struct{ st *memStore }

func (r *fakeBooksRepo) Create(_ context.Context, b *models.Book) (*models.Book, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if _, ok := r.st.sellers[b.SellerID]; !ok {
		return nil, books.ErrUnknownSeller
	}
	r.st.nextID++
	b.ID = r.st.nextID
	r.st.books[b.ID] = *b
	return b, nil
}

func (r *fakeBooksRepo) GetByID(_ context.Context, id int64) (*models.Book, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	b, ok := r.st.books[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &b, nil
}

func (r *fakeBooksRepo) List(context.Context) ([]models.Book, error) {
	return r.filter(func(models.Book) bool { return true })
}

func (r *fakeBooksRepo) ListBySeller(_ context.Context, sellerID int64) ([]models.Book, error) {
	return r.filter(func(b models.Book) bool { return b.SellerID == sellerID })
}

func (r *fakeBooksRepo) filter(keep func(models.Book) bool) ([]models.Book, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if r.st.listErr != nil {
		return nil, r.st.listErr
	}
	out := make([]models.Book, 0)
	for _, b := range r.st.books {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeBooksRepo) Update(_ context.Context, b *models.Book) (*models.Book, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if _, ok := r.st.books[b.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	r.st.books[b.ID] = *b
	return b, nil
}

func (r *fakeBooksRepo) Delete(_ context.Context, id int64) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if _, ok := r.st.books[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.st.books, id)
	return nil
}

func (r *fakeBooksRepo) DeleteBySeller(_ context.Context, sellerID int64) (int64, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if r.st.deleteBooks != nil {
		return 0, r.st.deleteBooks
	}
	var n int64
	for id, b := range r.st.books {
		if b.SellerID == sellerID {
			delete(r.st.books, id)
			n++
		}
	}
	return n, nil
}

// fakeRepoManager hands out repos over the same memStore regardless of
// whether db is the pool or a transaction; it records which it got.
type fakeRepoManager struct {
	st      *memStore
	mu      sync.Mutex
	handles []dbx.DBTX
}

func newFakeRepoManager(st *memStore) *fakeRepoManager { return &fakeRepoManager{st: st} }

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Sellers(db dbx.DBTX) sellers.Repository {
	m.record(db)
	return &fakeSellersRepo{st: m.st}
}

func (m *fakeRepoManager) Books(db dbx.DBTX) books.Repository {
	m.record(db)
	return &fakeBooksRepo{st: m.st}
}

func (m *fakeRepoManager) record(db dbx.DBTX) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handles = append(m.handles, db)
}

func (m *fakeRepoManager) usedTx() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, h := range m.handles {
		if _, ok := h.(*sql.Tx); ok {
			return true
		}
	}
	return false
}
