package httpapi

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/bookstore/internal/common"
	"github.com/dmitrijs2005/bookstore/internal/server/auth"
	"github.com/dmitrijs2005/bookstore/internal/server/models"
	"github.com/dmitrijs2005/bookstore/internal/server/services"
)

// catalog is an in-memory stand-in for the service layer. Passwords are kept
// in clear text; hashing is covered by the services tests.
type catalog struct {
	mu       sync.Mutex
	sellers  map[int64]*models.Seller
	books    map[int64]*models.Book
	nextID   int64
	codec    *auth.Codec
	now      func() time.Time
	failWith error
}

func newCatalog(codec *auth.Codec) *catalog {
	return &catalog{
		sellers: map[int64]*models.Seller{},
		books:   map[int64]*models.Book{},
		codec:   codec,
		now:     time.Now,
	}
}

func (c *catalog) addSeller(first, email, password string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	c.sellers[c.nextID] = &models.Seller{ID: c.nextID, FirstName: first, LastName: "L", Email: email, Password: password}
	return c.nextID
}

func (c *catalog) addBook(sellerID int64, title string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	c.books[c.nextID] = &models.Book{ID: c.nextID, Title: title, Author: "A", Year: 2000, CountPages: 100, SellerID: sellerID}
	return c.nextID
}

func (c *catalog) byEmail(email string) *models.Seller {
	for _, s := range c.sellers {
		if s.Email == email {
			return s
		}
	}
	return nil
}

// --- AuthService ---

type fakeAuth struct{ c *catalog }

func (a fakeAuth) Login(_ context.Context, email, password string) (*services.TokenResponse, error) {
	a.c.mu.Lock()
	defer a.c.mu.Unlock()
	if a.c.failWith != nil {
		return nil, a.c.failWith
	}
	s := a.c.byEmail(email)
	if s == nil || s.Password != password {
		return nil, common.ErrorUnauthorized
	}
	tok, err := a.c.codec.Encode(s.Email, a.c.codec.Expiry(a.c.now()))
	if err != nil {
		return nil, err
	}
	return &services.TokenResponse{AccessToken: tok, TokenType: common.TokenTypeBearer}, nil
}

func (a fakeAuth) Authorize(_ context.Context, token string) (*models.Seller, error) {
	claims, err := a.c.codec.Decode(token)
	if err != nil {
		return nil, err
	}
	a.c.mu.Lock()
	defer a.c.mu.Unlock()
	if a.c.failWith != nil {
		return nil, a.c.failWith
	}
	s := a.c.byEmail(claims.Subject)
	if s == nil {
		return nil, fmt.Errorf("%w: unknown subject", common.ErrorUnauthorized)
	}
	cp := *s
	return &cp, nil
}

// --- SellerService ---

type fakeSellers struct{ c *catalog }

func (f fakeSellers) Register(_ context.Context, in services.SellerInput) (*models.Seller, error) {
	if in.Email == "" || in.FirstName == "" {
		return nil, common.NewValidationError("email", "field required")
	}
	f.c.mu.Lock()
	defer f.c.mu.Unlock()
	if f.c.byEmail(in.Email) != nil {
		return nil, fmt.Errorf("error creating seller: %w", common.ErrorAlreadyExists)
	}
	f.c.nextID++
	s := &models.Seller{ID: f.c.nextID, FirstName: in.FirstName, LastName: in.LastName, Email: in.Email, Password: in.Password}
	f.c.sellers[s.ID] = s
	cp := *s
	return &cp, nil
}

func (f fakeSellers) List(context.Context) ([]models.Seller, error) {
	f.c.mu.Lock()
	defer f.c.mu.Unlock()
	if f.c.failWith != nil {
		return nil, f.c.failWith
	}
	out := make([]models.Seller, 0, len(f.c.sellers))
	for _, s := range f.c.sellers {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f fakeSellers) GetWithBooks(_ context.Context, id int64) (*models.SellerWithBooks, error) {
	f.c.mu.Lock()
	defer f.c.mu.Unlock()
	s, ok := f.c.sellers[id]
	if !ok {
		return nil, fmt.Errorf("error getting seller: %w", common.ErrorNotFound)
	}
	out := &models.SellerWithBooks{Seller: *s, Books: []models.Book{}}
	for _, b := range f.c.books {
		if b.SellerID == id {
			out.Books = append(out.Books, *b)
		}
	}
	sort.Slice(out.Books, func(i, j int) bool { return out.Books[i].ID < out.Books[j].ID })
	return out, nil
}

func (f fakeSellers) Update(_ context.Context, id int64, in services.SellerUpdate) (*models.Seller, error) {
	f.c.mu.Lock()
	defer f.c.mu.Unlock()
	s, ok := f.c.sellers[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if other := f.c.byEmail(in.Email); other != nil && other.ID != id {
		return nil, common.ErrorAlreadyExists
	}
	s.FirstName, s.LastName, s.Email = in.FirstName, in.LastName, in.Email
	cp := *s
	return &cp, nil
}

func (f fakeSellers) Delete(_ context.Context, id int64) error {
	f.c.mu.Lock()
	defer f.c.mu.Unlock()
	if _, ok := f.c.sellers[id]; !ok {
		return common.ErrorNotFound
	}
	for bid, b := range f.c.books {
		if b.SellerID == id {
			delete(f.c.books, bid)
		}
	}
	delete(f.c.sellers, id)
	return nil
}

// --- BookService ---

type fakeBooks struct{ c *catalog }

func (f fakeBooks) Create(_ context.Context, in services.BookInput) (*models.Book, error) {
	f.c.mu.Lock()
	defer f.c.mu.Unlock()
	if _, ok := f.c.sellers[in.SellerID]; !ok {
		return nil, common.NewValidationError("seller_id", "seller does not exist")
	}
	f.c.nextID++
	b := &models.Book{ID: f.c.nextID, Title: in.Title, Author: in.Author, Year: in.Year, CountPages: in.CountPages, SellerID: in.SellerID}
	f.c.books[b.ID] = b
	cp := *b
	return &cp, nil
}

func (f fakeBooks) List(context.Context) ([]models.Book, error) {
	f.c.mu.Lock()
	defer f.c.mu.Unlock()
	out := make([]models.Book, 0, len(f.c.books))
	for _, b := range f.c.books {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f fakeBooks) Get(_ context.Context, id int64) (*models.Book, error) {
	f.c.mu.Lock()
	defer f.c.mu.Unlock()
	b, ok := f.c.books[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *b
	return &cp, nil
}

func (f fakeBooks) Update(_ context.Context, id int64, in services.BookInput) (*models.Book, error) {
	f.c.mu.Lock()
	defer f.c.mu.Unlock()
	b, ok := f.c.books[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	b.Title, b.Author, b.Year, b.CountPages, b.SellerID = in.Title, in.Author, in.Year, in.CountPages, in.SellerID
	cp := *b
	return &cp, nil
}

func (f fakeBooks) Delete(_ context.Context, id int64) error {
	f.c.mu.Lock()
	defer f.c.mu.Unlock()
	if _, ok := f.c.books[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.c.books, id)
	return nil
}
