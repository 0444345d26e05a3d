package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/bookstore/internal/common"
	"github.com/dmitrijs2005/bookstore/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newSellerService(t *testing.T, st *memStore) (*SellerService, *fakeRepoManager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newSQLMockDB(t)
	rm := newFakeRepoManager(st)
	s := NewSellerService(db, rm)
	s.hashCost = bcrypt.MinCost
	return s, rm, mock
}

func validSellerInput() SellerInput {
	return SellerInput{FirstName: "Ann", LastName: "Lee", Email: "ann@example.com", Password: "s3cret"}
}

func TestRegister_HashesPassword(t *testing.T) {
	st := newMemStore()
	s, _, _ := newSellerService(t, st)

	got, err := s.Register(context.Background(), validSellerInput())
	require.NoError(t, err)
	assert.NotZero(t, got.ID)
	assert.NotEqual(t, "s3cret", got.Password)
	assert.True(t, checkPassword(st.sellers[got.ID].Password, "s3cret"))
}

func TestRegister_TrimsInput(t *testing.T) {
	s, _, _ := newSellerService(t, newMemStore())

	in := validSellerInput()
	in.FirstName = "  Ann "
	in.Email = " ann@example.com"

	got, err := s.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.FirstName)
	assert.Equal(t, "ann@example.com", got.Email)
}

func TestRegister_Validation(t *testing.T) {
	s, _, _ := newSellerService(t, newMemStore())

	cases := map[string]func(*SellerInput){
		"first_name": func(in *SellerInput) { in.FirstName = "" },
		"last_name":  func(in *SellerInput) { in.LastName = "   " },
		"email":      func(in *SellerInput) { in.Email = "not-an-email" },
		"password":   func(in *SellerInput) { in.Password = "" },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			in := validSellerInput()
			mutate(&in)

			_, err := s.Register(context.Background(), in)
			require.ErrorIs(t, err, common.ErrorValidation)

			var ve *common.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, field, ve.Field)
		})
	}
}

func TestRegister_PasswordOverBcryptLimit(t *testing.T) {
	st := newMemStore()
	s, _, _ := newSellerService(t, st)

	in := validSellerInput()
	in.Password = strings.Repeat("é", 40)

	_, err := s.Register(context.Background(), in)
	require.ErrorIs(t, err, common.ErrorValidation)

	var ve *common.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "password", ve.Field)
	assert.Empty(t, st.sellers)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s, _, _ := newSellerService(t, newMemStore())

	_, err := s.Register(context.Background(), validSellerInput())
	require.NoError(t, err)

	_, err = s.Register(context.Background(), validSellerInput())
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestSellerList(t *testing.T) {
	st := newMemStore()
	st.addSeller(models.Seller{Email: "a@example.com"})
	st.addSeller(models.Seller{Email: "b@example.com"})
	s, _, _ := newSellerService(t, st)

	got, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a@example.com", got[0].Email)

	st.listErr = errBoom{}
	_, err = s.List(context.Background())
	assert.ErrorIs(t, err, errBoom{})
}

func TestGetWithBooks(t *testing.T) {
	st := newMemStore()
	id := st.addSeller(models.Seller{FirstName: "Ann", Email: "a@example.com"})
	other := st.addSeller(models.Seller{Email: "b@example.com"})
	b1 := st.addBook(models.Book{Title: "One", SellerID: id})
	st.addBook(models.Book{Title: "Other", SellerID: other})
	b2 := st.addBook(models.Book{Title: "Two", SellerID: id})

	s, rm, mock := newSellerService(t, st)
	mock.ExpectBegin()
	mock.ExpectCommit()

	got, err := s.GetWithBooks(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.FirstName)
	require.Len(t, got.Books, 2)
	assert.Equal(t, []int64{b1, b2}, []int64{got.Books[0].ID, got.Books[1].ID})
	assert.True(t, rm.usedTx())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetWithBooks_NoBooksIsEmptyList(t *testing.T) {
	st := newMemStore()
	id := st.addSeller(models.Seller{Email: "a@example.com"})

	s, _, mock := newSellerService(t, st)
	mock.ExpectBegin()
	mock.ExpectCommit()

	got, err := s.GetWithBooks(context.Background(), id)
	require.NoError(t, err)
	assert.NotNil(t, got.Books)
	assert.Empty(t, got.Books)
}

func TestGetWithBooks_NotFound(t *testing.T) {
	s, _, mock := newSellerService(t, newMemStore())
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := s.GetWithBooks(context.Background(), 99)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSellerUpdate(t *testing.T) {
	st := newMemStore()
	hash, _ := hashPassword("pw", bcrypt.MinCost)
	id := st.addSeller(models.Seller{FirstName: "Ann", LastName: "Lee", Email: "a@example.com", Password: hash})
	st.addSeller(models.Seller{Email: "taken@example.com"})
	s, _, _ := newSellerService(t, st)
	ctx := context.Background()

	got, err := s.Update(ctx, id, SellerUpdate{FirstName: "Anna", LastName: "Lee", Email: "anna@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Anna", got.FirstName)
	assert.Equal(t, hash, st.sellers[id].Password, "password must not change")

	_, err = s.Update(ctx, 999, SellerUpdate{FirstName: "X", LastName: "Y", Email: "x@example.com"})
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = s.Update(ctx, id, SellerUpdate{FirstName: "X", LastName: "Y", Email: "taken@example.com"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	_, err = s.Update(ctx, id, SellerUpdate{FirstName: "X", LastName: "Y", Email: "bad"})
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestSellerDelete_RemovesBooksInOneTransaction(t *testing.T) {
	st := newMemStore()
	id := st.addSeller(models.Seller{Email: "a@example.com"})
	st.addBook(models.Book{SellerID: id})
	st.addBook(models.Book{SellerID: id})
	keep := st.addSeller(models.Seller{Email: "b@example.com"})
	kept := st.addBook(models.Book{SellerID: keep})

	s, rm, mock := newSellerService(t, st)
	mock.ExpectBegin()
	mock.ExpectCommit()

	require.NoError(t, s.Delete(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.True(t, rm.usedTx())

	_, ok := st.sellers[id]
	assert.False(t, ok)
	assert.Len(t, st.books, 1)
	_, ok = st.books[kept]
	assert.True(t, ok)
}

func TestSellerDelete_NotFoundRollsBack(t *testing.T) {
	s, _, mock := newSellerService(t, newMemStore())
	mock.ExpectBegin()
	mock.ExpectRollback()

	err := s.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSellerDelete_BookDeleteFailureRollsBack(t *testing.T) {
	st := newMemStore()
	id := st.addSeller(models.Seller{Email: "a@example.com"})
	st.deleteBooks = errBoom{}

	s, _, mock := newSellerService(t, st)
	mock.ExpectBegin()
	mock.ExpectRollback()

	err := s.Delete(context.Background(), id)
	assert.ErrorIs(t, err, errBoom{})
	assert.NoError(t, mock.ExpectationsWereMet())

	_, ok := st.sellers[id]
	assert.True(t, ok)
}

func TestSellerDelete_CommitFailure(t *testing.T) {
	st := newMemStore()
	id := st.addSeller(models.Seller{Email: "a@example.com"})

	s, _, mock := newSellerService(t, st)
	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errBoom{})

	err := s.Delete(context.Background(), id)
	assert.ErrorIs(t, err, errBoom{})
}
