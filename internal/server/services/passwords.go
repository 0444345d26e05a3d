package services

import (
	"errors"
	"sync"

	"github.com/dmitrijs2005/bookstore/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the bcrypt input limit.
const maxPasswordBytes = 72

// dummyHash is compared against when the email is unknown so both failure
// paths cost one bcrypt comparison. Built on first use.
var dummyHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("bookstore-dummy-password"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
})

// errPasswordTooLong is reported for passwords bcrypt cannot hash.
var errPasswordTooLong = common.NewValidationError("password", "must be at most 72 bytes")

func hashPassword(password string, cost int) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", errPasswordTooLong
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", errPasswordTooLong
	}
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// checkPassword reports whether password matches hash. A stored value that
// is not a bcrypt hash never matches.
func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
