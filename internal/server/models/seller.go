// Package models defines server-side data models persisted in the database.
package models

// Seller is a registered account. Password holds the bcrypt hash and is
// never serialized.
type Seller struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"-"`
}

// SellerWithBooks is the detail view of a seller.
type SellerWithBooks struct {
	Seller
	Books []Book `json:"books"`
}
