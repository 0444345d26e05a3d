package models

// Seller as returned by the API. The password never comes back.
type Seller struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// SellerWithBooks is the protected seller view.
type SellerWithBooks struct {
	Seller
	Books []Book `json:"books"`
}

type Book struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	Year       int    `json:"year"`
	CountPages int    `json:"count_pages"`
	SellerID   int64  `json:"seller_id"`
}

// SellerInput is the registration payload.
type SellerInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// BookInput is the create/update payload of a book.
type BookInput struct {
	Title      string `json:"title"`
	Author     string `json:"author"`
	Year       int    `json:"year"`
	CountPages int    `json:"count_pages"`
	SellerID   int64  `json:"seller_id"`
}

// Token is the login response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
