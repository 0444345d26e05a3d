package models

type Book struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	Year       int    `json:"year"`
	CountPages int    `json:"count_pages"`
	SellerID   int64  `json:"seller_id"`
}
