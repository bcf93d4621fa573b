package review

import "time"

// Review is a customer's rating of a purchased product. Reviews start
// unapproved and only show on the storefront once an admin approves them.
type Review struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	CustomerID string    `json:"customer_id"`
	Rating     int       `json:"rating"`
	Title      *string   `json:"title,omitempty"`
	Comment    string    `json:"comment"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type NewReviewInput struct {
	ProductID  string
	CustomerID string
	Rating     int
	Title      *string
	Comment    string
}
