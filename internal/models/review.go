package models

import "time"

// Review is a buyer's rating of a product. A reviewer holds at most one
// review per product and never reviews their own listing.
type Review struct {
	ProductID string    `json:"productId"`
	Reviewer  AccountID `json:"reviewer"`
	Content   string    `json:"content"`
	Star      uint64    `json:"star"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReviewInput carries the caller-supplied fields for a new review.
type ReviewInput struct {
	ProductID string `json:"productId"`
	Content   string `json:"content"`
	Star      uint64 `json:"star"`
}
