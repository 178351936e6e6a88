package models

import "time"

// PurchaseInfo is the receipt recorded for a buyer on every successful purchase.
type PurchaseInfo struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"productId"`
	Buyer       AccountID `json:"buyer"`
	Seller      AccountID `json:"seller"`
	Amount      Amount    `json:"amount"`
	PurchasedAt time.Time `json:"purchasedAt"`
}
