package models

import "encoding/json"

// CouponKey identifies a coupon. All three components take part in equality,
// so the same code may be issued for different products or by different sellers.
type CouponKey struct {
	ProductID string    `json:"productId"`
	Code      string    `json:"code"`
	Seller    AccountID `json:"seller"`
}

// NewCouponKey builds the key once so lookup and insert share one value.
func NewCouponKey(productID, code string, seller AccountID) CouponKey {
	return CouponKey{ProductID: productID, Code: code, Seller: seller}
}

// StorageKey returns the canonical encoding used by the key-value store.
func (k CouponKey) StorageKey() string {
	return encodeKey(k.ProductID, k.Code, string(k.Seller))
}

// ReviewTrackingKey identifies the one-time review slot of a reviewer on a product.
type ReviewTrackingKey struct {
	ProductID string    `json:"productId"`
	Reviewer  AccountID `json:"reviewer"`
}

// NewReviewTrackingKey builds a tracking key.
func NewReviewTrackingKey(productID string, reviewer AccountID) ReviewTrackingKey {
	return ReviewTrackingKey{ProductID: productID, Reviewer: reviewer}
}

// StorageKey returns the canonical encoding used by the key-value store.
func (k ReviewTrackingKey) StorageKey() string {
	return encodeKey(k.ProductID, string(k.Reviewer))
}

// encodeKey joins components as a JSON array, which keeps the encoding
// unambiguous whatever characters the components contain.
func encodeKey(parts ...string) string {
	b, _ := json.Marshal(parts)
	return string(b)
}
