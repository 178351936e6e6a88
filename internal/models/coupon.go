package models

// Coupon is a seller-issued discount for one product. AllowedUses of zero
// marks the coupon as exhausted; it is stored as issued and not decremented.
type Coupon struct {
	Key            CouponKey `json:"key"`
	DiscountAmount Amount    `json:"discountAmount"`
	AllowedUses    Amount    `json:"allowedUses"`
}

// CouponInput carries the caller-supplied fields for create and update. The
// seller component of the key is always the caller.
type CouponInput struct {
	ProductID      string `json:"productId"`
	Code           string `json:"code"`
	AllowedUses    Amount `json:"allowedUses"`
	DiscountAmount Amount `json:"discountAmount"`
}
