package repository

import (
	"context"
	"errors"
)

// ErrNotFound is returned by repository lookups when the key is absent.
var ErrNotFound = errors.New("record not found")

// Map names one logical key-value map inside the store.
type Map string

const (
	MapProducts         Map = "products"
	MapProductList      Map = "product_list"
	MapProductsBySeller Map = "products_by_seller"
	MapBuyerAddresses   Map = "buyer_addresses"
	MapPurchasesByBuyer Map = "purchases_by_buyer"
	MapCoupons          Map = "coupons"
	MapCouponsBySeller  Map = "coupons_by_seller"
	MapReviews          Map = "reviews"
	MapMyReviews        Map = "my_reviews"
	MapReviewTracking   Map = "review_tracking"
	MapAccounts         Map = "accounts"
)

// Write is one staged insert into a named map.
type Write struct {
	Map   Map
	Key   string
	Value []byte
}

type sourceReadsKey struct{}

// WithSourceReads marks ctx so that a store fronted by a cache serves reads
// from its source of truth. Mutating operations stage against such a context.
func WithSourceReads(ctx context.Context) context.Context {
	return context.WithValue(ctx, sourceReadsKey{}, true)
}

// SourceReads reports whether ctx was marked by WithSourceReads.
func SourceReads(ctx context.Context) bool {
	v, _ := ctx.Value(sourceReadsKey{}).(bool)
	return v
}

// Store is the key-value substrate shared by every registry. Commit must
// apply all writes or none of them.
type Store interface {
	Get(ctx context.Context, m Map, key string) ([]byte, bool, error)
	Commit(ctx context.Context, writes []Write) error
	Close() error
}
