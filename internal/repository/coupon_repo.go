package repository

import (
	"context"

	"github.com/GTDGit/paydii_api/internal/models"
)

// CouponRepository handles data access for coupons and the seller → coupon
// keys index.
type CouponRepository struct {
	coupons  Table[models.Coupon]
	bySeller Index[models.CouponKey]
}

// NewCouponRepository creates a new CouponRepository.
func NewCouponRepository(store Store) *CouponRepository {
	return &CouponRepository{
		coupons:  NewTable[models.Coupon](store, MapCoupons),
		bySeller: NewIndex[models.CouponKey](store, MapCouponsBySeller),
	}
}

// GetByKey returns the coupon stored under key, or ErrNotFound.
func (r *CouponRepository) GetByKey(ctx context.Context, key models.CouponKey) (*models.Coupon, error) {
	c, ok, err := r.coupons.Get(ctx, key.StorageKey())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

// Exists reports whether key is taken.
func (r *CouponRepository) Exists(ctx context.Context, key models.CouponKey) (bool, error) {
	return r.coupons.Exists(ctx, key.StorageKey())
}

// ListBySeller returns the keys issued by seller in creation order.
func (r *CouponRepository) ListBySeller(ctx context.Context, seller models.AccountID) ([]models.CouponKey, error) {
	keys, _, err := r.bySeller.List(ctx, string(seller))
	return keys, err
}

// Create stages a new coupon and its seller index entry.
func (r *CouponRepository) Create(ctx context.Context, b *Batch, c *models.Coupon) error {
	if err := r.coupons.Put(b, c.Key.StorageKey(), *c); err != nil {
		return err
	}
	return r.bySeller.AppendOrCreate(ctx, b, string(c.Key.Seller), c.Key)
}

// Update stages the replacement of an existing coupon.
func (r *CouponRepository) Update(b *Batch, c *models.Coupon) error {
	return r.coupons.Put(b, c.Key.StorageKey(), *c)
}
