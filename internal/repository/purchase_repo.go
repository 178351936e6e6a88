package repository

import (
	"context"

	"github.com/GTDGit/paydii_api/internal/models"
)

// PurchaseRepository keeps the product → buyers index and the buyer →
// receipts index.
type PurchaseRepository struct {
	buyers    Index[models.AccountID]
	purchases Index[models.PurchaseInfo]
}

// NewPurchaseRepository creates a new PurchaseRepository.
func NewPurchaseRepository(store Store) *PurchaseRepository {
	return &PurchaseRepository{
		buyers:    NewIndex[models.AccountID](store, MapBuyerAddresses),
		purchases: NewIndex[models.PurchaseInfo](store, MapPurchasesByBuyer),
	}
}

// GetBuyers returns every buyer of productID in purchase order, repeats included.
func (r *PurchaseRepository) GetBuyers(ctx context.Context, productID string) ([]models.AccountID, error) {
	buyers, _, err := r.buyers.List(ctx, productID)
	return buyers, err
}

// GetPurchases returns the receipts of buyer in purchase order.
func (r *PurchaseRepository) GetPurchases(ctx context.Context, buyer models.AccountID) ([]models.PurchaseInfo, error) {
	purchases, _, err := r.purchases.List(ctx, string(buyer))
	return purchases, err
}

// Record stages a purchase in both indices.
func (r *PurchaseRepository) Record(ctx context.Context, b *Batch, info *models.PurchaseInfo) error {
	if err := r.buyers.AppendOrCreate(ctx, b, info.ProductID, info.Buyer); err != nil {
		return err
	}
	return r.purchases.AppendOrCreate(ctx, b, string(info.Buyer), *info)
}
