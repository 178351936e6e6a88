package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/paydii_api/internal/models"
)

func TestProductRepositoryCreateStagesIndices(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	repo := NewProductRepository(s)

	b := NewBatch(s)
	for _, id := range []string{"p1", "p2"} {
		require.NoError(t, repo.Create(ctx, b, &models.Product{ID: id, Name: id, Price: models.NewAmount(10), IsActive: true, Seller: "alice"}))
	}
	require.NoError(t, repo.Create(ctx, b, &models.Product{ID: "p3", Seller: "bob"}))
	require.NoError(t, b.Commit(ctx))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2", "p3"}, all)

	alice, err := repo.ListBySeller(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, alice)

	none, err := repo.ListBySeller(ctx, "carol")
	require.NoError(t, err)
	assert.Nil(t, none)

	p, err := repo.GetByID(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, models.AccountID("alice"), p.Seller)
	assert.Equal(t, "10", p.Price.String())

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductRepositoryUpdateKeepsIndices(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	repo := NewProductRepository(s)

	b := NewBatch(s)
	require.NoError(t, repo.Create(ctx, b, &models.Product{ID: "p1", Name: "old", Seller: "alice"}))
	require.NoError(t, b.Commit(ctx))

	b = NewBatch(s)
	require.NoError(t, repo.Update(b, &models.Product{ID: "p1", Name: "new", Seller: "alice"}))
	assert.Equal(t, 1, b.Len())
	require.NoError(t, b.Commit(ctx))

	p, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "new", p.Name)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, all)
}

func TestPurchaseRepositoryRecord(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	repo := NewPurchaseRepository(s)

	b := NewBatch(s)
	info := &models.PurchaseInfo{ID: "r1", ProductID: "p1", Buyer: "bob", Seller: "alice", Amount: models.NewAmount(5)}
	require.NoError(t, repo.Record(ctx, b, info))
	require.NoError(t, b.Commit(ctx))

	buyers, err := repo.GetBuyers(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []models.AccountID{"bob"}, buyers)

	purchases, err := repo.GetPurchases(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, "r1", purchases[0].ID)
}

func TestCouponRepositoryKeysAreDistinct(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	repo := NewCouponRepository(s)

	k1 := models.NewCouponKey("p1", "SAVE", "alice")
	k2 := models.NewCouponKey("p2", "SAVE", "alice")

	b := NewBatch(s)
	require.NoError(t, repo.Create(ctx, b, &models.Coupon{Key: k1, DiscountAmount: models.NewAmount(1)}))
	require.NoError(t, repo.Create(ctx, b, &models.Coupon{Key: k2, DiscountAmount: models.NewAmount(2)}))
	require.NoError(t, b.Commit(ctx))

	c, err := repo.GetByKey(ctx, k2)
	require.NoError(t, err)
	assert.Equal(t, "2", c.DiscountAmount.String())

	_, err = repo.GetByKey(ctx, models.NewCouponKey("p1", "SAVE", "bob"))
	assert.ErrorIs(t, err, ErrNotFound)

	keys, err := repo.ListBySeller(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []models.CouponKey{k1, k2}, keys)
}

func TestReviewRepositoryAdd(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	repo := NewReviewRepository(s)
	key := models.NewReviewTrackingKey("p1", "bob")

	done, err := repo.HasReviewed(ctx, key)
	require.NoError(t, err)
	assert.False(t, done)

	b := NewBatch(s)
	require.NoError(t, repo.Add(ctx, b, &models.Review{ProductID: "p1", Reviewer: "bob", Star: 4, CreatedAt: time.Unix(0, 0).UTC()}))
	assert.Equal(t, 3, b.Len())
	require.NoError(t, b.Commit(ctx))

	done, err = repo.HasReviewed(ctx, key)
	require.NoError(t, err)
	assert.True(t, done)

	byProduct, err := repo.ListByProduct(ctx, "p1")
	require.NoError(t, err)
	byReviewer, err := repo.ListByReviewer(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, byProduct, 1)
	require.Len(t, byReviewer, 1)
	assert.Equal(t, uint64(4), byProduct[0].Star)
}
