package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/paydii_api/internal/models"
	"github.com/GTDGit/paydii_api/internal/repository"
	"github.com/GTDGit/paydii_api/internal/utils"
)

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()
	m := newMarket(t)

	p := m.list(t, "alice", "p1", 100, true)
	assert.Equal(t, models.AccountID("alice"), p.Seller)
	assert.True(t, p.IsActive)

	got, err := m.products.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, p, got)

	all, err := m.products.GetAllProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, all)

	mine, err := m.products.GetSellerProducts(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, mine)

	assert.Equal(t, []string{"p1"}, m.notifier.listed)
}

func TestCreateProductDefaultsToActive(t *testing.T) {
	m := newMarket(t)
	p, err := m.products.CreateProduct(context.Background(), "alice", &models.ProductInput{ID: "p1", Name: "Mug", Price: models.NewAmount(3)})
	require.NoError(t, err)
	assert.True(t, p.IsActive)
}

func TestCreateProductDuplicate(t *testing.T) {
	ctx := context.Background()
	m := newMarket(t)
	m.list(t, "alice", "p1", 100, true)

	_, err := m.products.CreateProduct(ctx, "bob", &models.ProductInput{ID: "p1", Name: "Other", Price: models.NewAmount(1)})
	assert.ErrorIs(t, err, utils.ErrAlreadyExists)

	got, err := m.products.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, models.AccountID("alice"), got.Seller)

	all, _ := m.products.GetAllProducts(ctx)
	assert.Equal(t, []string{"p1"}, all)
	bob, _ := m.products.GetSellerProducts(ctx, "bob")
	assert.Nil(t, bob)
}

func TestCreateProductRejectsBadInput(t *testing.T) {
	m := newMarket(t)
	ctx := context.Background()

	_, err := m.products.CreateProduct(ctx, "", &models.ProductInput{ID: "p1"})
	assert.ErrorIs(t, err, utils.ErrUnauthorized)

	_, err = m.products.CreateProduct(ctx, "alice", &models.ProductInput{ID: "  "})
	assert.ErrorIs(t, err, utils.ErrInvalidArgument)

	assert.Equal(t, 0, m.store.Len(repository.MapProducts))
}

func TestCreateProductCommitFailureLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	m := newMarket(t)
	m.store.failing = true

	_, err := m.products.CreateProduct(ctx, "alice", &models.ProductInput{ID: "p1", Name: "Mug"})
	assert.Error(t, err)

	m.store.failing = false
	got, err := m.products.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 0, m.store.Len(repository.MapProductList))
	assert.Empty(t, m.notifier.listed)
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()
	m := newMarket(t)
	m.list(t, "alice", "p1", 100, true)

	inactive := false
	updated, err := m.products.UpdateProduct(ctx, "alice", &models.ProductInput{
		ID:          "p1",
		Name:        "Renamed",
		Price:       models.NewAmount(250),
		Description: "now with lid",
		Image:       "https://img/p1.png",
		IsActive:    &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", updated.ID)
	assert.Equal(t, models.AccountID("alice"), updated.Seller)

	got, err := m.products.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, "250", got.Price.String())
	assert.Equal(t, "now with lid", got.Description)
	assert.False(t, got.IsActive)

	all, _ := m.products.GetAllProducts(ctx)
	assert.Equal(t, []string{"p1"}, all)
	assert.Equal(t, []string{"p1"}, m.notifier.updated)
}

func TestUpdateProductErrors(t *testing.T) {
	ctx := context.Background()
	m := newMarket(t)
	m.list(t, "alice", "p1", 100, true)

	_, err := m.products.UpdateProduct(ctx, "bob", &models.ProductInput{ID: "p1", Name: "Stolen"})
	assert.ErrorIs(t, err, utils.ErrUnauthorized)

	_, err = m.products.UpdateProduct(ctx, "alice", &models.ProductInput{ID: "nope", Name: "x"})
	assert.ErrorIs(t, err, utils.ErrNotFound)

	got, _ := m.products.GetProduct(ctx, "p1")
	assert.Equal(t, "Product p1", got.Name)
}

func TestGetAllProductsEmpty(t *testing.T) {
	m := newMarket(t)
	all, err := m.products.GetAllProducts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestConcurrentCreateSameID(t *testing.T) {
	ctx := context.Background()
	m := newMarket(t)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.products.CreateProduct(ctx, "alice", &models.ProductInput{ID: "p1", Name: "Mug"})
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, success)
	all, _ := m.products.GetAllProducts(ctx)
	assert.Equal(t, []string{"p1"}, all)
}
