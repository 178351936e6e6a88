package repository

import (
	"context"

	"github.com/GTDGit/paydii_api/internal/models"
)

// productListKey is the single key holding the global ordered product list.
const productListKey = "all"

// ProductRepository handles data access for products, the global product
// list and the seller → product ids index.
type ProductRepository struct {
	products Table[models.Product]
	list     Index[string]
	bySeller Index[string]
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(store Store) *ProductRepository {
	return &ProductRepository{
		products: NewTable[models.Product](store, MapProducts),
		list:     NewIndex[string](store, MapProductList),
		bySeller: NewIndex[string](store, MapProductsBySeller),
	}
}

// GetByID returns a single product by id, or ErrNotFound.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	p, ok, err := r.products.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

// Exists reports whether a product with id has been created.
func (r *ProductRepository) Exists(ctx context.Context, id string) (bool, error) {
	return r.products.Exists(ctx, id)
}

// ListAll returns every product id in creation order.
func (r *ProductRepository) ListAll(ctx context.Context) ([]string, error) {
	ids, _, err := r.list.List(ctx, productListKey)
	return ids, err
}

// ListBySeller returns the ids created by seller; nil when the seller has none.
func (r *ProductRepository) ListBySeller(ctx context.Context, seller models.AccountID) ([]string, error) {
	ids, _, err := r.bySeller.List(ctx, string(seller))
	return ids, err
}

// Create stages a new product together with its seller index and global
// list entries.
func (r *ProductRepository) Create(ctx context.Context, b *Batch, p *models.Product) error {
	if err := r.products.Put(b, p.ID, *p); err != nil {
		return err
	}
	if err := r.bySeller.AppendOrCreate(ctx, b, string(p.Seller), p.ID); err != nil {
		return err
	}
	return r.list.AppendOrCreate(ctx, b, productListKey, p.ID)
}

// Update stages the replacement of an existing product record.
func (r *ProductRepository) Update(b *Batch, p *models.Product) error {
	return r.products.Put(b, p.ID, *p)
}
