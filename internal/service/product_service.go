package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/paydii_api/internal/models"
	"github.com/GTDGit/paydii_api/internal/repository"
	"github.com/GTDGit/paydii_api/internal/sse"
	"github.com/GTDGit/paydii_api/internal/utils"
)

// ProductReader is the read contract other registries depend on.
type ProductReader interface {
	GetProduct(ctx context.Context, id string) (*models.Product, error)
}

// ProductService is the product registry: listings, the global product list
// and the seller → product ids index.
type ProductService struct {
	store       repository.Store
	productRepo *repository.ProductRepository
	seq         *Sequencer
	notifier    sse.MarketNotifier
}

// NewProductService constructs a ProductService.
func NewProductService(store repository.Store, productRepo *repository.ProductRepository, seq *Sequencer, notifier sse.MarketNotifier) *ProductService {
	if notifier == nil {
		notifier = sse.NopNotifier{}
	}
	return &ProductService{store: store, productRepo: productRepo, seq: seq, notifier: notifier}
}

// CreateProduct lists a new product owned by caller.
func (s *ProductService) CreateProduct(ctx context.Context, caller models.AccountID, in *models.ProductInput) (*models.Product, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.ID) == "" {
		return nil, utils.NewError(utils.KindInvalidArgument, "product id required")
	}

	product := &models.Product{
		ID:          in.ID,
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		Image:       in.Image,
		IsActive:    in.Active(),
		Seller:      caller,
	}

	err := s.seq.Do(ctx, func(ctx context.Context) error {
		exists, err := s.productRepo.Exists(ctx, product.ID)
		if err != nil {
			return fmt.Errorf("lookup product: %w", err)
		}
		if exists {
			return utils.NewError(utils.KindAlreadyExists, "product %s already exists", product.ID)
		}

		b := repository.NewBatch(s.store)
		if err := s.productRepo.Create(ctx, b, product); err != nil {
			return fmt.Errorf("stage product: %w", err)
		}
		if err := b.Commit(ctx); err != nil {
			return fmt.Errorf("commit product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("product_id", product.ID).
		Str("seller", caller.String()).
		Str("price", product.Price.String()).
		Msg("product created")
	s.notifier.NotifyProductListed(product)
	return product, nil
}

// UpdateProduct replaces every mutable field of a product owned by caller.
// The id and seller are carried over.
func (s *ProductService) UpdateProduct(ctx context.Context, caller models.AccountID, in *models.ProductInput) (*models.Product, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	var updated *models.Product
	err := s.seq.Do(ctx, func(ctx context.Context) error {
		current, err := s.loadProduct(ctx, in.ID)
		if err != nil {
			return err
		}
		if current.Seller != caller {
			return utils.NewError(utils.KindUnauthorized, "you are not the owner of product %s", current.ID)
		}

		updated = &models.Product{
			ID:          current.ID,
			Name:        in.Name,
			Price:       in.Price,
			Description: in.Description,
			Image:       in.Image,
			IsActive:    in.Active(),
			Seller:      current.Seller,
		}
		b := repository.NewBatch(s.store)
		if err := s.productRepo.Update(b, updated); err != nil {
			return fmt.Errorf("stage product: %w", err)
		}
		if err := b.Commit(ctx); err != nil {
			return fmt.Errorf("commit product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("product_id", updated.ID).
		Bool("is_active", updated.IsActive).
		Msg("product updated")
	s.notifier.NotifyProductUpdated(updated)
	return updated, nil
}

// GetProduct returns the product or nil when it does not exist.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	p, err := s.productRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return p, err
}

// GetSellerProducts returns the ids listed by seller, or nil if none.
func (s *ProductService) GetSellerProducts(ctx context.Context, seller models.AccountID) ([]string, error) {
	return s.productRepo.ListBySeller(ctx, seller)
}

// GetAllProducts returns every product id in creation order.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]string, error) {
	ids, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (s *ProductService) loadProduct(ctx context.Context, id string) (*models.Product, error) {
	return loadProduct(ctx, s, id)
}

// loadProduct resolves id through r and converts absence into a NotFound error.
func loadProduct(ctx context.Context, r ProductReader, id string) (*models.Product, error) {
	p, err := r.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup product: %w", err)
	}
	if p == nil {
		return nil, utils.NewError(utils.KindNotFound, "can't find the product with id %s", id)
	}
	return p, nil
}

func requireCaller(caller models.AccountID) error {
	if caller.IsZero() {
		return utils.NewError(utils.KindUnauthorized, "caller identity required")
	}
	return nil
}
