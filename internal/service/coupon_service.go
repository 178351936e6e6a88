package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/paydii_api/internal/models"
	"github.com/GTDGit/paydii_api/internal/repository"
	"github.com/GTDGit/paydii_api/internal/utils"
)

// CouponService is the coupon registry. A coupon is keyed by product, code
// and issuing seller; only the seller of the product may issue or change it.
type CouponService struct {
	store      repository.Store
	products   ProductReader
	couponRepo *repository.CouponRepository
	seq        *Sequencer
}

// NewCouponService constructs a CouponService.
func NewCouponService(store repository.Store, products ProductReader, couponRepo *repository.CouponRepository, seq *Sequencer) *CouponService {
	return &CouponService{store: store, products: products, couponRepo: couponRepo, seq: seq}
}

// CreateCoupon issues a new coupon for a product owned by caller.
func (s *CouponService) CreateCoupon(ctx context.Context, caller models.AccountID, in *models.CouponInput) (*models.Coupon, error) {
	if err := validateCouponInput(caller, in); err != nil {
		return nil, err
	}

	var coupon *models.Coupon
	err := s.seq.Do(ctx, func(ctx context.Context) error {
		key, err := s.authorize(ctx, caller, in)
		if err != nil {
			return err
		}
		exists, err := s.couponRepo.Exists(ctx, key)
		if err != nil {
			return fmt.Errorf("lookup coupon: %w", err)
		}
		if exists {
			return utils.NewError(utils.KindAlreadyExists, "coupon %s already exists for product %s", key.Code, key.ProductID)
		}

		coupon = &models.Coupon{Key: key, DiscountAmount: in.DiscountAmount, AllowedUses: in.AllowedUses}
		b := repository.NewBatch(s.store)
		if err := s.couponRepo.Create(ctx, b, coupon); err != nil {
			return fmt.Errorf("stage coupon: %w", err)
		}
		if err := b.Commit(ctx); err != nil {
			return fmt.Errorf("commit coupon: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("product_id", coupon.Key.ProductID).
		Str("code", coupon.Key.Code).
		Str("seller", caller.String()).
		Msg("coupon created")
	return coupon, nil
}

// UpdateCoupon replaces the discount and allowed uses of an existing coupon.
// The key is unchanged.
func (s *CouponService) UpdateCoupon(ctx context.Context, caller models.AccountID, in *models.CouponInput) (*models.Coupon, error) {
	if err := validateCouponInput(caller, in); err != nil {
		return nil, err
	}

	var coupon *models.Coupon
	err := s.seq.Do(ctx, func(ctx context.Context) error {
		key, err := s.authorize(ctx, caller, in)
		if err != nil {
			return err
		}
		exists, err := s.couponRepo.Exists(ctx, key)
		if err != nil {
			return fmt.Errorf("lookup coupon: %w", err)
		}
		if !exists {
			return utils.NewError(utils.KindNotFound, "coupon %s not found for product %s", key.Code, key.ProductID)
		}

		coupon = &models.Coupon{Key: key, DiscountAmount: in.DiscountAmount, AllowedUses: in.AllowedUses}
		b := repository.NewBatch(s.store)
		if err := s.couponRepo.Update(b, coupon); err != nil {
			return fmt.Errorf("stage coupon: %w", err)
		}
		if err := b.Commit(ctx); err != nil {
			return fmt.Errorf("commit coupon: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("product_id", coupon.Key.ProductID).
		Str("code", coupon.Key.Code).
		Msg("coupon updated")
	return coupon, nil
}

// GetCoupon returns the coupon for the exact key, or nil.
func (s *CouponService) GetCoupon(ctx context.Context, productID, code string, seller models.AccountID) (*models.Coupon, error) {
	c, err := s.couponRepo.GetByKey(ctx, models.NewCouponKey(productID, code, seller))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return c, err
}

// GetSellerCoupons returns every key issued by seller, or nil.
func (s *CouponService) GetSellerCoupons(ctx context.Context, seller models.AccountID) ([]models.CouponKey, error) {
	return s.couponRepo.ListBySeller(ctx, seller)
}

// authorize checks the product exists and belongs to caller, and returns the
// coupon key for this request.
func (s *CouponService) authorize(ctx context.Context, caller models.AccountID, in *models.CouponInput) (models.CouponKey, error) {
	product, err := loadProduct(ctx, s.products, in.ProductID)
	if err != nil {
		return models.CouponKey{}, err
	}
	if product.Seller != caller {
		return models.CouponKey{}, utils.NewError(utils.KindUnauthorized, "you are not the owner of product %s", product.ID)
	}
	return models.NewCouponKey(product.ID, in.Code, product.Seller), nil
}

func validateCouponInput(caller models.AccountID, in *models.CouponInput) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	if strings.TrimSpace(in.Code) == "" {
		return utils.NewError(utils.KindInvalidArgument, "coupon code required")
	}
	return nil
}
