package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/paydii_api/internal/models"
	"github.com/GTDGit/paydii_api/internal/repository"
	"github.com/GTDGit/paydii_api/internal/sse"
	"github.com/GTDGit/paydii_api/internal/utils"
)

// commitAttempts bounds how often a purchase is committed after its transfer
// was accepted.
const commitAttempts = 3

// PurchaseService is the purchase ledger: it records buyers, keeps purchase
// receipts and authorizes the transfer of the product price to the seller.
type PurchaseService struct {
	store        repository.Store
	products     ProductReader
	purchaseRepo *repository.PurchaseRepository
	transferer   Transferer
	seq          *Sequencer
	notifier     sse.MarketNotifier
	nowFn        func() time.Time
	retryDelay   time.Duration
}

// NewPurchaseService constructs a PurchaseService.
func NewPurchaseService(
	store repository.Store,
	products ProductReader,
	purchaseRepo *repository.PurchaseRepository,
	transferer Transferer,
	seq *Sequencer,
	notifier sse.MarketNotifier,
) *PurchaseService {
	if notifier == nil {
		notifier = sse.NopNotifier{}
	}
	return &PurchaseService{
		store:        store,
		products:     products,
		purchaseRepo: purchaseRepo,
		transferer:   transferer,
		seq:          seq,
		notifier:     notifier,
		nowFn:        time.Now,
		retryDelay:   100 * time.Millisecond,
	}
}

// SetNowFunc overrides the time source used for receipts.
func (s *PurchaseService) SetNowFunc(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	s.nowFn = now
}

// BuyProduct records caller as a buyer of productID and requests exactly one
// transfer of the product price from caller to the seller. Nothing is
// written unless the transfer is accepted.
func (s *PurchaseService) BuyProduct(ctx context.Context, caller models.AccountID, productID string) (bool, error) {
	if err := requireCaller(caller); err != nil {
		return false, err
	}

	var info *models.PurchaseInfo
	err := s.seq.Do(ctx, func(ctx context.Context) error {
		product, err := loadProduct(ctx, s.products, productID)
		if err != nil {
			return err
		}
		if product.Seller == caller {
			return utils.NewError(utils.KindSelfDealing, "you can't buy your own product")
		}
		if !product.IsActive {
			return utils.NewError(utils.KindInactive, "product %s is inactive", product.ID)
		}

		info = &models.PurchaseInfo{
			ID:          uuid.NewString(),
			ProductID:   product.ID,
			Buyer:       caller,
			Seller:      product.Seller,
			Amount:      product.Price,
			PurchasedAt: s.nowFn().UTC(),
		}
		b := repository.NewBatch(s.store)
		if err := s.purchaseRepo.Record(ctx, b, info); err != nil {
			return fmt.Errorf("stage purchase: %w", err)
		}

		req := &TransferRequest{
			Reference: info.ID,
			From:      caller,
			To:        product.Seller,
			Amount:    product.Price,
		}
		if err := s.transferer.Transfer(ctx, req); err != nil {
			return utils.WrapError(utils.KindTransferFailed, err, "transfer of %s to %s failed", product.Price, product.Seller)
		}

		if err := s.commitAccepted(ctx, b, info.ID); err != nil {
			log.Error().
				Err(err).
				Str("reference", info.ID).
				Str("product_id", info.ProductID).
				Str("buyer", caller.String()).
				Msg("purchase not recorded after accepted transfer")
			return fmt.Errorf("commit purchase: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	log.Info().
		Str("reference", info.ID).
		Str("product_id", info.ProductID).
		Str("buyer", caller.String()).
		Str("amount", info.Amount.String()).
		Msg("product purchased")
	s.notifier.NotifyPurchase(info)
	return true, nil
}

// commitAccepted commits the purchase of a transfer the gateway has already
// accepted. The commit is retried and ignores cancellation of ctx.
func (s *PurchaseService) commitAccepted(ctx context.Context, b *repository.Batch, reference string) error {
	ctx = context.WithoutCancel(ctx)
	var err error
	for attempt := 1; attempt <= commitAttempts; attempt++ {
		if err = b.Commit(ctx); err == nil {
			return nil
		}
		if attempt < commitAttempts {
			log.Warn().Err(err).Str("reference", reference).Int("attempt", attempt).Msg("purchase commit failed, retrying")
			time.Sleep(s.retryDelay * time.Duration(attempt))
		}
	}
	return err
}

// GetBuyers returns every buyer of productID, repeats included, or nil.
func (s *PurchaseService) GetBuyers(ctx context.Context, productID string) ([]models.AccountID, error) {
	return s.purchaseRepo.GetBuyers(ctx, productID)
}

// GetPurchases returns the receipts of buyer, or nil.
func (s *PurchaseService) GetPurchases(ctx context.Context, buyer models.AccountID) ([]models.PurchaseInfo, error) {
	return s.purchaseRepo.GetPurchases(ctx, buyer)
}
