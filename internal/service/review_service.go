package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/paydii_api/internal/models"
	"github.com/GTDGit/paydii_api/internal/repository"
	"github.com/GTDGit/paydii_api/internal/sse"
	"github.com/GTDGit/paydii_api/internal/utils"
)

// Default star bounds.
const (
	DefaultMinStar uint64 = 1
	DefaultMaxStar uint64 = 5
)

// ReviewService is the review registry. Each reviewer may review a product
// once and never their own product.
type ReviewService struct {
	store      repository.Store
	products   ProductReader
	reviewRepo *repository.ReviewRepository
	seq        *Sequencer
	notifier   sse.MarketNotifier
	minStar    uint64
	maxStar    uint64
	nowFn      func() time.Time
}

// NewReviewService constructs a ReviewService accepting stars in [DefaultMinStar, DefaultMaxStar].
func NewReviewService(
	store repository.Store,
	products ProductReader,
	reviewRepo *repository.ReviewRepository,
	seq *Sequencer,
	notifier sse.MarketNotifier,
) *ReviewService {
	if notifier == nil {
		notifier = sse.NopNotifier{}
	}
	return &ReviewService{
		store:      store,
		products:   products,
		reviewRepo: reviewRepo,
		seq:        seq,
		notifier:   notifier,
		minStar:    DefaultMinStar,
		maxStar:    DefaultMaxStar,
		nowFn:      time.Now,
	}
}

// SetStarRange overrides the accepted star bounds.
func (s *ReviewService) SetStarRange(min, max uint64) {
	s.minStar, s.maxStar = min, max
}

// SetNowFunc overrides the time source used for review timestamps.
func (s *ReviewService) SetNowFunc(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	s.nowFn = now
}

// AddReview records caller's review of a product. The review is appended to
// the product's and the reviewer's indices and the pair is marked reviewed,
// all in one commit.
func (s *ReviewService) AddReview(ctx context.Context, caller models.AccountID, in *models.ReviewInput) (bool, error) {
	if err := requireCaller(caller); err != nil {
		return false, err
	}
	if in.Star < s.minStar || in.Star > s.maxStar {
		return false, utils.NewError(utils.KindInvalidArgument, "star must be between %d and %d", s.minStar, s.maxStar)
	}

	var review *models.Review
	err := s.seq.Do(ctx, func(ctx context.Context) error {
		product, err := loadProduct(ctx, s.products, in.ProductID)
		if err != nil {
			return err
		}
		if product.Seller == caller {
			return utils.NewError(utils.KindSelfDealing, "you can't review your own product")
		}

		key := models.NewReviewTrackingKey(product.ID, caller)
		done, err := s.reviewRepo.HasReviewed(ctx, key)
		if err != nil {
			return fmt.Errorf("lookup review tracking: %w", err)
		}
		if done {
			return utils.NewError(utils.KindAlreadyReviewed, "you have already reviewed product %s", product.ID)
		}

		review = &models.Review{
			ProductID: product.ID,
			Reviewer:  caller,
			Content:   in.Content,
			Star:      in.Star,
			CreatedAt: s.nowFn().UTC(),
		}
		b := repository.NewBatch(s.store)
		if err := s.reviewRepo.Add(ctx, b, review); err != nil {
			return fmt.Errorf("stage review: %w", err)
		}
		if err := b.Commit(ctx); err != nil {
			return fmt.Errorf("commit review: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	log.Info().
		Str("product_id", review.ProductID).
		Str("reviewer", caller.String()).
		Uint64("star", review.Star).
		Msg("review added")
	s.notifier.NotifyReviewAdded(review)
	return true, nil
}

// GetReviews returns the reviews of productID, or nil.
func (s *ReviewService) GetReviews(ctx context.Context, productID string) ([]models.Review, error) {
	return s.reviewRepo.ListByProduct(ctx, productID)
}

// GetMyReviews returns the reviews written by reviewer, or nil.
func (s *ReviewService) GetMyReviews(ctx context.Context, reviewer models.AccountID) ([]models.Review, error) {
	return s.reviewRepo.ListByReviewer(ctx, reviewer)
}
