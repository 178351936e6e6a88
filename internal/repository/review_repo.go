package repository

import (
	"context"

	"github.com/GTDGit/paydii_api/internal/models"
)

// ReviewRepository keeps the product → reviews and reviewer → reviews
// indices and the tracking map that guards one review per pair.
type ReviewRepository struct {
	byProduct  Index[models.Review]
	byReviewer Index[models.Review]
	tracking   Table[bool]
}

// NewReviewRepository creates a new ReviewRepository.
func NewReviewRepository(store Store) *ReviewRepository {
	return &ReviewRepository{
		byProduct:  NewIndex[models.Review](store, MapReviews),
		byReviewer: NewIndex[models.Review](store, MapMyReviews),
		tracking:   NewTable[bool](store, MapReviewTracking),
	}
}

// HasReviewed reports whether the tracking map holds true for key.
func (r *ReviewRepository) HasReviewed(ctx context.Context, key models.ReviewTrackingKey) (bool, error) {
	done, _, err := r.tracking.Get(ctx, key.StorageKey())
	return done, err
}

// ListByProduct returns the reviews of productID in submission order.
func (r *ReviewRepository) ListByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	reviews, _, err := r.byProduct.List(ctx, productID)
	return reviews, err
}

// ListByReviewer returns the reviews written by reviewer in submission order.
func (r *ReviewRepository) ListByReviewer(ctx context.Context, reviewer models.AccountID) ([]models.Review, error) {
	reviews, _, err := r.byReviewer.List(ctx, string(reviewer))
	return reviews, err
}

// Add stages the review in both indices and marks the pair as reviewed.
func (r *ReviewRepository) Add(ctx context.Context, b *Batch, review *models.Review) error {
	if err := r.byProduct.AppendOrCreate(ctx, b, review.ProductID, *review); err != nil {
		return err
	}
	if err := r.byReviewer.AppendOrCreate(ctx, b, string(review.Reviewer), *review); err != nil {
		return err
	}
	key := models.NewReviewTrackingKey(review.ProductID, review.Reviewer)
	return r.tracking.Put(b, key.StorageKey(), true)
}
