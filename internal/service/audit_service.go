package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/GTDGit/paydii_api/internal/models"
	"github.com/GTDGit/paydii_api/internal/repository"
)

// AuditIssue describes one broken cross-reference found by the auditor.
type AuditIssue struct {
	ProductID string `json:"productId"`
	Problem   string `json:"problem"`
}

// AuditReport summarizes an audit run.
type AuditReport struct {
	ProductsChecked int          `json:"productsChecked"`
	Issues          []AuditIssue `json:"issues"`
}

// OK reports whether no issues were found.
func (r *AuditReport) OK() bool { return len(r.Issues) == 0 }

// AuditService walks the registries and verifies the cross-references every
// committed operation is meant to maintain.
type AuditService struct {
	productRepo  *repository.ProductRepository
	purchaseRepo *repository.PurchaseRepository
	reviewRepo   *repository.ReviewRepository
	seq          *Sequencer
}

// NewAuditService constructs an AuditService over the registry repositories.
func NewAuditService(
	productRepo *repository.ProductRepository,
	purchaseRepo *repository.PurchaseRepository,
	reviewRepo *repository.ReviewRepository,
	seq *Sequencer,
) *AuditService {
	return &AuditService{productRepo: productRepo, purchaseRepo: purchaseRepo, reviewRepo: reviewRepo, seq: seq}
}

// Run checks, for every id in the global product list, that the product
// record exists, that it appears in its seller's index, that each buyer has a
// matching purchase, and that each review is tracked. The list is read once;
// each product is then checked under the sequencer so it sees a consistent
// state while other writes proceed between products.
func (s *AuditService) Run(ctx context.Context) (*AuditReport, error) {
	ids, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	report := &AuditReport{Issues: []AuditIssue{}}
	for _, id := range ids {
		err := s.seq.Do(ctx, func(ctx context.Context) error {
			report.ProductsChecked++
			return s.checkProduct(ctx, id, report)
		})
		if err != nil {
			return nil, err
		}
	}
	return report, nil
}

func (s *AuditService) checkProduct(ctx context.Context, id string, report *AuditReport) error {
	add := func(format string, args ...any) {
		report.Issues = append(report.Issues, AuditIssue{ProductID: id, Problem: fmt.Sprintf(format, args...)})
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		add("listed but has no record")
		return nil
	}
	if err != nil {
		return fmt.Errorf("get product %s: %w", id, err)
	}

	sellerIDs, err := s.productRepo.ListBySeller(ctx, product.Seller)
	if err != nil {
		return fmt.Errorf("list seller products: %w", err)
	}
	if !slices.Contains(sellerIDs, id) {
		add("missing from seller %s index", product.Seller)
	}

	buyers, err := s.purchaseRepo.GetBuyers(ctx, id)
	if err != nil {
		return fmt.Errorf("get buyers: %w", err)
	}
	for _, buyer := range buyers {
		if buyer == product.Seller {
			add("bought by its own seller")
		}
		purchases, err := s.purchaseRepo.GetPurchases(ctx, buyer)
		if err != nil {
			return fmt.Errorf("get purchases: %w", err)
		}
		if !slices.ContainsFunc(purchases, func(p models.PurchaseInfo) bool { return p.ProductID == id }) {
			add("buyer %s has no purchase record", buyer)
		}
	}

	reviews, err := s.reviewRepo.ListByProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("list reviews: %w", err)
	}
	for _, r := range reviews {
		if r.Reviewer == product.Seller {
			add("reviewed by its own seller")
		}
		tracked, err := s.reviewRepo.HasReviewed(ctx, models.NewReviewTrackingKey(id, r.Reviewer))
		if err != nil {
			return fmt.Errorf("lookup review tracking: %w", err)
		}
		if !tracked {
			add("review by %s is not tracked", r.Reviewer)
		}
	}
	return nil
}
