package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/GTDGit/paydii_api/internal/models"
	"github.com/GTDGit/paydii_api/internal/repository"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type recordingTransferer struct {
	mu       sync.Mutex
	requests []TransferRequest
	err      error
}

func (r *recordingTransferer) Transfer(_ context.Context, req *TransferRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.requests = append(r.requests, *req)
	return nil
}

func (r *recordingTransferer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

type recordingNotifier struct {
	mu        sync.Mutex
	listed    []string
	updated   []string
	purchases []string
	reviews   []string
}

func (n *recordingNotifier) NotifyProductListed(p *models.Product) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listed = append(n.listed, p.ID)
}

func (n *recordingNotifier) NotifyProductUpdated(p *models.Product) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.updated = append(n.updated, p.ID)
}

func (n *recordingNotifier) NotifyPurchase(info *models.PurchaseInfo) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.purchases = append(n.purchases, info.ProductID)
}

func (n *recordingNotifier) NotifyReviewAdded(r *models.Review) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reviews = append(n.reviews, r.ProductID)
}

// flakyStore refuses commits while failing is set, and refuses the next
// failNext commits.
type flakyStore struct {
	*repository.MemoryStore
	failing  bool
	failNext int
}

func (s *flakyStore) Commit(ctx context.Context, writes []repository.Write) error {
	if s.failing {
		return context.DeadlineExceeded
	}
	if s.failNext > 0 {
		s.failNext--
		return context.DeadlineExceeded
	}
	return s.MemoryStore.Commit(ctx, writes)
}

type market struct {
	store      *flakyStore
	seq        *Sequencer
	transferer *recordingTransferer
	notifier   *recordingNotifier

	productRepo  *repository.ProductRepository
	purchaseRepo *repository.PurchaseRepository
	reviewRepo   *repository.ReviewRepository

	products  *ProductService
	purchases *PurchaseService
	coupons   *CouponService
	reviews   *ReviewService
}

func newMarket(t *testing.T) *market {
	t.Helper()

	m := &market{
		store:      &flakyStore{MemoryStore: repository.NewMemoryStore()},
		seq:        NewSequencer(),
		transferer: &recordingTransferer{},
		notifier:   &recordingNotifier{},
	}
	m.productRepo = repository.NewProductRepository(m.store)
	m.purchaseRepo = repository.NewPurchaseRepository(m.store)
	m.reviewRepo = repository.NewReviewRepository(m.store)

	m.products = NewProductService(m.store, m.productRepo, m.seq, m.notifier)
	m.purchases = NewPurchaseService(m.store, m.products, m.purchaseRepo, m.transferer, m.seq, m.notifier)
	m.purchases.SetNowFunc(func() time.Time { return fixedNow })
	m.purchases.retryDelay = 0
	m.coupons = NewCouponService(m.store, m.products, repository.NewCouponRepository(m.store), m.seq)
	m.reviews = NewReviewService(m.store, m.products, m.reviewRepo, m.seq, m.notifier)
	m.reviews.SetNowFunc(func() time.Time { return fixedNow })
	return m
}

func (m *market) list(t *testing.T, seller models.AccountID, id string, price uint64, active bool) *models.Product {
	t.Helper()
	p, err := m.products.CreateProduct(context.Background(), seller, &models.ProductInput{
		ID:       id,
		Name:     "Product " + id,
		Price:    models.NewAmount(price),
		IsActive: &active,
	})
	require.NoError(t, err)
	return p
}
