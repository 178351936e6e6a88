package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/paydii_api/internal/models"
	"github.com/GTDGit/paydii_api/internal/repository"
	"github.com/GTDGit/paydii_api/internal/utils"
	"github.com/GTDGit/paydii_api/pkg/payment"
)

func gatewayServer(t *testing.T, status string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req payment.TransferRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		_ = json.NewEncoder(w).Encode(payment.TransferResponseWrapper{Data: payment.TransferResponse{
			TransferID: "gw-1",
			Reference:  req.Reference,
			Status:     status,
			Message:    "done",
		}})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPaymentTransferer(t *testing.T) {
	req := &TransferRequest{Reference: "r1", From: "bob", To: "alice", Amount: models.NewAmount(100)}

	ok := NewPaymentTransferer(payment.NewClient(gatewayServer(t, payment.StatusSuccess).URL, "m", "s", time.Second))
	assert.NoError(t, ok.Transfer(context.Background(), req))

	rejected := NewPaymentTransferer(payment.NewClient(gatewayServer(t, payment.StatusFailed).URL, "m", "s", time.Second))
	assert.Error(t, rejected.Transfer(context.Background(), req))
}

func TestBuyProductThroughGatewayRejection(t *testing.T) {
	ctx := context.Background()
	m := newMarket(t)
	m.list(t, "alice", "p1", 100, true)

	gw := NewPaymentTransferer(payment.NewClient(gatewayServer(t, payment.StatusFailed).URL, "m", "s", time.Second))
	purchases := NewPurchaseService(m.store, m.products, m.purchaseRepo, gw, m.seq, nil)

	_, err := purchases.BuyProduct(ctx, "bob", "p1")
	assert.ErrorIs(t, err, utils.ErrTransferFailed)

	buyers, err := purchases.GetBuyers(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, buyers)
}

func TestDryRunTransfererAccepts(t *testing.T) {
	err := NewDryRunTransferer().Transfer(context.Background(), &TransferRequest{Reference: "r1", Amount: models.NewAmount(1)})
	assert.NoError(t, err)
}

func TestSequencerHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := NewSequencer().Do(ctx, func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestSequencerReadsFromSource(t *testing.T) {
	assert.False(t, repository.SourceReads(context.Background()))

	var source bool
	err := NewSequencer().Do(context.Background(), func(ctx context.Context) error {
		source = repository.SourceReads(ctx)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, source)
}
