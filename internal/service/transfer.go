package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/GTDGit/paydii_api/internal/models"
	"github.com/GTDGit/paydii_api/pkg/payment"
)

// TransferRequest asks the value-transfer capability to move Amount from
// buyer to seller. Reference is the purchase receipt id and is unique per request.
type TransferRequest struct {
	Reference string
	From      models.AccountID
	To        models.AccountID
	Amount    models.Amount
}

// Transferer moves funds between accounts. A nil error means the transfer
// was accepted; any error aborts the purchase.
type Transferer interface {
	Transfer(ctx context.Context, req *TransferRequest) error
}

// DryRunTransferer accepts every request and only logs it. It is used when
// no payments gateway is configured.
type DryRunTransferer struct{}

// NewDryRunTransferer constructs a DryRunTransferer.
func NewDryRunTransferer() *DryRunTransferer {
	return &DryRunTransferer{}
}

// Transfer logs the request.
func (DryRunTransferer) Transfer(_ context.Context, req *TransferRequest) error {
	log.Warn().
		Str("reference", req.Reference).
		Str("from", req.From.String()).
		Str("to", req.To.String()).
		Str("amount", req.Amount.String()).
		Msg("dry-run transfer accepted without moving funds")
	return nil
}

// PaymentTransferer adapts the payments gateway client to Transferer.
type PaymentTransferer struct {
	client *payment.Client
}

// NewPaymentTransferer constructs a PaymentTransferer.
func NewPaymentTransferer(client *payment.Client) *PaymentTransferer {
	return &PaymentTransferer{client: client}
}

// Transfer submits the request and requires the gateway to report success.
func (t *PaymentTransferer) Transfer(ctx context.Context, req *TransferRequest) error {
	resp, err := t.client.Transfer(ctx, &payment.TransferRequest{
		Reference: req.Reference,
		From:      req.From.String(),
		To:        req.To.String(),
		Amount:    req.Amount.String(),
	})
	if err != nil {
		return err
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("gateway rejected transfer %s: %s (%s)", req.Reference, resp.Status, resp.Message)
	}
	log.Info().
		Str("reference", req.Reference).
		Str("gateway_id", resp.TransferID).
		Msg("transfer accepted by gateway")
	return nil
}
