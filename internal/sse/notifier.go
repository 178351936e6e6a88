package sse

import (
	"time"

	"github.com/GTDGit/paydii_api/internal/models"
)

// MarketNotifier is the interface services use to emit marketplace events.
// It is called only after an operation has committed.
type MarketNotifier interface {
	NotifyProductListed(p *models.Product)
	NotifyProductUpdated(p *models.Product)
	NotifyPurchase(info *models.PurchaseInfo)
	NotifyReviewAdded(r *models.Review)
}

// HubNotifier implements MarketNotifier using the SSE Hub.
type HubNotifier struct {
	hub *Hub
}

// NewHubNotifier creates a notifier backed by the given Hub.
func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyProductListed(p *models.Product) {
	n.broadcast(EventProductListed, p.ID, p.Seller, p)
}

func (n *HubNotifier) NotifyProductUpdated(p *models.Product) {
	n.broadcast(EventProductUpdated, p.ID, p.Seller, p)
}

// NotifyPurchase announces the purchase without the amount paid.
func (n *HubNotifier) NotifyPurchase(info *models.PurchaseInfo) {
	n.broadcast(EventProductPurchased, info.ProductID, info.Buyer, nil)
}

func (n *HubNotifier) NotifyReviewAdded(r *models.Review) {
	n.broadcast(EventReviewAdded, r.ProductID, r.Reviewer, r)
}

func (n *HubNotifier) broadcast(event EventType, productID string, actor models.AccountID, data interface{}) {
	if n.hub.ClientCount() == 0 {
		return
	}
	n.hub.Broadcast(&MarketEvent{
		Event:     event,
		ProductID: productID,
		Actor:     string(actor),
		Data:      data,
		Timestamp: time.Now(),
	})
}

// NopNotifier is a no-op implementation for when SSE is not needed.
type NopNotifier struct{}

func (NopNotifier) NotifyProductListed(*models.Product)  {}
func (NopNotifier) NotifyProductUpdated(*models.Product) {}
func (NopNotifier) NotifyPurchase(*models.PurchaseInfo)  {}
func (NopNotifier) NotifyReviewAdded(*models.Review)     {}
