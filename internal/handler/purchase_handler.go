package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/paydii_api/internal/middleware"
	"github.com/GTDGit/paydii_api/internal/models"
	"github.com/GTDGit/paydii_api/internal/service"
	"github.com/GTDGit/paydii_api/internal/utils"
)

// PurchaseHandler handles purchase ledger endpoints.
type PurchaseHandler struct {
	purchaseService *service.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler.
func NewPurchaseHandler(purchaseService *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// BuyProduct handles POST /v1/products/:id/buy.
func (h *PurchaseHandler) BuyProduct(c *gin.Context) {
	ok, err := h.purchaseService.BuyProduct(c.Request.Context(), middleware.GetAccountID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Product purchased", gin.H{"purchased": ok})
}

// GetBuyers handles GET /v1/products/:id/buyers.
func (h *PurchaseHandler) GetBuyers(c *gin.Context) {
	buyers, err := h.purchaseService.GetBuyers(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Success", buyers)
}

// GetPurchases handles GET /v1/buyers/:buyer/purchases.
func (h *PurchaseHandler) GetPurchases(c *gin.Context) {
	purchases, err := h.purchaseService.GetPurchases(c.Request.Context(), models.AccountID(c.Param("buyer")))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Success", purchases)
}
