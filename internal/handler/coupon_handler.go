package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/paydii_api/internal/middleware"
	"github.com/GTDGit/paydii_api/internal/models"
	"github.com/GTDGit/paydii_api/internal/service"
	"github.com/GTDGit/paydii_api/internal/utils"
)

// CouponHandler handles coupon registry endpoints.
type CouponHandler struct {
	couponService *service.CouponService
}

// NewCouponHandler creates a new CouponHandler.
func NewCouponHandler(couponService *service.CouponService) *CouponHandler {
	return &CouponHandler{couponService: couponService}
}

// CreateCoupon handles POST /v1/products/:id/coupons.
func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var req models.CouponInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	req.ProductID = c.Param("id")

	coupon, err := h.couponService.CreateCoupon(c.Request.Context(), middleware.GetAccountID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, "Coupon created", coupon)
}

// UpdateCoupon handles PUT /v1/products/:id/coupons/:code.
func (h *CouponHandler) UpdateCoupon(c *gin.Context) {
	var req models.CouponInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	req.ProductID = c.Param("id")
	req.Code = c.Param("code")

	coupon, err := h.couponService.UpdateCoupon(c.Request.Context(), middleware.GetAccountID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Coupon updated", coupon)
}

// GetCoupon handles GET /v1/products/:id/coupons/:code?seller=.
func (h *CouponHandler) GetCoupon(c *gin.Context) {
	seller := c.Query("seller")
	if seller == "" {
		badRequest(c, "seller query parameter is required")
		return
	}

	coupon, err := h.couponService.GetCoupon(c.Request.Context(), c.Param("id"), c.Param("code"), models.AccountID(seller))
	if err != nil {
		respondError(c, err)
		return
	}
	if coupon == nil {
		utils.Error(c, http.StatusNotFound, string(utils.KindNotFound), "Coupon not found")
		return
	}
	utils.Success(c, http.StatusOK, "Success", coupon)
}

// GetSellerCoupons handles GET /v1/sellers/:seller/coupons.
func (h *CouponHandler) GetSellerCoupons(c *gin.Context) {
	keys, err := h.couponService.GetSellerCoupons(c.Request.Context(), models.AccountID(c.Param("seller")))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Success", keys)
}
