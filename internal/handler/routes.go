package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/GTDGit/paydii_api/internal/middleware"
)

// Handlers groups every HTTP handler mounted by SetupRoutes.
type Handlers struct {
	Health   *HealthHandler
	Auth     *AuthHandler
	Product  *ProductHandler
	Purchase *PurchaseHandler
	Coupon   *CouponHandler
	Review   *ReviewHandler
	Image    *ImageHandler
	SSE      *SSEHandler
}

// SetupRoutes mounts the public read routes and the bearer-protected
// mutating routes on router. Nil handlers are skipped.
func SetupRoutes(router *gin.Engine, h *Handlers, jwtMiddleware *middleware.JWTMiddleware) {
	v1 := router.Group("/v1")

	if h.Health != nil {
		v1.GET("/health", h.Health.GetHealth)
	}
	if h.SSE != nil {
		v1.GET("/events", h.SSE.Stream)
	}

	v1.POST("/auth/register", h.Auth.Register)
	v1.POST("/auth/login", h.Auth.Login)

	// Public reads
	v1.GET("/products", h.Product.ListProducts)
	v1.GET("/products/:id", h.Product.GetProduct)
	v1.GET("/sellers/:seller/products", h.Product.GetSellerProducts)
	v1.GET("/products/:id/buyers", h.Purchase.GetBuyers)
	v1.GET("/buyers/:buyer/purchases", h.Purchase.GetPurchases)
	v1.GET("/products/:id/coupons/:code", h.Coupon.GetCoupon)
	v1.GET("/sellers/:seller/coupons", h.Coupon.GetSellerCoupons)
	v1.GET("/products/:id/reviews", h.Review.GetReviews)
	v1.GET("/reviewers/:reviewer/reviews", h.Review.GetReviewerReviews)

	// Authenticated writes
	authed := v1.Group("")
	authed.Use(jwtMiddleware.Handle())
	{
		authed.POST("/products", h.Product.CreateProduct)
		authed.PUT("/products/:id", h.Product.UpdateProduct)
		authed.POST("/products/:id/buy", h.Purchase.BuyProduct)
		authed.POST("/products/:id/coupons", h.Coupon.CreateCoupon)
		authed.PUT("/products/:id/coupons/:code", h.Coupon.UpdateCoupon)
		authed.POST("/products/:id/reviews", h.Review.AddReview)
		if h.Image != nil {
			authed.POST("/images", h.Image.Upload)
		}
	}
}
