package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/paydii_api/internal/middleware"
	"github.com/GTDGit/paydii_api/internal/models"
	"github.com/GTDGit/paydii_api/internal/service"
	"github.com/GTDGit/paydii_api/internal/utils"
)

// ProductHandler handles product registry endpoints.
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ListProducts handles GET /v1/products.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	ids, err := h.productService.GetAllProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Success", ids)
}

// GetProduct handles GET /v1/products/:id.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	p, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if p == nil {
		utils.Error(c, http.StatusNotFound, string(utils.KindNotFound), "Product not found")
		return
	}
	utils.Success(c, http.StatusOK, "Success", p)
}

// GetSellerProducts handles GET /v1/sellers/:seller/products.
func (h *ProductHandler) GetSellerProducts(c *gin.Context) {
	ids, err := h.productService.GetSellerProducts(c.Request.Context(), models.AccountID(c.Param("seller")))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Success", ids)
}

// CreateProduct handles POST /v1/products.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req models.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	p, err := h.productService.CreateProduct(c.Request.Context(), middleware.GetAccountID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, "Product created", p)
}

// UpdateProduct handles PUT /v1/products/:id.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req models.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	req.ID = c.Param("id")

	p, err := h.productService.UpdateProduct(c.Request.Context(), middleware.GetAccountID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Product updated", p)
}
