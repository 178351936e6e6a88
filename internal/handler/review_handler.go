package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/paydii_api/internal/middleware"
	"github.com/GTDGit/paydii_api/internal/models"
	"github.com/GTDGit/paydii_api/internal/service"
	"github.com/GTDGit/paydii_api/internal/utils"
)

// ReviewHandler handles review registry endpoints.
type ReviewHandler struct {
	reviewService *service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// AddReview handles POST /v1/products/:id/reviews.
func (h *ReviewHandler) AddReview(c *gin.Context) {
	var req models.ReviewInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	req.ProductID = c.Param("id")

	ok, err := h.reviewService.AddReview(c.Request.Context(), middleware.GetAccountID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, "Review added", gin.H{"added": ok})
}

// GetReviews handles GET /v1/products/:id/reviews.
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	reviews, err := h.reviewService.GetReviews(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Success", reviews)
}

// GetReviewerReviews handles GET /v1/reviewers/:reviewer/reviews.
func (h *ReviewHandler) GetReviewerReviews(c *gin.Context) {
	reviews, err := h.reviewService.GetMyReviews(c.Request.Context(), models.AccountID(c.Param("reviewer")))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, "Success", reviews)
}
