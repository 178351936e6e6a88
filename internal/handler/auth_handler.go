package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/paydii_api/internal/models"
	"github.com/GTDGit/paydii_api/internal/service"
	"github.com/GTDGit/paydii_api/internal/utils"
)

// AuthHandler handles account registration and login.
type AuthHandler struct {
	accountService *service.AccountService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accountService *service.AccountService) *AuthHandler {
	return &AuthHandler{accountService: accountService}
}

type credentials struct {
	AccountID string `json:"accountId" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// Register handles POST /v1/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	account, err := h.accountService.Register(c.Request.Context(), models.AccountID(req.AccountID), req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, http.StatusCreated, "Account registered", gin.H{
		"accountId": account.ID,
		"createdAt": account.CreatedAt,
	})
}

// Login handles POST /v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	token, err := h.accountService.Login(c.Request.Context(), models.AccountID(req.AccountID), req.Password)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidCredentials) {
			utils.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials")
			return
		}
		respondError(c, err)
		return
	}

	utils.Success(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
	})
}
