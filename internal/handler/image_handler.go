package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/paydii_api/internal/middleware"
	"github.com/GTDGit/paydii_api/internal/service"
	"github.com/GTDGit/paydii_api/internal/utils"
)

// ImageHandler accepts product image uploads.
type ImageHandler struct {
	imageService *service.ImageService
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(imageService *service.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

// Upload handles POST /v1/images (multipart field "image").
func (h *ImageHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		badRequest(c, "image file is required")
		return
	}
	if fh.Size > service.MaxImageSize {
		badRequest(c, "image is too large")
		return
	}

	f, err := fh.Open()
	if err != nil {
		badRequest(c, "cannot read image")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, service.MaxImageSize+1))
	if err != nil {
		badRequest(c, "cannot read image")
		return
	}

	url, err := h.imageService.Upload(c.Request.Context(), middleware.GetAccountID(c), data, fh.Header.Get("Content-Type"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, "Image uploaded", gin.H{"image": url})
}
