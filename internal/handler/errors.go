package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/paydii_api/internal/utils"
)

var kindStatus = map[utils.Kind]int{
	utils.KindNotFound:        http.StatusNotFound,
	utils.KindAlreadyExists:   http.StatusConflict,
	utils.KindUnauthorized:    http.StatusForbidden,
	utils.KindSelfDealing:     http.StatusForbidden,
	utils.KindInactive:        http.StatusConflict,
	utils.KindAlreadyReviewed: http.StatusConflict,
	utils.KindInvalidArgument: http.StatusBadRequest,
	utils.KindTransferFailed:  http.StatusBadGateway,
}

// respondError writes err using the status of its kind. Errors without a
// kind are logged and reported as internal errors.
func respondError(c *gin.Context, err error) {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		status, ok := kindStatus[appErr.Kind]
		if !ok {
			status = http.StatusInternalServerError
		}
		utils.Error(c, status, string(appErr.Kind), appErr.Message)
		return
	}

	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
}

func badRequest(c *gin.Context, message string) {
	utils.Error(c, http.StatusBadRequest, "INVALID_REQUEST", message)
}
