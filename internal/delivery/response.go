package delivery

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Nhlapo2003/wings-Application/internal/domain"
	"github.com/gin-gonic/gin"
)

type ErrorBody struct {
	Error string `json:"error"`
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorBody{Error: message})
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	}

	// Repository duplicate-key messages surface without a sentinel.
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "already exists") || strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint") {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
