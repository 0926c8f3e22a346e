package delivery

import (
	"errors"
	"net/http"

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
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrNotInCart):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientStock), errors.Is(err, domain.ErrStockConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrCatalogUnavailable), errors.Is(err, domain.ErrBackendUnavailable), errors.Is(err, domain.ErrServerStatus):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
