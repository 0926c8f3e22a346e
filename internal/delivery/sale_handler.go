package delivery

import (
	"net/http"
	"strconv"

	"github.com/Nhlapo2003/wings-Application/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type SaleHandler struct {
	useCase usecase.SaleUseCase
	log     *logrus.Logger
}

func NewSaleHandler(uc usecase.SaleUseCase, logger *logrus.Logger) *SaleHandler {
	return &SaleHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *SaleHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/sell", h.Sell)
	router.GET("/sales", h.ListSales)
}

type sellRequest struct {
	UserID    flexInt `json:"userId"`
	ProductID flexInt `json:"productId"`
	Quantity  flexInt `json:"quantity"`
}

// Sell answers in plain text; the cart screen displays the body as-is.
func (h *SaleHandler) Sell(c *gin.Context) {
	var req sellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for sell: %v", err)
		c.String(http.StatusBadRequest, "Invalid sale request: "+err.Error())
		return
	}

	sale, err := h.useCase.SellProduct(int(req.UserID), int(req.ProductID), int(req.Quantity))
	if err != nil {
		h.log.Warnf("Sale failed for product %d: %v", int(req.ProductID), err)
		c.String(mapErrorToStatus(err), "Sale failed: "+err.Error())
		return
	}

	h.log.Infof("Sale %d completed: product %d x%d", sale.ID, sale.ProductID, sale.Quantity)
	c.String(http.StatusOK, "Product sold successfully")
}

func (h *SaleHandler) ListSales(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "50")
	offsetStr := c.DefaultQuery("offset", "0")

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		h.log.Warnf("Invalid limit parameter '%s', using default 50", limitStr)
		limit = 50
	}
	offset, err := strconv.Atoi(offsetStr)
	if err != nil || offset < 0 {
		h.log.Warnf("Invalid offset parameter '%s', using default 0", offsetStr)
		offset = 0
	}

	sales, err := h.useCase.ListSales(limit, offset)
	if err != nil {
		h.log.Errorf("Failed to list sales: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve sales: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, sales)
}
