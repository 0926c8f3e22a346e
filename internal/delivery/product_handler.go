package delivery

import (
	"net/http"

	"github.com/Nhlapo2003/wings-Application/internal/domain"
	"github.com/Nhlapo2003/wings-Application/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type ProductHandler struct {
	useCase usecase.ProductUseCase
	log     *logrus.Logger
}

func NewProductHandler(uc usecase.ProductUseCase, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		useCase: uc,
		log:     logger,
	}
}

// Routes products by name where the wire contract says so; the cart
// engine on the terminal side keys on id regardless.
func (h *ProductHandler) RegisterRoutes(router gin.IRouter) {
	products := router.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.POST("", h.CreateProduct)
		products.PUT("/sell/:name", h.SellOne)
		products.PUT("/:name", h.UpdateProduct)
		products.DELETE("/:name", h.DeleteProduct)
	}
}

// productRequest tolerates string-typed price and stock; the legacy
// front end sent both depending on the form.
type productRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       flexInt         `json:"stock"`
}

func (req *productRequest) toDomain() *domain.Product {
	return &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       int(req.Stock),
	}
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.useCase.ListProducts()
	if err != nil {
		h.log.Errorf("Failed to list products: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve products: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for create product: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	createdProduct, err := h.useCase.CreateProduct(req.toDomain())
	if err != nil {
		h.log.Errorf("Failed to create product '%s': %v", req.Name, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to create product: "+err.Error())
		return
	}

	h.log.Infof("Product created successfully: ID %d, Name %s", createdProduct.ID, createdProduct.Name)
	c.JSON(http.StatusCreated, createdProduct)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	name := c.Param("name")

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for update product '%s': %v", name, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	updatedProduct, err := h.useCase.UpdateProduct(name, req.toDomain())
	if err != nil {
		h.log.Warnf("Failed to update product '%s': %v", name, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to update product: "+err.Error())
		return
	}

	h.log.Infof("Product updated successfully: ID %d", updatedProduct.ID)
	c.JSON(http.StatusOK, updatedProduct)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	name := c.Param("name")

	err := h.useCase.DeleteProduct(name)
	if err != nil {
		h.log.Warnf("Failed to delete product '%s': %v", name, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to delete product: "+err.Error())
		return
	}

	h.log.Infof("Product deleted successfully: %s", name)
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

func (h *ProductHandler) SellOne(c *gin.Context) {
	name := c.Param("name")

	product, err := h.useCase.SellOne(name)
	if err != nil {
		h.log.Warnf("Failed to sell one unit of '%s': %v", name, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to sell product: "+err.Error())
		return
	}

	h.log.Infof("Sold one unit of '%s' (remaining stock: %d)", product.Name, product.Stock)
	c.JSON(http.StatusOK, product)
}
