package delivery

import (
	"net/http"
	"strconv"

	"github.com/Nhlapo2003/wings-Application/internal/domain"
	"github.com/Nhlapo2003/wings-Application/internal/pos/client"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ProxyHandler is the management pass-through: the product and user
// screens map 1:1 onto backend REST calls with no business logic
// beyond request construction.
type ProxyHandler struct {
	backend client.Backend
	log     *logrus.Logger
}

func NewProxyHandler(backend client.Backend, logger *logrus.Logger) *ProxyHandler {
	return &ProxyHandler{
		backend: backend,
		log:     logger,
	}
}

func (h *ProxyHandler) RegisterRoutes(router gin.IRouter) {
	products := router.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.POST("", h.CreateProduct)
		products.PUT("/sell/:name", h.SellOne)
		products.PUT("/:name", h.UpdateProduct)
		products.DELETE("/:name", h.DeleteProduct)
	}
	users := router.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.POST("", h.CreateUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
	}
}

func (h *ProxyHandler) ListProducts(c *gin.Context) {
	products, err := h.backend.ListProducts(c.Request.Context())
	if err != nil {
		h.log.Warnf("Proxy: list products failed: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve products: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProxyHandler) CreateProduct(c *gin.Context) {
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		h.log.Warnf("Proxy: failed to bind create product request: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	created, err := h.backend.CreateProduct(c.Request.Context(), &product)
	if err != nil {
		h.log.Warnf("Proxy: create product failed: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to create product: "+err.Error())
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ProxyHandler) UpdateProduct(c *gin.Context) {
	name := c.Param("name")

	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		h.log.Warnf("Proxy: failed to bind update product request: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	updated, err := h.backend.UpdateProduct(c.Request.Context(), name, &product)
	if err != nil {
		h.log.Warnf("Proxy: update product '%s' failed: %v", name, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to update product: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ProxyHandler) DeleteProduct(c *gin.Context) {
	name := c.Param("name")

	if err := h.backend.DeleteProduct(c.Request.Context(), name); err != nil {
		h.log.Warnf("Proxy: delete product '%s' failed: %v", name, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to delete product: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

func (h *ProxyHandler) SellOne(c *gin.Context) {
	name := c.Param("name")

	product, err := h.backend.SellOne(c.Request.Context(), name)
	if err != nil {
		h.log.Warnf("Proxy: sell one '%s' failed: %v", name, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to sell product: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, product)
}

type userForm struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *ProxyHandler) ListUsers(c *gin.Context) {
	users, err := h.backend.ListUsers(c.Request.Context())
	if err != nil {
		h.log.Warnf("Proxy: list users failed: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve users: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *ProxyHandler) CreateUser(c *gin.Context) {
	var form userForm
	if err := c.ShouldBindJSON(&form); err != nil {
		h.log.Warnf("Proxy: failed to bind create user request: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	created, err := h.backend.CreateUser(c.Request.Context(), form.Name, form.Email, form.Password)
	if err != nil {
		h.log.Warnf("Proxy: create user failed: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to create user: "+err.Error())
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ProxyHandler) UpdateUser(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		h.log.Warnf("Proxy: invalid user ID parameter: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var form userForm
	if err := c.ShouldBindJSON(&form); err != nil {
		h.log.Warnf("Proxy: failed to bind update user request: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	updated, err := h.backend.UpdateUser(c.Request.Context(), id, form.Name, form.Email, form.Password)
	if err != nil {
		h.log.Warnf("Proxy: update user %d failed: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to update user: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ProxyHandler) DeleteUser(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		h.log.Warnf("Proxy: invalid user ID parameter: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	if err := h.backend.DeleteUser(c.Request.Context(), id); err != nil {
		h.log.Warnf("Proxy: delete user %d failed: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to delete user: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
