package delivery

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Nhlapo2003/wings-Application/internal/domain"
	"github.com/Nhlapo2003/wings-Application/internal/pos/client"
	"github.com/Nhlapo2003/wings-Application/internal/pos/engine"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const sessionHeader = "X-Session-ID"

// TerminalHandler exposes the engine's operations to whatever renders
// the terminal UI. It owns no business logic; every mutation goes
// through the session's engine.
type TerminalHandler struct {
	sessions *SessionManager
	backend  client.Backend
	log      *logrus.Logger
}

func NewTerminalHandler(sessions *SessionManager, backend client.Backend, logger *logrus.Logger) *TerminalHandler {
	return &TerminalHandler{
		sessions: sessions,
		backend:  backend,
		log:      logger,
	}
}

func (h *TerminalHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/sessions", h.OpenSession)

	authed := router.Group("/", h.RequireSession())
	{
		authed.DELETE("/sessions", h.CloseSession)
		authed.GET("/catalog", h.Catalog)
		authed.POST("/catalog/refresh", h.RefreshCatalog)
		authed.GET("/cart", h.GetCart)
		authed.POST("/cart/items", h.AddToCart)
		authed.DELETE("/cart/items/:productID", h.RemoveOneFromCart)
		authed.POST("/cart/commit", h.CommitSale)
	}
}

// RequireSession resolves the X-Session-ID header and stashes the
// session on the context.
func (h *TerminalHandler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(sessionHeader))
		if id == "" {
			h.log.Warn("Middleware: Session header is missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorBody{Error: sessionHeader + " header required"})
			return
		}
		session, ok := h.sessions.Get(id)
		if !ok {
			h.log.Warnf("Middleware: Unknown session id: %s", id)
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorBody{Error: "Unknown session"})
			return
		}
		c.Set("session", session)
		c.Next()
	}
}

func currentSession(c *gin.Context) *Session {
	return c.MustGet("session").(*Session)
}

type openSessionRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type openSessionResponse struct {
	SessionID string `json:"session_id"`
	Warning   string `json:"warning,omitempty"`
}

// OpenSession logs the operator in against the backend and, on the
// literal "Success" reply, starts a session with a freshly loaded
// catalog. A catalog failure still opens the session; the operator sees
// an empty catalog and a warning instead of an error page.
func (h *TerminalHandler) OpenSession(c *gin.Context) {
	var req openSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Failed to bind session request: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	body, err := h.backend.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.log.Errorf("Login call failed for '%s': %v", req.Email, err)
		ErrorResponse(c, mapErrorToStatus(err), "Login failed: "+err.Error())
		return
	}
	if body != "Success" {
		h.log.Warnf("Login rejected for '%s': %s", req.Email, body)
		ErrorResponse(c, http.StatusUnauthorized, "Login failed: "+body)
		return
	}

	session := h.sessions.Create()
	res := openSessionResponse{SessionID: session.ID}

	if err := session.Do(func(e *engine.Engine) error {
		return e.LoadCatalog(c.Request.Context())
	}); err != nil {
		h.log.Warnf("Catalog load failed for new session %s: %v", session.ID, err)
		res.Warning = "Error fetching products: " + err.Error()
	}

	c.JSON(http.StatusCreated, res)
}

func (h *TerminalHandler) CloseSession(c *gin.Context) {
	session := currentSession(c)
	h.sessions.Delete(session.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Session closed"})
}

func (h *TerminalHandler) Catalog(c *gin.Context) {
	session := currentSession(c)

	var products []domain.Product
	_ = session.Do(func(e *engine.Engine) error {
		products = e.Products()
		return nil
	})
	c.JSON(http.StatusOK, products)
}

func (h *TerminalHandler) RefreshCatalog(c *gin.Context) {
	session := currentSession(c)

	err := session.Do(func(e *engine.Engine) error {
		return e.Refresh(c.Request.Context())
	})
	if err != nil {
		h.log.Warnf("Catalog refresh failed for session %s: %v", session.ID, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to refresh catalog: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Catalog refreshed"})
}

func (h *TerminalHandler) GetCart(c *gin.Context) {
	session := currentSession(c)

	var cart domain.Cart
	_ = session.Do(func(e *engine.Engine) error {
		cart = e.Cart()
		return nil
	})
	c.JSON(http.StatusOK, cart)
}

type addToCartRequest struct {
	ProductID int `json:"product_id" binding:"required"`
	Quantity  int `json:"quantity" binding:"required"`
}

func (h *TerminalHandler) AddToCart(c *gin.Context) {
	session := currentSession(c)

	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Failed to bind add-to-cart request: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	var cart domain.Cart
	err := session.Do(func(e *engine.Engine) error {
		if err := e.AddToCart(req.ProductID, req.Quantity); err != nil {
			return err
		}
		cart = e.Cart()
		return nil
	})
	if err != nil {
		h.log.Warnf("Add to cart failed for session %s: %v", session.ID, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to add to cart: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *TerminalHandler) RemoveOneFromCart(c *gin.Context) {
	session := currentSession(c)

	idStr := c.Param("productID")
	productID, err := strconv.Atoi(idStr)
	if err != nil || productID <= 0 {
		h.log.Warnf("Invalid product ID parameter for cart removal: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var cart domain.Cart
	err = session.Do(func(e *engine.Engine) error {
		if err := e.RemoveOneFromCart(productID); err != nil {
			return err
		}
		cart = e.Cart()
		return nil
	})
	if err != nil {
		h.log.Warnf("Cart removal failed for session %s: %v", session.ID, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to remove from cart: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, cart)
}

type commitRequest struct {
	UserID int `json:"user_id" binding:"required"`
}

func (h *TerminalHandler) CommitSale(c *gin.Context) {
	session := currentSession(c)

	var req commitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Failed to bind commit request: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	var report *engine.CommitReport
	err := session.Do(func(e *engine.Engine) error {
		var commitErr error
		report, commitErr = e.CommitSale(c.Request.Context(), req.UserID)
		return commitErr
	})
	if err != nil {
		h.log.Warnf("Commit failed for session %s: %v", session.ID, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to commit sale: "+err.Error())
		return
	}

	status := http.StatusOK
	if report.Failed > 0 {
		// 207: some lines sold, some did not; the report says which.
		status = http.StatusMultiStatus
	}
	c.JSON(status, report)
}
