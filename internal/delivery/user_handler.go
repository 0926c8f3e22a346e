package delivery

import (
	"net/http"
	"strconv"

	"github.com/Nhlapo2003/wings-Application/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type UserHandler struct {
	useCase usecase.UserUseCase
	log     *logrus.Logger
}

func NewUserHandler(uc usecase.UserUseCase, logger *logrus.Logger) *UserHandler {
	return &UserHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *UserHandler) RegisterRoutes(router gin.IRouter) {
	users := router.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.POST("", h.CreateUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
	}
	router.POST("/login", h.Login)
	router.POST("/signup", h.Signup)
}

type userRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.useCase.ListUsers()
	if err != nil {
		h.log.Errorf("Failed to list users: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve users: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for create user: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	createdUser, err := h.useCase.CreateUser(req.Name, req.Email, req.Password)
	if err != nil {
		h.log.Errorf("Failed to create user '%s': %v", req.Email, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to create user: "+err.Error())
		return
	}

	h.log.Infof("User created successfully: ID %d", createdUser.ID)
	c.JSON(http.StatusCreated, createdUser)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		h.log.Warnf("Invalid user ID parameter for update: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for update user %d: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	updatedUser, err := h.useCase.UpdateUser(id, req.Name, req.Email, req.Password)
	if err != nil {
		h.log.Warnf("Failed to update user %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to update user: "+err.Error())
		return
	}

	h.log.Infof("User updated successfully: ID %d", updatedUser.ID)
	c.JSON(http.StatusOK, updatedUser)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		h.log.Warnf("Invalid user ID parameter for delete: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	err = h.useCase.DeleteUser(id)
	if err != nil {
		h.log.Warnf("Failed to delete user %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to delete user: "+err.Error())
		return
	}

	h.log.Infof("User deleted successfully: ID %d", id)
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// Login answers with the literal string "Success" on valid credentials.
// The front end compares against that exact body, so this stays a
// plain-text response.
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for login: %v", err)
		c.String(http.StatusBadRequest, "Invalid login request")
		return
	}

	result, err := h.useCase.AuthenticateUser(req.Email, req.Password)
	if err != nil {
		h.log.Errorf("Authentication error for '%s': %v", req.Email, err)
		c.String(http.StatusInternalServerError, "Login failed: internal error")
		return
	}

	if !result.Authenticated {
		h.log.Warnf("Login rejected for '%s'", req.Email)
		c.String(http.StatusOK, result.Message)
		return
	}

	h.log.Infof("Login successful for '%s' (user ID %d)", req.Email, result.UserID)
	c.String(http.StatusOK, "Success")
}

func (h *UserHandler) Signup(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for signup: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	createdUser, err := h.useCase.RegisterUser(req.Name, req.Email, req.Password)
	if err != nil {
		h.log.Errorf("Signup failed for '%s': %v", req.Email, err)
		ErrorResponse(c, mapErrorToStatus(err), "Signup failed: "+err.Error())
		return
	}

	h.log.Infof("Signup successful: ID %d, Email %s", createdUser.ID, createdUser.Email)
	c.JSON(http.StatusCreated, createdUser)
}
