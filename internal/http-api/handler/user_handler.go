package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes registers user management routes. Everything under /users
// is admin only, except the /users/me pair which any authenticated user can
// reach.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup, authRequired, adminRequired gin.HandlerFunc) {
	users := router.Group("/users", authRequired)
	{
		users.GET("/me", h.GetSelf)
		users.PATCH("/me", h.UpdateSelf)

		users.GET("", adminRequired, h.List)
		users.POST("", adminRequired, h.Create)
		users.GET("/:username", adminRequired, h.Get)
		users.PATCH("/:username", adminRequired, h.Update)
		users.DELETE("/:username", adminRequired, h.Delete)
	}
}

// List retrieves users, optionally filtered by username. Admin only.
// GET /api/users?search=&page=1&page_size=20
func (h *UserHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)

	result, err := h.userService.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Create adds a user directly, without the confirmation-code flow. Admin only.
// POST /api/users
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Get retrieves a user by username. Admin only.
// GET /api/users/:username
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Update partially updates a user, role included. Admin only.
// PATCH /api/users/:username
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Update(c.Request.Context(), c.Param("username"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Delete removes a user by username. Admin only.
// DELETE /api/users/:username
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), c.Param("username")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetSelf retrieves the authenticated user's own profile.
// GET /api/users/me
func (h *UserHandler) GetSelf(c *gin.Context) {
	current := middleware.CurrentUser(c)
	if current == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), current.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateSelf updates the authenticated user's own profile. The request type
// carries no role field, so any role in the payload is ignored.
// PATCH /api/users/me
func (h *UserHandler) UpdateSelf(c *gin.Context) {
	current := middleware.CurrentUser(c)
	if current == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req dto.UpdateSelfRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.UpdateSelf(c.Request.Context(), current.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
