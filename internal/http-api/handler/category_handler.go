package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/service"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// RegisterRoutes registers category routes: public reads, admin writes.
func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup, authRequired, adminRequired gin.HandlerFunc) {
	categories := router.Group("/categories")
	{
		categories.GET("", h.List)
		categories.POST("", authRequired, adminRequired, h.Create)
		categories.DELETE("/:slug", authRequired, adminRequired, h.Delete)
	}
}

// List retrieves categories, optionally filtered by name.
// GET /api/categories?search=&page=1&page_size=20
func (h *CategoryHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)

	result, err := h.categoryService.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Create adds a category. Admin only.
// POST /api/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// Delete removes a category by slug. Admin only.
// DELETE /api/categories/:slug
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categoryService.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
