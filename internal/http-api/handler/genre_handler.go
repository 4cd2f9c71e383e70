package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/service"
)

type GenreHandler struct {
	genreService service.GenreService
}

func NewGenreHandler(genreService service.GenreService) *GenreHandler {
	return &GenreHandler{genreService: genreService}
}

// RegisterRoutes registers genre routes: public reads, admin writes.
func (h *GenreHandler) RegisterRoutes(router *gin.RouterGroup, authRequired, adminRequired gin.HandlerFunc) {
	genres := router.Group("/genres")
	{
		genres.GET("", h.List)
		genres.POST("", authRequired, adminRequired, h.Create)
		genres.DELETE("/:slug", authRequired, adminRequired, h.Delete)
	}
}

// List retrieves genres, optionally filtered by name.
// GET /api/genres?search=&page=1&page_size=20
func (h *GenreHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)

	result, err := h.genreService.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Create adds a genre. Admin only.
// POST /api/genres
func (h *GenreHandler) Create(c *gin.Context) {
	var req dto.CreateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	genre, err := h.genreService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, genre)
}

// Delete removes a genre by slug. Admin only.
// DELETE /api/genres/:slug
func (h *GenreHandler) Delete(c *gin.Context) {
	if err := h.genreService.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
