package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/repository"
	"reviewhub/internal/http-api/service"
)

type TitleHandler struct {
	titleService service.TitleService
}

func NewTitleHandler(titleService service.TitleService) *TitleHandler {
	return &TitleHandler{titleService: titleService}
}

// RegisterRoutes registers title routes: public reads, admin writes.
func (h *TitleHandler) RegisterRoutes(router *gin.RouterGroup, authRequired, adminRequired gin.HandlerFunc) {
	titles := router.Group("/titles")
	{
		titles.GET("", h.List)
		titles.GET("/:title_id", h.Get)
		titles.POST("", authRequired, adminRequired, h.Create)
		titles.PATCH("/:title_id", authRequired, adminRequired, h.Update)
		titles.DELETE("/:title_id", authRequired, adminRequired, h.Delete)
	}
}

// List retrieves titles with computed ratings.
// GET /api/titles?category=&genre=&name=&year=&page=1&page_size=20
func (h *TitleHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)

	filter := repository.TitleFilter{
		CategorySlug: c.Query("category"),
		GenreSlug:    c.Query("genre"),
		Name:         c.Query("name"),
	}
	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year filter"})
			return
		}
		filter.Year = &year
	}

	result, err := h.titleService.List(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get retrieves a single title with its computed rating.
// GET /api/titles/:title_id
func (h *TitleHandler) Get(c *gin.Context) {
	titleID, ok := pathID(c, "title_id", "title ID")
	if !ok {
		return
	}

	title, err := h.titleService.Get(c.Request.Context(), titleID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, title)
}

// Create adds a title. Admin only.
// POST /api/titles
func (h *TitleHandler) Create(c *gin.Context) {
	var req dto.CreateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title, err := h.titleService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, title)
}

// Update partially updates a title. Admin only.
// PATCH /api/titles/:title_id
func (h *TitleHandler) Update(c *gin.Context) {
	titleID, ok := pathID(c, "title_id", "title ID")
	if !ok {
		return
	}

	var req dto.UpdateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title, err := h.titleService.Update(c.Request.Context(), titleID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, title)
}

// Delete removes a title and, by cascade, its reviews and their comments.
// Admin only.
// DELETE /api/titles/:title_id
func (h *TitleHandler) Delete(c *gin.Context) {
	titleID, ok := pathID(c, "title_id", "title ID")
	if !ok {
		return
	}

	if err := h.titleService.Delete(c.Request.Context(), titleID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
