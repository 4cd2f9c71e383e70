package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/service"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// RegisterRoutes registers review routes nested under a title. Reads are
// public; creation needs authentication; updates and deletes are resolved
// per resource in the service (author, moderator or admin).
func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup, authRequired gin.HandlerFunc) {
	reviews := router.Group("/titles/:title_id/reviews")
	{
		reviews.GET("", h.List)
		reviews.GET("/:review_id", h.Get)
		reviews.POST("", authRequired, h.Create)
		reviews.PATCH("/:review_id", authRequired, h.Update)
		reviews.DELETE("/:review_id", authRequired, h.Delete)
	}
}

// List retrieves reviews for a title, newest first.
// GET /api/titles/:title_id/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	titleID, ok := pathID(c, "title_id", "title ID")
	if !ok {
		return
	}
	page, pageSize := pagination(c)

	result, err := h.reviewService.List(c.Request.Context(), titleID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get retrieves a single review.
// GET /api/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Get(c *gin.Context) {
	titleID, reviewID, ok := h.parseIDs(c)
	if !ok {
		return
	}

	review, err := h.reviewService.Get(c.Request.Context(), titleID, reviewID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// Create adds a review authored by the authenticated user.
// POST /api/titles/:title_id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	titleID, ok := pathID(c, "title_id", "title ID")
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), middleware.Actor(c), titleID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// Update modifies a review. Author, moderator or admin.
// PATCH /api/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Update(c *gin.Context) {
	titleID, reviewID, ok := h.parseIDs(c)
	if !ok {
		return
	}

	var req dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviewService.Update(c.Request.Context(), middleware.Actor(c), titleID, reviewID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// Delete removes a review. Author, moderator or admin.
// DELETE /api/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Delete(c *gin.Context) {
	titleID, reviewID, ok := h.parseIDs(c)
	if !ok {
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), middleware.Actor(c), titleID, reviewID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReviewHandler) parseIDs(c *gin.Context) (titleID, reviewID int64, ok bool) {
	titleID, ok = pathID(c, "title_id", "title ID")
	if !ok {
		return 0, 0, false
	}
	reviewID, ok = pathID(c, "review_id", "review ID")
	if !ok {
		return 0, 0, false
	}
	return titleID, reviewID, true
}
