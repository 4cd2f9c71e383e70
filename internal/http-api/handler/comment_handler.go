package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/service"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterRoutes registers comment routes nested under a review.
func (h *CommentHandler) RegisterRoutes(router *gin.RouterGroup, authRequired gin.HandlerFunc) {
	comments := router.Group("/titles/:title_id/reviews/:review_id/comments")
	{
		comments.GET("", h.List)
		comments.GET("/:comment_id", h.Get)
		comments.POST("", authRequired, h.Create)
		comments.PATCH("/:comment_id", authRequired, h.Update)
		comments.DELETE("/:comment_id", authRequired, h.Delete)
	}
}

// List retrieves comments for a review, oldest first.
// GET /api/titles/:title_id/reviews/:review_id/comments
func (h *CommentHandler) List(c *gin.Context) {
	titleID, reviewID, ok := h.parseParents(c)
	if !ok {
		return
	}
	page, pageSize := pagination(c)

	result, err := h.commentService.List(c.Request.Context(), titleID, reviewID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get retrieves a single comment.
// GET /api/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) Get(c *gin.Context) {
	titleID, reviewID, ok := h.parseParents(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "comment_id", "comment ID")
	if !ok {
		return
	}

	comment, err := h.commentService.Get(c.Request.Context(), titleID, reviewID, commentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Create adds a comment authored by the authenticated user.
// POST /api/titles/:title_id/reviews/:review_id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	titleID, reviewID, ok := h.parseParents(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), middleware.Actor(c), titleID, reviewID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// Update modifies a comment. Author, moderator or admin.
// PATCH /api/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) Update(c *gin.Context) {
	titleID, reviewID, ok := h.parseParents(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "comment_id", "comment ID")
	if !ok {
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), middleware.Actor(c), titleID, reviewID, commentID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Delete removes a comment. Author, moderator or admin.
// DELETE /api/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) Delete(c *gin.Context) {
	titleID, reviewID, ok := h.parseParents(c)
	if !ok {
		return
	}
	commentID, ok := pathID(c, "comment_id", "comment ID")
	if !ok {
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), middleware.Actor(c), titleID, reviewID, commentID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CommentHandler) parseParents(c *gin.Context) (titleID, reviewID int64, ok bool) {
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
