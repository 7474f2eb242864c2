package handler

import (
	"net/http"
	"strconv"

	"eduground/internal/cache"
	"eduground/internal/httpapi/dto"
	"eduground/internal/httpapi/middleware"
	"eduground/internal/httpapi/repository"
	"eduground/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
	cache          *cache.Store
}

func NewCommentHandler(commentService service.CommentService, cache *cache.Store) *CommentHandler {
	return &CommentHandler{commentService: commentService, cache: cache}
}

func (h *CommentHandler) RegisterRoutes(router *gin.RouterGroup) {
	cached := middleware.CachePage(h.cache, "comments")

	comments := router.Group("/comments")
	{
		comments.GET("", cached, h.ListComments)
		comments.GET("/:id", cached, h.GetComment)
		comments.POST("", h.CreateComment)
		comments.PUT("/:id", h.UpdateComment)
		comments.DELETE("/:id", h.DeleteComment)
	}
}

// invalidate drops cached comment pages plus the lesson and course pages that
// embed comments.
func (h *CommentHandler) invalidate(c *gin.Context) {
	h.cache.InvalidatePrefix(c.Request.Context(), "cache:comments")
	h.cache.InvalidatePrefix(c.Request.Context(), "cache:lessons")
	h.cache.InvalidatePrefix(c.Request.Context(), "cache:courses")
}

func (h *CommentHandler) ListComments(c *gin.Context) {
	filter := repository.CommentFilter{
		Search:    c.Query("search"),
		CreatorID: c.Query("creator"),
	}

	if raw := c.Query("lesson"); raw != "" {
		lessonID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson filter"})
			return
		}
		filter.LessonID = &lessonID
	}

	response, err := h.commentService.List(filter, parsePage(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *CommentHandler) GetComment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	response, err := h.commentService.Get(id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.commentService.Create(callerFromContext(c), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	h.invalidate(c)
	c.JSON(http.StatusCreated, response)
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.commentService.Update(callerFromContext(c), id, req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	h.invalidate(c)
	c.JSON(http.StatusOK, response)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.commentService.Delete(callerFromContext(c), id); err != nil {
		abortWithError(c, err)
		return
	}

	h.invalidate(c)
	c.Status(http.StatusNoContent)
}
