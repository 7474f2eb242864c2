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

type RatingHandler struct {
	ratingService service.RatingService
	cache         *cache.Store
}

func NewRatingHandler(ratingService service.RatingService, cache *cache.Store) *RatingHandler {
	return &RatingHandler{ratingService: ratingService, cache: cache}
}

func (h *RatingHandler) RegisterRoutes(router *gin.RouterGroup) {
	cached := middleware.CachePage(h.cache, "ratings")

	ratings := router.Group("/ratings")
	{
		ratings.GET("", cached, h.ListRatings)
		ratings.GET("/:id", cached, h.GetRating)
		ratings.POST("", h.CreateRating)
		ratings.PUT("/:id", h.UpdateRating)
		ratings.DELETE("/:id", h.DeleteRating)
	}
}

// invalidate drops cached rating pages plus the lesson and course pages whose
// derived rating percentage just changed.
func (h *RatingHandler) invalidate(c *gin.Context) {
	h.cache.InvalidatePrefix(c.Request.Context(), "cache:ratings")
	h.cache.InvalidatePrefix(c.Request.Context(), "cache:lessons")
	h.cache.InvalidatePrefix(c.Request.Context(), "cache:courses")
}

func (h *RatingHandler) ListRatings(c *gin.Context) {
	filter := repository.RatingFilter{CreatorID: c.Query("creator")}

	if raw := c.Query("lesson"); raw != "" {
		lessonID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson filter"})
			return
		}
		filter.LessonID = &lessonID
	}

	response, err := h.ratingService.List(filter, parsePage(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *RatingHandler) GetRating(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	response, err := h.ratingService.Get(id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *RatingHandler) CreateRating(c *gin.Context) {
	var req dto.CreateRatingDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.ratingService.Create(callerFromContext(c), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	h.invalidate(c)
	c.JSON(http.StatusCreated, response)
}

func (h *RatingHandler) UpdateRating(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateRatingDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.ratingService.Update(callerFromContext(c), id, req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	h.invalidate(c)
	c.JSON(http.StatusOK, response)
}

func (h *RatingHandler) DeleteRating(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.ratingService.Delete(callerFromContext(c), id); err != nil {
		abortWithError(c, err)
		return
	}

	h.invalidate(c)
	c.Status(http.StatusNoContent)
}
