package handler

import (
	"net/http"

	"eduground/internal/cache"
	"eduground/internal/httpapi/dto"
	"eduground/internal/httpapi/middleware"
	"eduground/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type CourseHandler struct {
	courseService service.CourseService
	cache         *cache.Store
}

func NewCourseHandler(courseService service.CourseService, cache *cache.Store) *CourseHandler {
	return &CourseHandler{courseService: courseService, cache: cache}
}

func (h *CourseHandler) RegisterRoutes(router *gin.RouterGroup) {
	cached := middleware.CachePage(h.cache, "courses")

	courses := router.Group("/courses")
	{
		courses.GET("", cached, h.ListCourses)
		courses.GET("/:id", cached, h.GetCourse)
		courses.POST("", h.CreateCourse)
		courses.PUT("/:id", h.UpdateCourse)
		courses.DELETE("/:id", h.DeleteCourse)
		courses.POST("/:id/add-student", middleware.RequireAdmin(), h.AddStudent)
		courses.POST("/:id/remove-student", middleware.RequireAdmin(), h.RemoveStudent)
	}
}

// invalidate drops cached course pages after a write. Enrollment and catalog
// changes alter what students are allowed to see.
func (h *CourseHandler) invalidate(c *gin.Context) {
	h.cache.InvalidatePrefix(c.Request.Context(), "cache:courses")
}

func (h *CourseHandler) ListCourses(c *gin.Context) {
	caller := callerFromContext(c)

	response, err := h.courseService.List(caller, c.Query("search"), parsePage(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	response, err := h.courseService.Get(callerFromContext(c), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req dto.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.courseService.Create(callerFromContext(c), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	h.invalidate(c)
	c.JSON(http.StatusCreated, response)
}

func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.courseService.Update(callerFromContext(c), id, req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	h.invalidate(c)
	c.JSON(http.StatusOK, response)
}

func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.courseService.Delete(callerFromContext(c), id); err != nil {
		abortWithError(c, err)
		return
	}

	h.invalidate(c)
	c.Status(http.StatusNoContent)
}

func (h *CourseHandler) AddStudent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.StudentIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.courseService.AddStudent(id, req.StudentID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	h.invalidate(c)
	c.JSON(http.StatusOK, response)
}

func (h *CourseHandler) RemoveStudent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.StudentIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.courseService.RemoveStudent(id, req.StudentID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	h.invalidate(c)
	c.JSON(http.StatusOK, response)
}
