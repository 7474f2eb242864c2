package handler

import (
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"eduground/internal/cache"
	"eduground/internal/httpapi/dto"
	"eduground/internal/httpapi/middleware"
	"eduground/internal/httpapi/repository"
	"eduground/internal/httpapi/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LessonHandler struct {
	lessonService service.LessonService
	cache         *cache.Store
	mediaRoot     string
}

func NewLessonHandler(lessonService service.LessonService, cache *cache.Store, mediaRoot string) *LessonHandler {
	return &LessonHandler{lessonService: lessonService, cache: cache, mediaRoot: mediaRoot}
}

func (h *LessonHandler) RegisterRoutes(router *gin.RouterGroup) {
	cached := middleware.CachePage(h.cache, "lessons")

	lessons := router.Group("/lessons")
	{
		lessons.GET("", cached, h.ListLessons)
		lessons.GET("/:id", cached, h.GetLesson)
		lessons.POST("", h.CreateLesson)
		lessons.PUT("/:id", h.UpdateLesson)
		lessons.DELETE("/:id", h.DeleteLesson)
	}
}

// invalidate drops cached lesson pages and the course pages that embed them.
func (h *LessonHandler) invalidate(c *gin.Context) {
	h.cache.InvalidatePrefix(c.Request.Context(), "cache:lessons")
	h.cache.InvalidatePrefix(c.Request.Context(), "cache:courses")
}

func (h *LessonHandler) ListLessons(c *gin.Context) {
	filter := repository.LessonFilter{Search: c.Query("search")}

	if raw := c.Query("course"); raw != "" {
		courseID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course filter"})
			return
		}
		filter.CourseID = &courseID
	}

	if raw := c.Query("created_at"); raw != "" {
		day, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid created_at filter, expected YYYY-MM-DD"})
			return
		}
		filter.CreatedAt = &day
	}

	response, err := h.lessonService.List(callerFromContext(c), filter, parsePage(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *LessonHandler) GetLesson(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	response, err := h.lessonService.Get(callerFromContext(c), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *LessonHandler) CreateLesson(c *gin.Context) {
	var req dto.CreateLessonRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := c.FormFile("video")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "video file is required"})
		return
	}

	videoPath, err := h.saveVideo(c, file)
	if err != nil {
		abortWithError(c, err)
		return
	}

	response, err := h.lessonService.Create(callerFromContext(c), req, videoPath)
	if err != nil {
		abortWithError(c, err)
		return
	}

	h.invalidate(c)
	c.JSON(http.StatusCreated, response)
}

func (h *LessonHandler) UpdateLesson(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateLessonRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The video part is optional on update; absent means keep the stored file.
	videoPath := ""
	if file, err := c.FormFile("video"); err == nil {
		videoPath, err = h.saveVideo(c, file)
		if err != nil {
			abortWithError(c, err)
			return
		}
	}

	response, err := h.lessonService.Update(callerFromContext(c), id, req, videoPath)
	if err != nil {
		abortWithError(c, err)
		return
	}

	h.invalidate(c)
	c.JSON(http.StatusOK, response)
}

func (h *LessonHandler) DeleteLesson(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.lessonService.Delete(callerFromContext(c), id); err != nil {
		abortWithError(c, err)
		return
	}

	h.invalidate(c)
	c.Status(http.StatusNoContent)
}

// saveVideo stores an uploaded video under the media root with a random name
// and returns the media-relative path recorded on the lesson.
func (h *LessonHandler) saveVideo(c *gin.Context, file *multipart.FileHeader) (string, error) {
	relPath := filepath.Join("videos", uuid.New().String()+filepath.Ext(file.Filename))
	fullPath := filepath.Join(h.mediaRoot, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", err
	}
	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		return "", err
	}

	return relPath, nil
}
