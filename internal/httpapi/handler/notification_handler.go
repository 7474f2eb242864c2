package handler

import (
	"net/http"

	"eduground/internal/httpapi/dto"
	"eduground/internal/httpapi/middleware"
	"eduground/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/send-notification", middleware.RequireAdmin(), h.SendNotification)
}

// SendNotification broadcasts a templated email. The response body is the
// bare per-recipient outcome map, one email/bool entry per recipient.
func (h *NotificationHandler) SendNotification(c *gin.Context) {
	var req dto.NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := h.notificationService.Broadcast(req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}
