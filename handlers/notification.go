package handlers

import (
	"net/http"

	"errandly/middleware"
	"errandly/services/notification"
	"errandly/utils"

	"github.com/gin-gonic/gin"
)

// NotificationHandler exposes in-app notification endpoints.
type NotificationHandler struct {
	Service notification.NotificationService
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(svc notification.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: svc}
}

// List handles GET /api/notifications.
func (h *NotificationHandler) List(c *gin.Context) {
	notifications, err := h.Service.ListForUser(middleware.CallerID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// MarkRead handles PATCH /api/notifications/:id/read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.Service.MarkRead(c.Param("id"), middleware.CallerID(c)); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
