package handlers

import (
	"net/http"

	"errandly/middleware"
	"errandly/services/message"
	"errandly/utils"

	"github.com/gin-gonic/gin"
)

// MessageHandler exposes mission chat endpoints.
type MessageHandler struct {
	Service message.MessageService
}

// NewMessageHandler creates a MessageHandler.
func NewMessageHandler(svc message.MessageService) *MessageHandler {
	return &MessageHandler{Service: svc}
}

// Send handles POST /api/messages/:missionId.
func (h *MessageHandler) Send(c *gin.Context) {
	var input struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	msg, err := h.Service.Send(c.Request.Context(), middleware.CallerID(c), c.Param("missionId"), input.Content)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// List handles GET /api/messages/:missionId. Reading the thread marks
// the caller's received messages as read.
func (h *MessageHandler) List(c *gin.Context) {
	messages, err := h.Service.ListForMission(c.Param("missionId"), middleware.CallerID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// UnreadCount handles GET /api/messages/unread/count.
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	count, err := h.Service.UnreadCount(middleware.CallerID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
