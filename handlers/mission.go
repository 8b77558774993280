package handlers

import (
	"net/http"
	"strconv"

	"errandly/middleware"
	"errandly/models"
	"errandly/services/matching"
	"errandly/services/mission"
	"errandly/utils"

	"github.com/gin-gonic/gin"
)

// MissionHandler exposes mission lifecycle and discovery endpoints.
type MissionHandler struct {
	Service mission.MissionService
	Matcher matching.MatchingService
}

// NewMissionHandler creates a MissionHandler.
func NewMissionHandler(svc mission.MissionService, matcher matching.MatchingService) *MissionHandler {
	return &MissionHandler{Service: svc, Matcher: matcher}
}

// Create handles POST /api/missions.
func (h *MissionHandler) Create(c *gin.Context) {
	var input mission.CreateMissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	m, err := h.Service.Create(c.Request.Context(), middleware.CallerID(c), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// List handles GET /api/missions. An optional status query filters states.
func (h *MissionHandler) List(c *gin.Context) {
	status := models.MissionStatus(c.Query("status"))
	role := models.UserRole(middleware.CallerRole(c))

	missions, err := h.Service.ListUserMissions(middleware.CallerID(c), role, status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, missions)
}

// Nearby handles GET /api/missions/nearby?latitude=&longitude=&radius=.
func (h *MissionHandler) Nearby(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("latitude"), 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "latitude is required")
		return
	}
	lon, err := strconv.ParseFloat(c.Query("longitude"), 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "longitude is required")
		return
	}
	radius, _ := strconv.ParseFloat(c.DefaultQuery("radius", "0"), 64)

	missions, err := h.Matcher.NearbyMissions(middleware.CallerID(c), lat, lon, radius)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, missions)
}

// Get handles GET /api/missions/:id.
func (h *MissionHandler) Get(c *gin.Context) {
	detail, err := h.Service.GetByID(c.Param("id"), middleware.CallerID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Accept handles POST /api/missions/:id/accept.
func (h *MissionHandler) Accept(c *gin.Context) {
	m, err := h.Service.Accept(c.Request.Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// Start handles POST /api/missions/:id/start.
func (h *MissionHandler) Start(c *gin.Context) {
	m, err := h.Service.Start(c.Request.Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// Complete handles POST /api/missions/:id/complete.
func (h *MissionHandler) Complete(c *gin.Context) {
	m, err := h.Service.Complete(c.Request.Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// Cancel handles POST /api/missions/:id/cancel.
func (h *MissionHandler) Cancel(c *gin.Context) {
	m, err := h.Service.Cancel(c.Request.Context(), c.Param("id"), middleware.CallerID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}
