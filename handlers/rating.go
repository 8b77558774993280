package handlers

import (
	"net/http"

	"errandly/middleware"
	"errandly/services/rating"
	"errandly/utils"

	"github.com/gin-gonic/gin"
)

// RatingHandler exposes rating endpoints.
type RatingHandler struct {
	Service rating.RatingService
}

// NewRatingHandler creates a RatingHandler.
func NewRatingHandler(svc rating.RatingService) *RatingHandler {
	return &RatingHandler{Service: svc}
}

// Create handles POST /api/ratings.
func (h *RatingHandler) Create(c *gin.Context) {
	var input struct {
		MissionID string `json:"missionId" binding:"required"`
		Score     int    `json:"score" binding:"required"`
		Comment   string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	r, err := h.Service.Create(middleware.CallerID(c), input.MissionID, input.Score, input.Comment)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// ListForUser handles GET /api/ratings/user/:userId.
func (h *RatingHandler) ListForUser(c *gin.Context) {
	ratings, err := h.Service.ListForUser(c.Param("userId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ratings)
}
