package handlers

import (
	"net/http"

	"errandly/middleware"
	"errandly/services/user"
	"errandly/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes account endpoints.
type AuthHandler struct {
	Service user.UserService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc user.UserService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var input user.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.Service.Register(input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.Service.Login(input.Email, input.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Service.Logout(middleware.CallerID(c)); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Profile handles GET /api/auth/profile.
func (h *AuthHandler) Profile(c *gin.Context) {
	u, err := h.Service.GetByID(middleware.CallerID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateProfile handles PATCH /api/auth/profile.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var update user.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	u, err := h.Service.UpdateProfile(middleware.CallerID(c), update)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpdateLocation handles PUT /api/auth/location.
func (h *AuthHandler) UpdateLocation(c *gin.Context) {
	var input struct {
		Latitude  float64 `json:"latitude" binding:"required"`
		Longitude float64 `json:"longitude" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Service.UpdateLocation(middleware.CallerID(c), input.Latitude, input.Longitude); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateAvailability handles PUT /api/auth/availability.
func (h *AuthHandler) UpdateAvailability(c *gin.Context) {
	var input struct {
		IsAvailable *bool `json:"isAvailable" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Service.UpdateAvailability(middleware.CallerID(c), *input.IsAvailable); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "isAvailable": *input.IsAvailable})
}

// UpdateFCMToken handles PUT /api/auth/fcm-token.
func (h *AuthHandler) UpdateFCMToken(c *gin.Context) {
	var input struct {
		FCMToken string `json:"fcmToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Service.UpdateFCMToken(middleware.CallerID(c), input.FCMToken); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
