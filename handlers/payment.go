package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"errandly/config"
	"errandly/middleware"
	"errandly/services/payment"
	"errandly/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// PaymentHandler exposes settlement endpoints.
type PaymentHandler struct {
	Service payment.PaymentService
}

// NewPaymentHandler creates a PaymentHandler.
func NewPaymentHandler(svc payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{Service: svc}
}

// CreateIntent handles POST /api/payments/intent.
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var input struct {
		MissionID string `json:"missionId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := h.Service.CreateIntent(c.Request.Context(), input.MissionID, middleware.CallerID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// Confirm handles POST /api/payments/:id/confirm.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	p, err := h.Service.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Payout handles POST /api/payments/payout.
func (h *PaymentHandler) Payout(c *gin.Context) {
	var input struct {
		Amount float64 `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Service.RequestPayout(middleware.CallerID(c), input.Amount); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Payout requested successfully",
		"amount":  input.Amount,
	})
}

// Earnings handles GET /api/payments/earnings.
func (h *PaymentHandler) Earnings(c *gin.Context) {
	report, err := h.Service.Earnings(middleware.CallerID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ByMission handles GET /api/payments/mission/:missionId.
func (h *PaymentHandler) ByMission(c *gin.Context) {
	p, err := h.Service.GetByMissionID(c.Param("missionId"), middleware.CallerID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// History handles GET /api/payments/history.
func (h *PaymentHandler) History(c *gin.Context) {
	payments, err := h.Service.History(middleware.CallerID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

// Webhook handles POST /api/payments/webhook. The signature is verified
// when a webhook secret is configured.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload", err.Error())
		return
	}

	var event stripe.Event
	if secret := config.AppConfig.StripeWebhookSecret; secret != "" {
		event, err = webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), secret)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid signature", err.Error())
			return
		}
	} else if err := json.Unmarshal(payload, &event); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload", err.Error())
		return
	}

	var intent struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid event data", err.Error())
		return
	}

	if err := h.Service.HandleWebhookEvent(c.Request.Context(), string(event.Type), intent.ID); err != nil {
		utils.GetLogger().Error("webhook handling failed",
			zap.String("type", string(event.Type)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook handling failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}
