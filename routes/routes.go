package routes

import (
	"net/http"
	"time"

	"errandly/handlers"
	"errandly/middleware"
	"errandly/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// HandlerBundle groups all handlers and shared middleware dependencies.
type HandlerBundle struct {
	Sessions *redis.Client

	Auth         *handlers.AuthHandler
	Mission      *handlers.MissionHandler
	Payment      *handlers.PaymentHandler
	Message      *handlers.MessageHandler
	Rating       *handlers.RatingHandler
	Notification *handlers.NotificationHandler
}

// RegisterAuthRoutes registers account endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.Register)
		api.POST("/login", hb.Auth.Login)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware(hb.Sessions))
		api.POST("/logout", hb.Auth.Logout)
		api.GET("/profile", hb.Auth.Profile)
		api.PATCH("/profile", hb.Auth.UpdateProfile)
		api.PUT("/location", hb.Auth.UpdateLocation)
		api.PUT("/availability", hb.Auth.UpdateAvailability)
		api.PUT("/fcm-token", hb.Auth.UpdateFCMToken)
	}
}

// RegisterMissionRoutes registers mission lifecycle endpoints.
func RegisterMissionRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/missions")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.Sessions))
		api.POST("", middleware.RequireRole(models.RoleClient), hb.Mission.Create)
		api.GET("", hb.Mission.List)
		api.GET("/nearby", middleware.RequireRole(models.RoleProvider), hb.Mission.Nearby)
		api.GET("/:id", hb.Mission.Get)
		api.POST("/:id/accept", middleware.RequireRole(models.RoleProvider), hb.Mission.Accept)
		api.POST("/:id/start", hb.Mission.Start)
		api.POST("/:id/complete", hb.Mission.Complete)
		api.POST("/:id/cancel", hb.Mission.Cancel)
	}
}

// RegisterPaymentRoutes registers settlement endpoints. The Stripe
// webhook stays public since Stripe authenticates via signature.
func RegisterPaymentRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.POST("/api/payments/webhook", hb.Payment.Webhook)

	api := r.Group("/api/payments")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.Sessions))
		api.POST("/intent", middleware.RequireRole(models.RoleClient), hb.Payment.CreateIntent)
		api.POST("/:id/confirm", hb.Payment.Confirm)
		api.POST("/payout", middleware.RequireRole(models.RoleProvider), hb.Payment.Payout)
		api.GET("/earnings", middleware.RequireRole(models.RoleProvider), hb.Payment.Earnings)
		api.GET("/mission/:missionId", hb.Payment.ByMission)
		api.GET("/history", hb.Payment.History)
	}
}

// RegisterMessageRoutes registers mission chat endpoints.
func RegisterMessageRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/messages")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.Sessions))
		api.GET("/unread/count", hb.Message.UnreadCount)
		api.POST("/:missionId", hb.Message.Send)
		api.GET("/:missionId", hb.Message.List)
	}
}

// RegisterRatingRoutes registers rating endpoints.
func RegisterRatingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/ratings")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.Sessions))
		api.POST("", hb.Rating.Create)
		api.GET("/user/:userId", hb.Rating.ListForUser)
	}
}

// RegisterNotificationRoutes registers in-app notification endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.Sessions))
		api.GET("", hb.Notification.List)
		api.PATCH("/:id/read", hb.Notification.MarkRead)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Errandly"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterMissionRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterMessageRoutes(r, hb)
	RegisterRatingRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
}
