package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"errandly/config"
	"errandly/cron"
	"errandly/database"
	messageRepo "errandly/database/repository/message"
	missionRepo "errandly/database/repository/mission"
	notificationRepo "errandly/database/repository/notification"
	paymentRepo "errandly/database/repository/payment"
	ratingRepo "errandly/database/repository/rating"
	userRepoPkg "errandly/database/repository/user"
	"errandly/handlers"
	"errandly/middleware"
	"errandly/routes"
	"errandly/services/matching"
	"errandly/services/message"
	"errandly/services/mission"
	"errandly/services/notification"
	"errandly/services/payment"
	"errandly/services/rating"
	"errandly/services/user"
	"errandly/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	users := userRepoPkg.NewMongoUserRepo()
	missions := missionRepo.NewMongoMissionRepo()
	payments := paymentRepo.NewMongoPaymentRepo()
	messages := messageRepo.NewMongoMessageRepo()
	ratings := ratingRepo.NewMongoRatingRepo()
	notifications := notificationRepo.NewMongoNotificationRepo()

	sessions := utils.GetAuthCacheClient()

	// services.
	notificationService := &notification.DefaultNotificationService{
		Users:         users,
		Notifications: notifications,
		Push:          notification.FCMPushSender{},
	}

	matchingService := &matching.DefaultMatchingService{
		MissionRepo: missions,
		UserRepo:    users,
	}

	reminderScheduler := cron.NewReminderScheduler()
	defer reminderScheduler.Close()
	cron.InitReminderWorker(missions, payments, notificationService)

	missionService := &mission.DefaultMissionService{
		Repo:        missions,
		UserRepo:    users,
		MessageRepo: messages,
		RatingRepo:  ratings,
		PaymentRepo: payments,
		Matcher:     matchingService,
		Dispatcher:  notificationService,
		Reminders:   reminderScheduler,
	}

	paymentService := &payment.DefaultPaymentService{
		Payments:   payments,
		Missions:   missions,
		Users:      users,
		Processor:  payment.StripeClient{},
		Dispatcher: notificationService,
	}

	messageService := &message.DefaultMessageService{
		Messages:   messages,
		Missions:   missions,
		Users:      users,
		Dispatcher: notificationService,
	}

	ratingService := &rating.DefaultRatingService{
		Ratings:  ratings,
		Missions: missions,
		Users:    users,
	}

	userService := &user.DefaultUserService{
		Repo:     users,
		Sessions: sessions,
	}

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Sessions:     sessions,
		Auth:         handlers.NewAuthHandler(userService),
		Mission:      handlers.NewMissionHandler(missionService, matchingService),
		Payment:      handlers.NewPaymentHandler(paymentService),
		Message:      handlers.NewMessageHandler(messageService),
		Rating:       handlers.NewRatingHandler(ratingService),
		Notification: handlers.NewNotificationHandler(notificationService),
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
