package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"petcare/config"
	petcron "petcare/cron"
	"petcare/database"
	bookingRepoPkg "petcare/database/repository/booking"
	paymentRepoPkg "petcare/database/repository/payment"
	serviceRepoPkg "petcare/database/repository/service"
	userRepoPkg "petcare/database/repository/user"
	"petcare/handlers"
	"petcare/middleware"
	"petcare/routes"
	"petcare/services/booking"
	"petcare/services/catalog"
	"petcare/services/payment"
	"petcare/services/storage"
	"petcare/services/user"
	"petcare/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	storageService, err := storage.NewCloudinaryStorageService()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	serviceRepo := serviceRepoPkg.NewMongoServiceRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	paymentRepo := paymentRepoPkg.NewMongoPaymentRepo()

	// services.
	userService := &user.DefaultUserService{
		Repo:    userRepo,
		Storage: storageService,
	}
	catalogService := &catalog.DefaultCatalogService{
		Repo:    serviceRepo,
		Storage: storageService,
	}
	bookingService := &booking.DefaultBookingService{
		Repo:        bookingRepo,
		PaymentRepo: paymentRepo,
		ServiceRepo: serviceRepo,
		UserRepo:    userRepo,
	}
	paymentService := &payment.DefaultPaymentService{
		Repo:        paymentRepo,
		BookingRepo: bookingRepo,
		UserRepo:    userRepo,
		ServiceRepo: serviceRepo,
		Storage:     storageService,
		Cache:       utils.GetCacheClient(),
	}

	// handlers.
	handlerBundle := &routes.Handlers{
		User:    handlers.NewUserHandler(userService),
		Service: handlers.NewServiceHandler(catalogService),
		Booking: handlers.NewBookingHandler(bookingService),
		Payment: handlers.NewPaymentHandler(paymentService),
		Admin:   handlers.NewAdminHandler(paymentService, userService),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Background sweeper for expired cancellations.
	sweeper := petcron.NewExpirySweeper(bookingService, config.AppConfig.SweepSchedule)
	if err := sweeper.Start(); err != nil {
		logger.Sugar().Fatalf("main: failed to start expiry sweeper: %v", err)
	}

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
	sweeper.Stop(ctx)
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
