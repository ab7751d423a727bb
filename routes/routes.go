package routes

import (
	"net/http"

	"petcare/config"
	"petcare/handlers"
	"petcare/middleware"
	"petcare/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers bundles the per-entity handlers the routes mount.
type Handlers struct {
	User    *handlers.UserHandler
	Service *handlers.ServiceHandler
	Booking *handlers.BookingHandler
	Payment *handlers.PaymentHandler
	Admin   *handlers.AdminHandler
}

// RegisterRoutes mounts every endpoint group on the router.
func RegisterRoutes(r *gin.Engine, h *Handlers) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.AppConfig.BaseURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	registerHealthRoute(r)
	registerUserRoutes(r, h)
	registerServiceRoutes(r, h)
	registerBookingRoutes(r, h)
	registerPaymentRoutes(r, h)
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func registerUserRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1/user")
	{
		api.POST("/register", h.User.RegisterHandler)
		api.POST("/login", h.User.LoginHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.AuthMiddleware())
		api.GET("/me", h.User.MeHandler)
		api.PUT("/me", h.User.UpdateProfileHandler)
		api.PUT("/me/password", h.User.ChangePasswordHandler)

		admin := api.Group("/admin")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		admin.GET("/all", h.Admin.GetAllUsersHandler)
		admin.PUT("/:id/role", h.Admin.ChangeRoleHandler)
		admin.DELETE("/:id", h.Admin.DeleteUserHandler)
	}
}

func registerServiceRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1/service")
	{
		api.GET("", h.Service.ListServicesHandler)
		api.GET("/:id", h.Service.GetServiceHandler)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleAdmin))
		protected.POST("", h.Service.CreateServiceHandler)
		protected.PUT("/:id", h.Service.UpdateServiceHandler)
		protected.DELETE("/:id", h.Service.DeleteServiceHandler)
	}
}

func registerBookingRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1/booking")
	{
		api.Use(middleware.AuthMiddleware())
		api.POST("", h.Booking.CreateBookingHandler)
		api.GET("", h.Booking.GetMyBookingsHandler)
		api.GET("/all", middleware.RequireRole(models.RoleAdmin), h.Booking.GetAllBookingsHandler)
		api.GET("/:id", h.Booking.GetBookingHandler)
		api.PUT("/:id/status", middleware.RequireRole(models.RoleAdmin, models.RoleService), h.Booking.UpdateBookingStatusHandler)
		api.PUT("/:id/cancel", h.Booking.CancelBookingHandler)
		api.PUT("/:id/undo-cancel", h.Booking.UndoCancelHandler)
	}
}

func registerPaymentRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1/payment")
	{
		api.Use(middleware.AuthMiddleware())
		api.POST("", h.Payment.CreatePaymentHandler)
		api.GET("", h.Payment.GetMyPaymentsHandler)
		api.GET("/all", middleware.RequireRole(models.RoleAdmin), h.Payment.GetAllPaymentsHandler)
		api.GET("/:id", h.Payment.GetPaymentHandler)
		api.POST("/:id/upload-slip", h.Payment.UploadSlipHandler)
		api.PUT("/:id/status", middleware.RequireRole(models.RoleAdmin, models.RoleService), h.Payment.UpdatePaymentStatusHandler)

		admin := api.Group("/admin")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		admin.GET("/stats", h.Admin.GetStatsHandler)
		admin.GET("/bookings/pending", h.Admin.GetPendingReviewHandler)
		admin.PUT("/bookings/:id/approve", h.Admin.ApprovePaymentHandler)
		admin.PUT("/bookings/:id/reject", h.Admin.RejectPaymentHandler)
	}
}
