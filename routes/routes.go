package routes

import (
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"bridal-studio-backend/config"
	"bridal-studio-backend/controllers"
	"bridal-studio-backend/utils"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if extra := os.Getenv("FRONTEND_ORIGIN"); extra != "" {
		origins = append(origins, extra)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	// Triggered by an external scheduler with a shared secret, so it stays
	// outside the session middleware.
	r.GET("/api/cron/booking-reminders", controllers.TriggerBookingReminders)

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Customer routes
		api.POST("/add-customer", controllers.AddCustomer)
		api.GET("/customers", controllers.GetCustomers)
		api.POST("/update-customer", controllers.UpdateCustomer)
		api.DELETE("/update-customer", controllers.DeleteCustomer)

		// Booking routes
		api.POST("/add-booking", controllers.AddBooking)
		api.GET("/bookings", controllers.GetBookings)
		api.PATCH("/bookings", controllers.UpdateBooking)
		api.DELETE("/bookings", controllers.DeleteBooking)

		// Analytics routes
		api.GET("/analytics", controllers.GetAnalytics)

		// Push token routes
		api.POST("/save-fcm-token", controllers.SaveFCMToken)
	}

	return r
}
