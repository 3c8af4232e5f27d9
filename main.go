package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"bridal-studio-backend/config"
	"bridal-studio-backend/controllers"
	"bridal-studio-backend/models"
	"bridal-studio-backend/routes"
	"bridal-studio-backend/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	config.ConnectDB(cfg.DBUrl)
	config.DB.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Booking{},
		&models.DeviceToken{},
		&models.NotificationLog{},
	)

	ctx := context.Background()

	mirror, err := services.NewSheetsMirror(ctx, cfg.Sheets)
	if err != nil {
		log.Fatalf("Failed to set up sheets mirror: %v", err)
	}

	pusher, err := services.NewFCMPusher(ctx, cfg.FirebaseCredentialsB64)
	if err != nil {
		log.Fatalf("Failed to set up push client: %v", err)
	}

	bridge := services.NewSyncBridge(config.DB, mirror)
	reminders := services.NewReminderService(config.DB, pusher, cfg)
	controllers.Setup(bridge, reminders)

	reminders.StartScheduler(cfg.CronSchedule)

	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + cfg.Port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
