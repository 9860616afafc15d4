package main

import (
	"fmt"
	"log"
	"os"

	"aparta-backend/config"
	"aparta-backend/models"
	"aparta-backend/routes"
	"aparta-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Building{},
		&models.Apartment{},
		&models.Contract{},
		&models.Meter{},
		&models.MeterReading{},
		&models.PriceQuotation{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.NotificationLog{},
	)
}

func main() {

	// Payment reminders run in the background
	services.NewNotificationService(config.DB).StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
