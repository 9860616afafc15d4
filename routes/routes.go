package routes

import (
	"os"
	"strings"

	"aparta-backend/config"
	"aparta-backend/controllers"
	"aparta-backend/models"
	"aparta-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ALLOWED_ORIGINS"); env != "" {
		allowedOrigins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		manager := utils.RequireRole(models.RoleManager)

		// Building routes
		buildings := api.Group("/buildings")
		{
			buildings.POST("", manager, controllers.CreateBuilding)
			buildings.GET("", controllers.GetBuildings)
			buildings.GET("/:id", controllers.GetBuilding)
			buildings.PUT("/:id", manager, controllers.UpdateBuilding)
			buildings.DELETE("/:id", manager, controllers.DeleteBuilding)
		}

		// Apartment routes
		apartments := api.Group("/apartments")
		{
			apartments.POST("", manager, controllers.CreateApartment)
			apartments.GET("", controllers.GetApartments)
			apartments.GET("/:id", controllers.GetApartment)
			apartments.PUT("/:id", manager, controllers.UpdateApartment)
			apartments.DELETE("/:id", manager, controllers.DeleteApartment)
		}

		// Meter routes
		meters := api.Group("/meters")
		{
			meters.POST("", manager, controllers.CreateMeter)
			meters.GET("", controllers.GetMeters)
			meters.PUT("/:id", manager, controllers.UpdateMeter)
		}

		// Price quotation (tariff) routes
		quotations := api.Group("/quotations")
		{
			quotations.POST("", manager, controllers.CreateQuotation)
			quotations.GET("", controllers.GetQuotations)
			quotations.PUT("/:id", manager, controllers.UpdateQuotation)
			quotations.DELETE("/:id", manager, controllers.DeleteQuotation)
		}

		// Contract routes
		contracts := api.Group("/contracts")
		{
			contracts.POST("", manager, controllers.CreateContract)
			contracts.GET("", controllers.GetContracts)
			contracts.PUT("/:id/terminate", manager, controllers.TerminateContract)
		}

		// Meter reading routes
		readings := api.Group("/readings")
		{
			readings.POST("", controllers.RecordReading)
			readings.GET("", controllers.GetReadings)
			readings.GET("/progress", controllers.GetRecordingProgress)
		}

		// Invoice routes
		invoices := api.Group("/invoices")
		{
			invoices.POST("/generate", manager, controllers.GenerateInvoices)
			invoices.GET("", controllers.GetInvoices)
			invoices.GET("/:id", controllers.GetInvoice)
			invoices.PUT("/:id/pay", manager, controllers.PayInvoice)
		}

		// Reports routes
		reportController := controllers.ReportController{}
		api.GET("/reports/billing", reportController.GetBillingReport)
	}

	return r
}
