package main

import (
	"fmt"
	"net/http"
	"os"

	"aruskas/internal/config"
	"aruskas/internal/database"
	"aruskas/internal/handlers"
	"aruskas/internal/logger"
	"aruskas/internal/middleware"
	"aruskas/internal/scheduler"
	"aruskas/internal/services"
	"aruskas/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "aruskas/internal/docs" // Import swagger docs
)

// @title           Aruskas API
// @version         1.0
// @description     Aruskas is a small-business finance backend: a dual-fund cash ledger with recurring billing, expense and project transaction tracking.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	fundService := services.NewFundService(db)
	transactionService := services.NewTransactionService(db, fundService)
	expenseService := services.NewExpenseService(db, fundService)
	inventoryService := services.NewInventoryService(db)
	recurringService := services.NewRecurringService(db, fundService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	fundHandler := handlers.NewFundHandler(fundService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	recurringHandler := handlers.NewRecurringHandler(recurringService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Pipeline routes (scheduled jobs calling in over HTTP with an API key)
	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(appConfig.PipelineAPIKey))
	pipeline.POST("/recurring/run", recurringHandler.RunPipeline)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Fund routes
	funds := protected.Group("/funds")
	funds.GET("", fundHandler.GetBalances)
	funds.GET("/ledger", fundHandler.GetLedger)
	funds.POST("/entries", fundHandler.CreateManualEntry)
	funds.POST("/transfer", fundHandler.CreateTransfer)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id/payment-status", transactionHandler.UpdatePaymentStatus)

	// Expense routes
	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.GET("/:id", expenseHandler.GetExpenseByID)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Inventory routes
	inventory := protected.Group("/inventory")
	inventory.POST("", inventoryHandler.CreateInventory)
	inventory.GET("", inventoryHandler.GetInventories)
	inventory.GET("/:id", inventoryHandler.GetInventoryByID)
	inventory.PUT("/:id", inventoryHandler.UpdateInventory)
	inventory.DELETE("/:id", inventoryHandler.DeleteInventory)

	// Recurring billing trigger
	recurring := protected.Group("/recurring")
	recurring.POST("/run", recurringHandler.Run)

	// In-process scheduler for the daily recurring billing run
	if appConfig.RecurringEnabled {
		sched := scheduler.New(log)
		job := scheduler.NewRecurringBillingJob(recurringService)
		if err := sched.AddJob(appConfig.RecurringCron, job); err != nil {
			return fmt.Errorf("failed to schedule recurring billing job: %w", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	log.Infof("Starting Aruskas backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
