package main

import (
	"context"
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/gameplanhq/artwork-workflow-api/internal/cache"
	"github.com/gameplanhq/artwork-workflow-api/internal/config"
	"github.com/gameplanhq/artwork-workflow-api/internal/constants"
	"github.com/gameplanhq/artwork-workflow-api/internal/database"
	"github.com/gameplanhq/artwork-workflow-api/internal/events"
	"github.com/gameplanhq/artwork-workflow-api/internal/handlers"
	"github.com/gameplanhq/artwork-workflow-api/internal/logging"
	"github.com/gameplanhq/artwork-workflow-api/internal/middleware"
	"github.com/gameplanhq/artwork-workflow-api/internal/models"
	"github.com/gameplanhq/artwork-workflow-api/internal/repository"
	"github.com/gameplanhq/artwork-workflow-api/internal/services"
	"github.com/gameplanhq/artwork-workflow-api/internal/validation"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logging.Setup(cfg.LogLevel)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Register custom request validators
	if err := validation.Register(); err != nil {
		log.Fatalf("Failed to register validators: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	store, err := redisStore.NewStore(
		10,                        // Redis pool size
		"tcp",                     // network type
		cfg.RedisAddr(),           // Redis address from config
		"",                        // username (empty for default user)
		"",                        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionName, store))

	// Realtime bus and unread counter cache
	bus := events.NewBus(logging.WithModule("events"))
	defer bus.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr()})
	unreadCache := cache.NewRedisUnreadCache(redisClient)

	// Repositories
	taskRepo := repository.NewTaskRepository(database.GetDB())
	userRepo := repository.NewUserRepository(database.GetDB())
	notificationRepo := repository.NewNotificationRepository(database.GetDB())

	// Services
	authService := services.NewAuthService(userRepo)
	movementService := services.NewMovementService(taskRepo, bus, logging.WithModule("movement"))
	taskService := services.NewTaskService(taskRepo, userRepo, bus, logging.WithModule("tasks"))
	bucketService := services.NewBucketService(taskRepo, movementService, bus, logging.WithModule("bucket"))
	kanbanService := services.NewKanbanService(taskRepo)
	notificationService := services.NewNotificationService(notificationRepo, userRepo, unreadCache, logging.WithModule("notifications"))

	// Fan task events out into user notifications
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := notificationService.Start(ctx, bus); err != nil {
		log.Fatalf("Failed to start notification subscriber: %v", err)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService, movementService)
	bucketHandler := handlers.NewBucketHandler(bucketService)
	kanbanHandler := handlers.NewKanbanHandler(kanbanService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	catalogHandler := handlers.NewCatalogHandler()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Artwork Workflow API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.POST("/:id/move", taskHandler.MoveTask)
			tasks.GET("/:id/transitions", taskHandler.GetTransitions)
		}

		// Bucket routes (protected, procurement side)
		bucket := api.Group("/bucket")
		bucket.Use(middleware.RequireAuth())
		{
			bucket.GET("/tasks", bucketHandler.ListBucketTasks)
			bucket.GET("/completed-sales", bucketHandler.ListCompletedSales)
			bucket.GET("/stats", bucketHandler.GetStats)
			bucket.POST("/tasks/:id/move-to", middleware.RequireRole(models.RoleSales, models.RoleProcurement), bucketHandler.MoveToBucket)
			bucket.POST("/tasks/:id/move-from", middleware.RequireRole(models.RoleProcurement), bucketHandler.MoveFromBucket)
		}

		// Kanban board (protected)
		api.GET("/kanban", middleware.RequireAuth(), kanbanHandler.GetBoard)

		// Notification routes (protected)
		notifications := api.Group("/notifications")
		notifications.Use(middleware.RequireAuth())
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.GET("/unread-count", notificationHandler.GetUnreadCount)
			notifications.POST("/mark-all-read", notificationHandler.MarkAllRead)
		}

		// Catalog routes (protected)
		customers := api.Group("/customers")
		customers.Use(middleware.RequireAuth())
		{
			customers.GET("", catalogHandler.ListCustomers)
			customers.POST("", catalogHandler.CreateCustomer)
		}
		artworks := api.Group("/artworks")
		artworks.Use(middleware.RequireAuth())
		{
			artworks.GET("", catalogHandler.ListArtworks)
			artworks.POST("", catalogHandler.CreateArtwork)
		}
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
