package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/teamtask/teamtask-server/internal/auth"
	"github.com/teamtask/teamtask-server/internal/config"
	"github.com/teamtask/teamtask-server/internal/database"
	"github.com/teamtask/teamtask-server/internal/handlers"
	"github.com/teamtask/teamtask-server/internal/middleware"
	"github.com/teamtask/teamtask-server/internal/repository"
	"github.com/teamtask/teamtask-server/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

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

	// Token signing setup
	tokens, err := auth.NewTokenManager(cfg.JWTKey, cfg.JWTAlgorithm, cfg.JWTTTLMinutes)
	if err != nil {
		log.Fatalf("Invalid token configuration: %v", err)
	}

	// Initialize repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo, tokens)
	projectService := services.NewProjectService(projectRepo, userRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService, taskService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Initialize Gin router
	r := gin.Default()

	requireAuth := middleware.RequireAuth(tokens, userRepo)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "teamtask server is running",
		})
	})

	// Auth routes
	authGroup := r.Group("/auth")
	{
		authGroup.GET("/", authHandler.ListUsers)
		authGroup.POST("/new", authHandler.Register)
		authGroup.POST("/token", authHandler.Token)
		authGroup.GET("/me", requireAuth, authHandler.Me)
	}

	// Project routes (protected)
	projectGroup := r.Group("/project")
	projectGroup.Use(requireAuth)
	{
		projectGroup.GET("/", projectHandler.List)
		projectGroup.POST("/", projectHandler.Create)
		projectGroup.GET("/:id", projectHandler.Get)
		projectGroup.POST("/:id", projectHandler.CreateTask)
		projectGroup.PATCH("/:id", projectHandler.Update)
		projectGroup.DELETE("/:id", projectHandler.Delete)
	}

	// Task routes (protected)
	taskGroup := r.Group("/task")
	taskGroup.Use(requireAuth)
	{
		taskGroup.GET("/:id", taskHandler.Get)
		taskGroup.PATCH("/:id", taskHandler.Update)
		taskGroup.DELETE("/:id", taskHandler.Delete)
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
