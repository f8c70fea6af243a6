package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/config"
	"github.com/yukikurage/project-management-api/internal/constants"
	"github.com/yukikurage/project-management-api/internal/database"
	"github.com/yukikurage/project-management-api/internal/handlers"
	"github.com/yukikurage/project-management-api/internal/middleware"
	"github.com/yukikurage/project-management-api/internal/repository"
	"github.com/yukikurage/project-management-api/internal/services"
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

	// Initialize Gin router
	r := gin.Default()

	// CORS
	if cfg.CORSOrigin != "" {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = []string{cfg.CORSOrigin}
		corsConfig.AllowCredentials = true
		r.Use(cors.New(corsConfig))
	} else {
		r.Use(cors.Default())
	}

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	projectService := services.NewProjectService(projectRepo, userRepo)
	columnService := services.NewColumnService(columnRepo)
	taskService := services.NewTaskService(taskRepo, columnRepo, userRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	columnHandler := handlers.NewColumnHandler(columnService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Project Management API is running",
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

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)

			access := middleware.RequireProjectAccess(projectService)

			projects.GET("/:id", access, projectHandler.GetProject)
			projects.PUT("/:id", access, projectHandler.UpdateProject)
			projects.DELETE("/:id", access, projectHandler.DeleteProject)
			projects.PUT("/:id/un-assign", access, projectHandler.UnassignUsers)
			projects.POST("/:id/members/toggle", access, projectHandler.ToggleMember)
			projects.PUT("/:id/order-columns", access, columnHandler.ReorderColumns)

			// Column routes
			projects.GET("/:id/columns", access, columnHandler.ListColumns)
			projects.POST("/:id/columns", access, columnHandler.CreateColumn)
			projects.PATCH("/:id/columns/:column_id", access, columnHandler.UpdateColumn)
			projects.DELETE("/:id/columns/:column_id", access, columnHandler.DeleteColumn)

			// Task routes
			projects.GET("/:id/tasks", access, taskHandler.ListTasks)
			projects.POST("/:id/tasks", access, taskHandler.CreateTask)
			projects.GET("/:id/tasks/:task_id", access, taskHandler.GetTask)
			projects.PATCH("/:id/tasks/:task_id", access, taskHandler.UpdateTask)
			projects.DELETE("/:id/tasks/:task_id", access, taskHandler.DeleteTask)
			projects.POST("/:id/tasks/:task_id/assign/:user_id", access, taskHandler.AssignUser)
			projects.POST("/:id/tasks/:task_id/unassign/:user_id", access, taskHandler.UnassignUser)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
