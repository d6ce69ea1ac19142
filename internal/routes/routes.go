package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"todo-list-api/internal/auth"
	"todo-list-api/internal/config"
	"todo-list-api/internal/handlers"
	"todo-list-api/internal/middleware"
	"todo-list-api/internal/progress"
	"todo-list-api/internal/realtime"
	"todo-list-api/internal/response"
	"todo-list-api/internal/service"
	"todo-list-api/internal/store"
)

// Setup wires stores, services and handlers onto a gin engine. Everything
// hangs off the injected db handle and config; no package holds state.
func Setup(db *gorm.DB, cfg config.Config) *gin.Engine {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)

	users := store.NewUserStore(db)
	tasks := store.NewTaskStore(db)
	subtasks := store.NewSubtaskStore(db)
	reconciler := progress.NewReconciler(tasks, subtasks)

	hub := realtime.NewHub()
	taskHandler := handlers.NewTaskHandler(service.NewTaskService(db, tasks, reconciler), hub)
	subtaskHandler := handlers.NewSubtaskHandler(service.NewSubtaskService(db, tasks, subtasks, reconciler), hub)
	authHandler := handlers.NewAuthHandler(users, tokens)
	wsHandler := handlers.NewWSHandler(hub)
	authMiddleware := middleware.NewAuth(tokens, users)

	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	ginRouter.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to TODO List application."})
	})

	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Server TODO List API is running",
		})
	})

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		api.POST("/auth/signup", authHandler.Signup)
		api.POST("/auth/signin", authHandler.Signin)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(authMiddleware.Handler())
	{
		// Task endpoints
		protectedRoutes.GET("/tasks", taskHandler.List)
		protectedRoutes.GET("/tasks/:task_id", taskHandler.Get)
		protectedRoutes.POST("/tasks", taskHandler.Create)
		protectedRoutes.PUT("/tasks/:task_id", taskHandler.Update)
		protectedRoutes.PATCH("/tasks/:task_id/status", taskHandler.UpdateStatus)
		protectedRoutes.DELETE("/tasks/:task_id", taskHandler.Delete)

		// Subtask endpoints
		protectedRoutes.POST("/tasks/:task_id/subtasks", subtaskHandler.Create)
		protectedRoutes.GET("/tasks/:task_id/subtasks", subtaskHandler.List)
		protectedRoutes.PUT("/tasks/:task_id/subtasks/:subtask_id", subtaskHandler.Update)
		protectedRoutes.PATCH("/tasks/:task_id/subtasks/:subtask_id/status", subtaskHandler.UpdateStatus)
		protectedRoutes.DELETE("/tasks/:task_id/subtasks/:subtask_id", subtaskHandler.Delete)

		// Realtime events
		protectedRoutes.GET("/ws", wsHandler.Serve)
	}

	ginRouter.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "Not Found",
			"The requested resource was not found on this server.")
	})

	return ginRouter
}
