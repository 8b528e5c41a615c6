package routes

import (
	"agency-tracker-api/internal/handlers"
	"agency-tracker-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes() *gin.Engine {
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

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Agency Tracker API is running",
		})
	})

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		api.POST("/login", handlers.Login)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware())
	{
		// Task endpoints (role scoping happens inside the engine)
		protectedRoutes.GET("/tasks", handlers.GetTasks)
		protectedRoutes.POST("/tasks", handlers.CreateTask)
		protectedRoutes.GET("/tasks/:id", handlers.GetTaskByID)
		protectedRoutes.PATCH("/tasks/:id", handlers.UpdateTask)
		protectedRoutes.GET("/tasks/:id/comments", handlers.GetTaskComments)
		protectedRoutes.POST("/tasks/:id/comments", handlers.CreateTaskComment)

		// Role-scoped dashboard
		protectedRoutes.GET("/dashboard", handlers.GetDashboard)

		// Realtime task events
		protectedRoutes.GET("/ws", handlers.WebSocketHandler)
	}

	// Admin routes
	adminRoutes := protectedRoutes.Group("")
	adminRoutes.Use(middleware.AdminRequired())
	{
		adminRoutes.PATCH("/tasks/:id/payment", handlers.ApplyTaskPayment)

		adminRoutes.GET("/reports/summary", handlers.GetReportSummary)

		adminRoutes.GET("/clients", handlers.GetClients)
		adminRoutes.POST("/clients", handlers.CreateClient)
		adminRoutes.PATCH("/clients/:id", handlers.UpdateClient)
		adminRoutes.DELETE("/clients/:id", handlers.DeleteClient)

		adminRoutes.GET("/projects", handlers.GetProjects)
		adminRoutes.POST("/projects", handlers.CreateProject)
		adminRoutes.GET("/projects/:id", handlers.GetProjectByID)
		adminRoutes.PATCH("/projects/:id", handlers.UpdateProject)
		adminRoutes.DELETE("/projects/:id", handlers.DeleteProject)

		adminRoutes.GET("/users", handlers.GetUsers)
		adminRoutes.POST("/users", handlers.CreateUser)
		adminRoutes.PATCH("/users/:id", handlers.UpdateUser)
		adminRoutes.DELETE("/users/:id", handlers.DeleteUser)
	}

	return ginRouter
}
