package main

import (
	"log"

	"agency-tracker-api/internal/config"
	"agency-tracker-api/internal/database"
	"agency-tracker-api/internal/routes"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	cfg := config.Load()

	database.InitDB(cfg.Database)

	ginRoutes := routes.SetupRoutes()

	addr := ":" + cfg.Server.Port
	log.Printf("Server starting on %s (%s)", addr, cfg.Server.Environment)
	log.Println("API endpoints:")
	log.Println("  POST   /api/login")
	log.Println("  GET    /api/tasks")
	log.Println("  POST   /api/tasks")
	log.Println("  GET    /api/tasks/:id")
	log.Println("  PATCH  /api/tasks/:id")
	log.Println("  PATCH  /api/tasks/:id/payment")
	log.Println("  GET    /api/tasks/:id/comments")
	log.Println("  POST   /api/tasks/:id/comments")
	log.Println("  GET    /api/dashboard")
	log.Println("  GET    /api/reports/summary")
	log.Println("  CRUD   /api/clients /api/projects /api/users")
	log.Println("  GET    /health")

	if err := ginRoutes.Run(addr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
