package main

import (
	"log"

	"todo-list-api/internal/config"
	"todo-list-api/internal/database"
	"todo-list-api/internal/routes"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to initialize database: ", err)
	}

	ginRoutes := routes.Setup(db, cfg)

	log.Printf("Server starting on %s", cfg.Addr)
	log.Println("API endpoints:")
	log.Println("  POST   /api/auth/signup")
	log.Println("  POST   /api/auth/signin")
	log.Println("  GET    /api/tasks")
	log.Println("  GET    /api/tasks/:task_id")
	log.Println("  POST   /api/tasks")
	log.Println("  PUT    /api/tasks/:task_id")
	log.Println("  PATCH  /api/tasks/:task_id/status")
	log.Println("  DELETE /api/tasks/:task_id")
	log.Println("  POST   /api/tasks/:task_id/subtasks")
	log.Println("  GET    /api/tasks/:task_id/subtasks")
	log.Println("  PUT    /api/tasks/:task_id/subtasks/:subtask_id")
	log.Println("  PATCH  /api/tasks/:task_id/subtasks/:subtask_id/status")
	log.Println("  DELETE /api/tasks/:task_id/subtasks/:subtask_id")
	log.Println("  GET    /api/ws")
	log.Println("  GET    /health")

	if err := ginRoutes.Run(cfg.Addr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
