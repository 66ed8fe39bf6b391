// Command seed loads a handful of sample tasks straight into the store.
package main

import (
	"log"

	"taskflow/internal/config"
	"taskflow/internal/database"
	"taskflow/internal/models"
)

func strptr(s string) *string { return &s }

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db, database.Migrations()); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	tasks := []models.Task{
		{Title: "Set up project structure", Description: "Create api, tui, and data packages", Assignee: strptr("Web"), Status: models.StatusDone},
		{Title: "Design task schema", Description: "SQLite table for tasks with status, assignee", Assignee: strptr("Data"), Status: models.StatusDone},
		{Title: "Build REST API", Description: "CRUD endpoints for /tasks", Assignee: strptr("API"), Status: models.StatusInProgress},
		{Title: "Create task board view", Description: "Display tasks grouped by status", Assignee: strptr("Web"), Status: models.StatusTodo},
		{Title: "Add filtering", Description: "Filter tasks by status and assignee", Assignee: strptr("Web"), Status: models.StatusTodo},
	}

	for i := range tasks {
		if err := db.Create(&tasks[i]).Error; err != nil {
			log.Fatalf("seed task %q: %v", tasks[i].Title, err)
		}
	}
	log.Printf("Seeded %d tasks.", len(tasks))
}
