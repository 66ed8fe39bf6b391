// Package app wires configuration, the store, and the HTTP surface together.
package app

import (
	"fmt"

	"taskflow/internal/config"
	"taskflow/internal/database"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type App struct {
	cfg    *config.Config
	db     *gorm.DB
	router *gin.Engine
}

// New opens the store, runs the migration bootstrap, and builds the router.
// The database handle is owned by the App and shared by reference; there is
// no other process-wide mutable state.
func New(cfg *config.Config) (*App, error) {
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := database.Migrate(db, database.Migrations()); err != nil {
		database.Close(db)
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	a := &App{cfg: cfg, db: db}
	a.router = a.newRouter()
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Close() error {
	return database.Close(a.db)
}
