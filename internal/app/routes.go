package app

import (
	"time"

	"taskflow/internal/handlers"
	"taskflow/internal/middleware"
	"taskflow/internal/repositories"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (a *App) newRouter() *gin.Engine {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "x-api-key"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}))
	r.Use(middleware.Metrics())

	// Liveness and scrape endpoints stay outside the api-key check so
	// probes work without credentials.
	r.GET("/health", handlers.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	repo := repositories.NewTaskRepository(a.db)
	taskHandler := handlers.NewTaskHandler(repo)

	tasks := r.Group("/tasks",
		middleware.APIKeyAuth(a.cfg.Auth.APIKey),
		middleware.RateLimit(a.cfg.RateLimit),
	)
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.GET("/:id", taskHandler.GetByID)
	tasks.PATCH("/:id", taskHandler.Patch)
	tasks.DELETE("/:id", taskHandler.Delete)

	return r
}
