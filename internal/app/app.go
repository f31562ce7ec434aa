package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/flowtv/flowfeed/internal/config"
	"github.com/flowtv/flowfeed/internal/handlers"
	"github.com/flowtv/flowfeed/internal/middleware"
	"github.com/flowtv/flowfeed/internal/services"
)

type App struct {
	config   *config.Config
	logger   *logrus.Logger
	services *services.Services
	handlers *handlers.Handlers
	router   *gin.Engine
}

func New(cfg *config.Config) (*App, error) {
	app := &App{
		config: cfg,
		logger: setupLogger(cfg),
	}

	svc, err := services.New(cfg, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}
	app.services = svc
	app.handlers = handlers.New(app.logger, svc)

	app.setupRouter()

	return app, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application...")
	return nil
}

func setupLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

func (a *App) setupRouter() {
	if a.config.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(middleware.Logger(a.logger))
	router.Use(middleware.Recovery(a.logger))
	router.Use(middleware.CORS(a.config))

	// Health check endpoint
	router.GET("/health", a.handlers.Health.Check)

	// Prometheus metrics endpoint
	if a.config.Monitoring.Enabled {
		router.GET(a.config.Monitoring.MetricsPath, gin.WrapH(promhttp.Handler()))
	}

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/rank", a.handlers.Rank.Rank)

		interactions := api.Group("/interactions")
		{
			interactions.POST("", a.handlers.Interaction.Record)
			interactions.POST("/not-interested", a.handlers.Interaction.NotInterested)
		}

		api.GET("/persona", a.handlers.Discovery.Persona)
		api.GET("/discovery/queries", a.handlers.Discovery.Queries)

		profile := api.Group("/profile")
		{
			profile.GET("/stats", a.handlers.Profile.Stats)

			profile.GET("/blocked-topics", a.handlers.Profile.GetBlockedTopics)
			profile.PUT("/blocked-topics", a.handlers.Profile.AddBlockedTopics)
			profile.DELETE("/blocked-topics", a.handlers.Profile.RemoveBlockedTopics)

			profile.GET("/blocked-channels", a.handlers.Profile.GetBlockedChannels)
			profile.PUT("/blocked-channels", a.handlers.Profile.AddBlockedChannels)
			profile.DELETE("/blocked-channels", a.handlers.Profile.RemoveBlockedChannels)

			profile.GET("/preferred-topics", a.handlers.Profile.GetPreferredTopics)
			profile.PUT("/preferred-topics", a.handlers.Profile.SetPreferredTopics)
			profile.DELETE("/preferred-topics", a.handlers.Profile.ClearPreferredTopics)

			profile.POST("/onboarding", a.handlers.Profile.CompleteOnboarding)
			profile.POST("/reset", a.handlers.Profile.Reset)
		}
	}

	a.router = router
}
