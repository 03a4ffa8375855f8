package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fenilmodi00/ipo-dashboard/config"
	"github.com/fenilmodi00/ipo-dashboard/data"
	"github.com/fenilmodi00/ipo-dashboard/database"
	"github.com/fenilmodi00/ipo-dashboard/handlers"
	"github.com/fenilmodi00/ipo-dashboard/jobs"
	"github.com/fenilmodi00/ipo-dashboard/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load config
	cfg := config.LoadConfig()
	unified := cfg.Unified()
	config.ConfigureLogging(unified.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Resolve the startup dataset
	utilityService := services.NewUtilityService()
	importer := services.NewHTMLImporter(utilityService)

	records, source, err := data.Load(ctx, cfg, importer)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	defer database.Close()

	store, err := services.NewDatasetStore(records, source)
	if err != nil {
		log.Fatalf("Dataset failed validation: %v", err)
	}

	// Query layer with caching
	dashboardService := services.NewDashboardService(store, unified.Query.CeilingYear)
	cacheService := services.NewCacheService(unified.Cache.DefaultTTL, unified.Cache.MaxSize)
	cachedDashboard := services.NewCachedDashboardService(dashboardService, cacheService)

	logrus.WithFields(logrus.Fields{
		"records":      len(records),
		"source":       source,
		"ceiling_year": unified.Query.CeilingYear,
		"cache_ttl":    unified.Cache.DefaultTTL,
		"cache_size":   unified.Cache.MaxSize,
	}).Info("IPO dashboard services initialized")

	jobs.NewCacheCleanupJob(cacheService, unified.Cache.CleanupInterval).Start(ctx)

	// Setup Fiber
	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	handlers.New(cachedDashboard, importer, utilityService).Register(app, unified.Service.EnableMetrics)

	go func() {
		<-ctx.Done()
		dashboardService.GetServiceMetrics().LogSummary()
		if err := app.Shutdown(); err != nil {
			logrus.WithError(err).Error("Server shutdown failed")
		}
	}()

	// Start server
	log.Printf("Server starting on port %s", unified.Service.Port)
	if err := app.Listen(":" + unified.Service.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
