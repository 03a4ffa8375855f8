package handlers

import (
	"time"

	"github.com/fenilmodi00/ipo-dashboard/services"
	"github.com/gofiber/fiber/v2"
)

// Handlers bundles everything the route table needs
type Handlers struct {
	Dashboard *DashboardHandler
	Chart     *ChartHandler
	Dataset   *DatasetHandler
	Metrics   *MetricsHandler
}

func New(cached *services.CachedDashboardService, importer *services.HTMLImporter, utility *services.UtilityService) *Handlers {
	return &Handlers{
		Dashboard: NewDashboardHandler(cached),
		Chart:     NewChartHandler(cached.Dashboard()),
		Dataset:   NewDatasetHandler(cached, importer),
		Metrics:   NewMetricsHandler(cached, utility),
	}
}

// Register mounts the health check and /api/v1 routes on app
func (h *Handlers) Register(app *fiber.App, enableMetrics bool) {
	app.Get("/health", func(c *fiber.Ctx) error {
		snapshot := h.Dashboard.Service.Dashboard().Store().Snapshot()
		return c.JSON(fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().Unix(),
			"records":   len(snapshot.Records),
			"revision":  snapshot.Revision,
		})
	})

	api := app.Group("/api/v1")

	// Table and autocomplete
	api.Get("/ipos", h.Dashboard.GetIPOs)
	api.Get("/suggestions", h.Dashboard.GetSuggestions)

	// Charts
	charts := api.Group("/charts")
	charts.Get("/yearly", h.Chart.GetYearlyCounts)
	charts.Get("/scatter", h.Chart.GetScatter)

	// Dataset
	api.Get("/dataset", h.Dataset.GetDataset)
	api.Put("/dataset", h.Dataset.ReplaceDataset)

	if enableMetrics {
		api.Get("/metrics", h.Metrics.GetMetrics)
		api.Delete("/metrics", h.Metrics.ResetMetrics)
		api.Delete("/cache", h.Metrics.ClearCache)
	}
}
