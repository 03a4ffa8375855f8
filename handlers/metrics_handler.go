package handlers

import (
	"github.com/fenilmodi00/ipo-dashboard/services"
	"github.com/gofiber/fiber/v2"
)

type MetricsHandler struct {
	CachedDashboardService *services.CachedDashboardService
	UtilityService         *services.UtilityService
}

func NewMetricsHandler(cached *services.CachedDashboardService, utility *services.UtilityService) *MetricsHandler {
	return &MetricsHandler{
		CachedDashboardService: cached,
		UtilityService:         utility,
	}
}

// GetMetrics returns evaluation, import-parsing and cache statistics
func (h *MetricsHandler) GetMetrics(c *fiber.Ctx) error {
	metrics := map[string]interface{}{
		"dashboard":   h.CachedDashboardService.Dashboard().GetServiceMetrics().Snapshot(),
		"cache_stats": h.CachedDashboardService.GetCacheStats(),
	}
	if h.UtilityService != nil {
		metrics["parsing"] = h.UtilityService.GetServiceMetrics().Snapshot()
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    metrics,
	})
}

// ClearCache drops every cached dashboard view
func (h *MetricsHandler) ClearCache(c *fiber.Ctx) error {
	h.CachedDashboardService.InvalidateAll()
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Cache cleared successfully",
	})
}

// ResetMetrics zeroes the dashboard and import-parsing metrics
func (h *MetricsHandler) ResetMetrics(c *fiber.Ctx) error {
	h.CachedDashboardService.Dashboard().GetServiceMetrics().Reset()
	if h.UtilityService != nil {
		h.UtilityService.GetServiceMetrics().Reset()
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Metrics reset successfully",
	})
}
