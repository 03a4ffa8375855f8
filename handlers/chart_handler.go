package handlers

import (
	"github.com/fenilmodi00/ipo-dashboard/models"
	"github.com/fenilmodi00/ipo-dashboard/services"
	"github.com/gofiber/fiber/v2"
)

type ChartHandler struct {
	Service *services.DashboardService
}

func NewChartHandler(service *services.DashboardService) *ChartHandler {
	return &ChartHandler{Service: service}
}

func (h *ChartHandler) GetYearlyCounts(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.Service.YearlyCounts(),
	})
}

// GetScatter returns points for ?x=&y= over the records matching ?q=.
// Axes default to IPO price against total return.
func (h *ChartHandler) GetScatter(c *fiber.Ctx) error {
	xField, err := models.ParseSortField(c.Query("x", string(models.SortIPOPrice)))
	if err != nil {
		return badRequest(c, "INVALID_SCATTER_AXIS", err)
	}
	yField, err := models.ParseSortField(c.Query("y", string(models.SortTotalReturn)))
	if err != nil {
		return badRequest(c, "INVALID_SCATTER_AXIS", err)
	}

	points, err := h.Service.Scatter(c.Query("q"), xField, yField)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    points,
	})
}
