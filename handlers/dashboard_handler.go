package handlers

import (
	"errors"

	"github.com/fenilmodi00/ipo-dashboard/models"
	"github.com/fenilmodi00/ipo-dashboard/services"
	"github.com/fenilmodi00/ipo-dashboard/shared"
	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	Service *services.CachedDashboardService
}

func NewDashboardHandler(service *services.CachedDashboardService) *DashboardHandler {
	return &DashboardHandler{Service: service}
}

// GetIPOs returns the filtered, sorted table plus suggestions for ?q=&sort=&dir=
func (h *DashboardHandler) GetIPOs(c *fiber.Ctx) error {
	req := services.EvaluateRequest{Search: c.Query("q")}

	if raw := c.Query("sort"); raw != "" {
		field, err := models.ParseSortField(raw)
		if err != nil {
			return badRequest(c, "INVALID_SORT_FIELD", err)
		}
		req.Field = field
	}

	if raw := c.Query("dir"); raw != "" {
		direction, err := models.ParseSortDirection(raw)
		if err != nil {
			return badRequest(c, "INVALID_SORT_DIRECTION", err)
		}
		req.Direction = direction
	}

	view, err := h.Service.Evaluate(c.UserContext(), req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    view,
	})
}

// GetSuggestions returns autocomplete entries for ?q=
func (h *DashboardHandler) GetSuggestions(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.Service.Suggestions(c.Query("q")),
	})
}

func badRequest(c *fiber.Ctx, code string, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

// errorResponse maps validation failures to 400 and everything else to 500
func errorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	if category, ok := shared.CategoryOf(err); ok && category == shared.ErrorCategoryValidation {
		status = fiber.StatusBadRequest
	}

	body := fiber.Map{
		"success": false,
		"error":   err.Error(),
	}

	var serviceErr *shared.ServiceError
	if errors.As(err, &serviceErr) {
		body["code"] = serviceErr.Code
		if serviceErr.Details != nil {
			body["details"] = serviceErr.Details
		}
		if status == fiber.StatusInternalServerError {
			serviceErr.LogError()
		}
	}

	return c.Status(status).JSON(body)
}
