package handlers

import (
	"bytes"
	"strings"

	"github.com/fenilmodi00/ipo-dashboard/models"
	"github.com/fenilmodi00/ipo-dashboard/services"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type DatasetHandler struct {
	Service  *services.CachedDashboardService
	Importer *services.HTMLImporter
}

func NewDatasetHandler(service *services.CachedDashboardService, importer *services.HTMLImporter) *DatasetHandler {
	return &DatasetHandler{Service: service, Importer: importer}
}

// GetDataset returns the current snapshot metadata
func (h *DatasetHandler) GetDataset(c *fiber.Ctx) error {
	snapshot := h.Service.Dashboard().Store().Snapshot()
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"revision":  snapshot.Revision,
			"source":    snapshot.Source,
			"loaded_at": snapshot.LoadedAt,
			"records":   len(snapshot.Records),
		},
	})
}

// ReplaceDataset swaps the whole collection. The body is either a JSON array of
// records or, with a text/html content type, an HTML table export.
func (h *DatasetHandler) ReplaceDataset(c *fiber.Ctx) error {
	var (
		records []models.IPORecord
		source  string
	)

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMETextHTML) {
		imported, err := h.Importer.Import(bytes.NewReader(c.Body()))
		if err != nil {
			return errorResponse(c, err)
		}
		records, source = imported, "upload:html"
	} else {
		if err := c.BodyParser(&records); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid request body",
			})
		}
		for i := range records {
			if records[i].Tags == nil {
				records[i].Tags = []string{}
			}
		}
		source = "upload:json"
	}

	if err := h.Service.ReplaceDataset(records, source); err != nil {
		return errorResponse(c, err)
	}

	snapshot := h.Service.Dashboard().Store().Snapshot()
	logrus.WithFields(logrus.Fields{
		"component": "DatasetHandler",
		"records":   len(snapshot.Records),
		"revision":  snapshot.Revision,
	}).Info("Dataset replaced via API")

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Dataset replaced successfully",
		"data": fiber.Map{
			"revision": snapshot.Revision,
			"records":  len(snapshot.Records),
		},
	})
}
