package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kirill778/flowchart/models"
	"github.com/kirill778/flowchart/services"
)

type ExportHandler struct {
	exportService *services.ExportService
}

func NewExportHandler(exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// Export streams the rendered diagram; ?format=svg|dot|json, svg by default.
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	data, contentType, err := h.exportService.Export(c.Context(), c.Params("id"), c.Query("format", "svg"))
	if err != nil {
		return mapServiceError(err)
	}
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(data)
}

// Share uploads the rendered diagram to object storage and returns a
// presigned download URL.
func (h *ExportHandler) Share(c *fiber.Ctx) error {
	var req models.ShareReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	resp, err := h.exportService.Share(c.Context(), c.Params("id"), req.Format)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(resp)
}
