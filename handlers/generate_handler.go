package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kirill778/flowchart/models"
	"github.com/kirill778/flowchart/services"
)

type GenerateHandler struct {
	generateService *services.GenerateService
}

func NewGenerateHandler(generateService *services.GenerateService) *GenerateHandler {
	return &GenerateHandler{generateService: generateService}
}

// Generate builds a fresh diagram from the request text, replacing whatever
// the session held before.
func (h *GenerateHandler) Generate(c *fiber.Ctx) error {
	sessionID := c.Params("id")

	var req models.GenerateReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	diagram, fallback, err := h.generateService.Generate(c.Context(), sessionID, req.Text, models.Direction(req.Direction))
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(models.GenerateResp{Diagram: diagram, Fallback: fallback})
}
