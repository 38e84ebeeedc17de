package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/kirill778/flowchart/models"
	"github.com/kirill778/flowchart/services"
)

type DiagramHandler struct {
	diagramService *services.DiagramService
}

func NewDiagramHandler(diagramService *services.DiagramService) *DiagramHandler {
	return &DiagramHandler{diagramService: diagramService}
}

func (h *DiagramHandler) AddNode(c *fiber.Ctx) error {
	var req models.AddNodeReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	label := strings.TrimSpace(req.Label)
	if label == "" {
		return fiber.NewError(fiber.StatusBadRequest, "label is required")
	}

	diagram, err := h.diagramService.AddNode(c.Context(), c.Params("id"), label)
	if err != nil {
		return mapServiceError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(diagram)
}

func (h *DiagramHandler) UpdateNode(c *fiber.Ctx) error {
	var req models.UpdateNodeReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	label := strings.TrimSpace(req.Label)
	if label == "" {
		return fiber.NewError(fiber.StatusBadRequest, "label is required")
	}

	diagram, err := h.diagramService.UpdateNode(c.Context(), c.Params("id"), c.Params("node_id"), label)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(diagram)
}

func (h *DiagramHandler) DeleteNode(c *fiber.Ctx) error {
	diagram, err := h.diagramService.DeleteNode(c.Context(), c.Params("id"), c.Params("node_id"))
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(diagram)
}

func (h *DiagramHandler) AddEdge(c *fiber.Ctx) error {
	source, target, err := parseEdgeReq(c)
	if err != nil {
		return err
	}

	diagram, err := h.diagramService.Connect(c.Context(), c.Params("id"), source, target)
	if err != nil {
		return mapServiceError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(diagram)
}

func (h *DiagramHandler) RemoveEdge(c *fiber.Ctx) error {
	source, target, err := parseEdgeReq(c)
	if err != nil {
		return err
	}

	diagram, err := h.diagramService.Disconnect(c.Context(), c.Params("id"), source, target)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(diagram)
}

// Relayout re-flows every node for a new direction.
func (h *DiagramHandler) Relayout(c *fiber.Ctx) error {
	var req models.LayoutReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	diagram, err := h.diagramService.Relayout(c.Context(), c.Params("id"), models.Direction(req.Direction))
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(diagram)
}

func parseEdgeReq(c *fiber.Ctx) (source, target string, err error) {
	var req models.EdgeReq
	if err := c.BodyParser(&req); err != nil {
		return "", "", fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if req.Source == "" || req.Target == "" {
		return "", "", fiber.NewError(fiber.StatusBadRequest, "source and target are required")
	}
	return req.Source, req.Target, nil
}
