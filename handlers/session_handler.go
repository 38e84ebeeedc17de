package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kirill778/flowchart/models"
	"github.com/kirill778/flowchart/services"
)

type SessionHandler struct {
	sessionService     *services.SessionService
	modelConfigService *services.ModelConfigService
}

func NewSessionHandler(sessionService *services.SessionService, modelConfigService *services.ModelConfigService) *SessionHandler {
	return &SessionHandler{
		sessionService:     sessionService,
		modelConfigService: modelConfigService,
	}
}

func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	session, err := h.sessionService.Create(c.Context())
	if err != nil {
		return mapServiceError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	session, err := h.sessionService.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(session)
}

func (h *SessionHandler) DeleteSession(c *fiber.Ctx) error {
	if err := h.sessionService.Delete(c.Context(), c.Params("id")); err != nil {
		return mapServiceError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *SessionHandler) ResetSession(c *fiber.Ctx) error {
	session, err := h.sessionService.Reset(c.Context(), c.Params("id"))
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(session)
}

// SetModelConfig stores a per-session model override used by subsequent
// generate and chat calls.
func (h *SessionHandler) SetModelConfig(c *fiber.Ctx) error {
	sessionID := c.Params("id")

	var req models.ModelConfigReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if _, err := h.sessionService.Get(c.Context(), sessionID); err != nil {
		return mapServiceError(err)
	}

	config := &services.ModelConfig{Model: req.Model, Temperature: req.Temperature}
	if err := h.modelConfigService.SetSessionModelConfig(c.Context(), sessionID, config); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return c.JSON(config)
}
