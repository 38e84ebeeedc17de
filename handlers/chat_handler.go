package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kirill778/flowchart/models"
	"github.com/kirill778/flowchart/services"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// SendMessage appends a chat turn and returns the assistant answer together
// with the rebuilt diagram.
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	sessionID := c.Params("id")

	var req models.ChatReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	resp, err := h.chatService.SendMessage(c.Context(), sessionID, req.Message)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(resp)
}
