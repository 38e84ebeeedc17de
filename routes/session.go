package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kirill778/flowchart/handlers"
)

func RegisterSessionRoutes(app *fiber.App, sessionHandler *handlers.SessionHandler, generateHandler *handlers.GenerateHandler, chatHandler *handlers.ChatHandler) {
	sessions := app.Group("api/sessions")
	sessions.Post("/", sessionHandler.CreateSession)
	sessions.Get("/:id", sessionHandler.GetSession)
	sessions.Delete("/:id", sessionHandler.DeleteSession)
	sessions.Post("/:id/reset", sessionHandler.ResetSession)
	sessions.Put("/:id/model", sessionHandler.SetModelConfig)
	sessions.Post("/:id/generate", generateHandler.Generate)
	sessions.Post("/:id/chat", chatHandler.SendMessage)
}
