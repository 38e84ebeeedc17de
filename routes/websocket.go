package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/kirill778/flowchart/handlers"
)

func SetupWebSocketRoutes(app *fiber.App, wsHandler *handlers.WSHandler) {
	ws := app.Group("/ws")

	// WebSocket route
	ws.Use("/sessions/:id", wsHandler.WebSocketUpgrade)
	ws.Get("/sessions/:id", websocket.New(wsHandler.HandleSessionEvents))
}
