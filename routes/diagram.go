package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kirill778/flowchart/handlers"
)

func RegisterDiagramRoutes(app *fiber.App, diagramHandler *handlers.DiagramHandler) {
	diagram := app.Group("api/sessions/:id")
	diagram.Post("/nodes", diagramHandler.AddNode)
	diagram.Put("/nodes/:node_id", diagramHandler.UpdateNode)
	diagram.Delete("/nodes/:node_id", diagramHandler.DeleteNode)
	diagram.Post("/edges", diagramHandler.AddEdge)
	diagram.Delete("/edges", diagramHandler.RemoveEdge)
	diagram.Post("/layout", diagramHandler.Relayout)
}
