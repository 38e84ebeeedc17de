package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kirill778/flowchart/handlers"
)

func RegisterExportRoutes(app *fiber.App, exportHandler *handlers.ExportHandler) {
	export := app.Group("api/sessions/:id")
	export.Get("/export", exportHandler.Export)
	export.Post("/share", exportHandler.Share)
}
