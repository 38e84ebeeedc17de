package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"github.com/kirill778/flowchart/bootstrap"
	"github.com/kirill778/flowchart/config"
	"github.com/kirill778/flowchart/middleware"
	"github.com/kirill778/flowchart/pkg/logging"
	"github.com/kirill778/flowchart/routes"
)

func main() {
	// load .env before logging so APP_ENV/LOG_LEVEL take effect
	envErr := godotenv.Load()
	logging.Init()
	if envErr != nil {
		logging.Logger.Info("no .env file, using process environment")
	}

	cfg := config.LoadConfig()

	application, err := bootstrap.NewApp(cfg)
	if err != nil {
		logging.Logger.Error("failed to bootstrap", "error", err)
		os.Exit(1)
	}

	app := fiber.New()
	app.Use(middleware.Logger())
	app.Use(middleware.CORS())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	routes.RegisterSessionRoutes(app, application.Handlers.SessionHandler, application.Handlers.GenerateHandler, application.Handlers.ChatHandler)
	routes.RegisterDiagramRoutes(app, application.Handlers.DiagramHandler)
	routes.RegisterExportRoutes(app, application.Handlers.ExportHandler)
	routes.SetupWebSocketRoutes(app, application.Handlers.WSHandler)

	port := cfg.HttpPort
	if port == "" {
		port = "3000"
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logging.Logger.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			logging.Logger.Error("fail app.Shutdown", "error", err)
		}
	}()

	logging.Logger.Info("Server running", "port", port)
	if err := app.Listen(":" + port); err != nil {
		logging.Logger.Error("server stopped", "error", err)
	}
	if err := application.Shutdown(); err != nil {
		logging.Logger.Error("fail infrastructure shutdown", "error", err)
	}
}
