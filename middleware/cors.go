package middleware

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func CORS() fiber.Handler {
	allowOrigins := os.Getenv("ALLOWORIGINS")
	if allowOrigins == "" {
		// the UI is usually served from another origin during development
		allowOrigins = "*"
	}
	fmt.Println("CORS AllowOrigins:", allowOrigins)
	return cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
	})
}
