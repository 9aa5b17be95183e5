package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ideaspark/ideaspark/internal/pkg/cache"
	"github.com/ideaspark/ideaspark/internal/pkg/database"
	"github.com/ideaspark/ideaspark/internal/pkg/env"
	"github.com/ideaspark/ideaspark/internal/pkg/router"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "3001")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()

	// External credentials are hard requirements: refuse to start without
	// them instead of failing on the first request that needs them.
	if err := env.RequireEnv(
		"STRIPE_SECRET_KEY",
		"OPENAI_API_KEY",
		"YOUTUBE_API_KEY",
		"DB_USER",
		"DB_PASSWORD",
		"DB_NAME",
	); err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	database.SetupDatabase()
	cache.SetupCache()

	app := fiber.New(fiber.Config{
		AppName: "ideaspark",
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ROUTER
	router.InstallRouter(app)

	return app
}
