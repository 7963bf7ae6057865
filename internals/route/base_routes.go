package routes

import (
	_ "embed"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	swgui "github.com/swaggest/swgui/v5cdn"
	"gorm.io/gorm"

	"tabletennis_backend/internals/configs"
	database "tabletennis_backend/internals/databases"
)

//go:embed static/openapi.yaml
var openapi []byte

func BaseRoutes(app *fiber.App, db *gorm.DB, cfg configs.AppConfig) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Table tennis academy API is running 🏓")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "Connected"
		serverStatus := "OK"
		httpStatus := fiber.StatusOK

		if err := database.Ping(db); err != nil {
			dbStatus = "Database connection error"
			serverStatus = "DOWN"
			httpStatus = fiber.StatusServiceUnavailable
		}

		return c.Status(httpStatus).JSON(fiber.Map{
			"status":         serverStatus,
			"database":       dbStatus,
			"driver":         cfg.Database.Driver,
			"server_time":    time.Now().Format(time.RFC3339),
			"uptime_seconds": int(time.Since(startTime).Seconds()),
			"environment":    os.Getenv("RAILWAY_ENVIRONMENT"),
		})
	})

	// API docs
	app.Get("/api/docs/openapi.yaml", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, "application/yaml")
		return c.Send(openapi)
	})
	app.Get("/api/docs/*", adaptor.HTTPHandler(
		swgui.New("Table Tennis Academy API", "/api/docs/openapi.yaml", "/api/docs/"),
	))

	// Uploaded images (local storage)
	app.Static(cfg.UploadURLBase, cfg.UploadDir, fiber.Static{
		MaxAge: 86400,
	})
}
