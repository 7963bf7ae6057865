package routes

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tabletennis_backend/internals/configs"
	helper "tabletennis_backend/internals/helpers"
	"tabletennis_backend/internals/helpers/storage"
	middlewares "tabletennis_backend/internals/middlewares"
)

// NewApp builds the fiber app with the full middleware chain and routes.
func NewApp(db *gorm.DB, cfg configs.AppConfig, store storage.BlobStore) *fiber.App {
	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler:          helper.ErrorHandler,
		BodyLimit:             cfg.BodyLimitMB * 1024 * 1024,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           90 * time.Second,
	})

	middlewares.SetupMiddlewares(app, cfg)
	SetupRoutes(app, db, cfg, store)
	return app
}
