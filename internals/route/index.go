// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tabletennis_backend/internals/configs"
	studentRoutes "tabletennis_backend/internals/features/academy/students/route"
	paymentRoutes "tabletennis_backend/internals/features/finance/payments/route"
	newsRoutes "tabletennis_backend/internals/features/news/posts/route"
	"tabletennis_backend/internals/helpers/storage"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg configs.AppConfig, store storage.BlobStore) {
	startTime = time.Now()

	log.Println("[INFO] Setting up base routes...")
	BaseRoutes(app, db, cfg)

	api := app.Group("/api")

	log.Println("[INFO] Mounting student routes...")
	studentRoutes.AllStudentRoutes(api, db)

	log.Println("[INFO] Mounting payment routes...")
	paymentRoutes.AllPaymentRoutes(api, db, cfg)

	log.Println("[INFO] Mounting news routes...")
	newsRoutes.AllNewsRoutes(api, db, store)
}
