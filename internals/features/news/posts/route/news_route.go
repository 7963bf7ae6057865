package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tabletennis_backend/internals/features/news/posts/controller"
	"tabletennis_backend/internals/helpers/storage"
)

func AllNewsRoutes(api fiber.Router, db *gorm.DB, store storage.BlobStore) {
	ctrl := controller.NewNewsController(db, store)

	news := api.Group("/news")
	news.Get("/", ctrl.GetAllNews)
	news.Post("/", ctrl.CreateNews)
	news.Get("/:id", ctrl.GetNewsByID)
	news.Put("/:id", ctrl.UpdateNews)
	news.Delete("/:id", ctrl.DeleteNews)
}
