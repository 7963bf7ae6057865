package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tabletennis_backend/internals/configs"
	"tabletennis_backend/internals/features/finance/payments/controller"
)

func AllPaymentRoutes(api fiber.Router, db *gorm.DB, cfg configs.AppConfig) {
	h := controller.NewPaymentController(db, cfg.Database.ForeignKeys, cfg.DeriveOnRead)

	payments := api.Group("/payments")
	payments.Get("/", h.ListPayments)
	payments.Post("/", h.CreatePayment)
	payments.Put("/status/:studentId", h.ReconcileStatus)
	payments.Delete("/:id", h.DeletePayment)

	api.Get("/students/:id/payments", h.ListStudentPayments)
}
