package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	studentModel "tabletennis_backend/internals/features/academy/students/model"
	paymentModel "tabletennis_backend/internals/features/finance/payments/model"
	newsModel "tabletennis_backend/internals/features/news/posts/model"
)

// Migrate creates or updates the canonical schema: students, payments (status
// CHECK, FK to students with ON DELETE CASCADE) and news.
func Migrate(db *gorm.DB) error {
	log.Println("[INFO] Running migrations...")
	if err := db.AutoMigrate(
		&studentModel.StudentModel{},
		&paymentModel.PaymentModel{},
		&newsModel.NewsPostModel{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
