package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tabletennis_backend/internals/features/academy/students/controller"
)

func AllStudentRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewStudentController(db)

	students := api.Group("/students")
	students.Get("/", ctrl.GetAllStudents)
	students.Post("/", ctrl.CreateStudent)
	students.Get("/:id", ctrl.GetStudentByID)
	students.Put("/:id", ctrl.UpdateStudent)
	students.Delete("/:id", ctrl.DeleteStudent)
}
