package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tabletennis_backend/internals/features/academy/students/dto"
	model "tabletennis_backend/internals/features/academy/students/model"
	"tabletennis_backend/internals/features/academy/students/service"
	helper "tabletennis_backend/internals/helpers"
	"tabletennis_backend/internals/helpers/apperror"
)

type StudentController struct {
	Service *service.StudentService
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{Service: service.NewStudentService(db)}
}

// GET /api/students
func (ctrl *StudentController) GetAllStudents(c *fiber.Ctx) error {
	rows, err := ctrl.Service.List(c.UserContext())
	if err != nil {
		return err
	}
	return helper.JsonData(c, fiber.StatusOK, dto.FromModels(rows))
}

// GET /api/students/:id
func (ctrl *StudentController) GetStudentByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id", "student")
	if err != nil {
		return err
	}
	m, err := ctrl.Service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonData(c, fiber.StatusOK, dto.FromModel(m))
}

// POST /api/students
func (ctrl *StudentController) CreateStudent(c *fiber.Ctx) error {
	var req dto.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.Malformed("invalid request payload", err)
	}
	req.Normalize()
	if err := helper.Validate(&req); err != nil {
		return err
	}

	m, err := req.ToModel()
	if err != nil {
		return err
	}
	if err := ctrl.Service.Create(c.UserContext(), m); err != nil {
		return err
	}
	return helper.JsonData(c, fiber.StatusCreated, dto.FromModel(m))
}

// PUT /api/students/:id
func (ctrl *StudentController) UpdateStudent(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id", "student")
	if err != nil {
		return err
	}

	var req dto.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.Malformed("invalid request payload", err)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	m, err := ctrl.Service.Update(c.UserContext(), id, func(m *model.StudentModel) error {
		return req.ApplyTo(m)
	})
	if err != nil {
		return err
	}
	return helper.JsonData(c, fiber.StatusOK, dto.FromModel(m))
}

// DELETE /api/students/:id
// Payments of the student are removed in the same transaction.
func (ctrl *StudentController) DeleteStudent(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id", "student")
	if err != nil {
		return err
	}

	removed, err := ctrl.Service.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Student and related payments deleted successfully", fiber.Map{
		"deletedPayments": removed,
	})
}
