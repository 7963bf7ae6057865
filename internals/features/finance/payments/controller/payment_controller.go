// file: internals/features/finance/payments/controller/payment_controller.go
package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tabletennis_backend/internals/features/finance/payments/dto"
	model "tabletennis_backend/internals/features/finance/payments/model"
	"tabletennis_backend/internals/features/finance/payments/service"
	helper "tabletennis_backend/internals/helpers"
)

type PaymentController struct {
	Service *service.PaymentService

	// DeriveOnRead adds current_status to listings.
	DeriveOnRead bool
}

func NewPaymentController(db *gorm.DB, foreignKeys, deriveOnRead bool) *PaymentController {
	return &PaymentController{
		Service:      service.NewPaymentService(db, foreignKeys),
		DeriveOnRead: deriveOnRead,
	}
}

func (h *PaymentController) deriver() func(*model.PaymentModel) model.PaymentStatus {
	if !h.DeriveOnRead {
		return nil
	}
	today := h.Service.Today()
	return func(p *model.PaymentModel) model.PaymentStatus {
		return service.CurrentStatus(p.Status, time.Time(p.PaymentDate), today)
	}
}

/* =========================================================
   GET /api/payments?student_id=
========================================================= */

func (h *PaymentController) ListPayments(c *fiber.Ctx) error {
	studentID, err := helper.ParseUUIDQuery(c, "student_id")
	if err != nil {
		return err
	}
	rows, err := h.Service.List(c.UserContext(), studentID)
	if err != nil {
		return err
	}
	return helper.JsonData(c, fiber.StatusOK, dto.FromRows(rows, h.deriver()))
}

/* =========================================================
   GET /api/students/:id/payments
========================================================= */

func (h *PaymentController) ListStudentPayments(c *fiber.Ctx) error {
	studentID, err := helper.ParseUUIDParam(c, "id", "student")
	if err != nil {
		return err
	}
	rows, err := h.Service.ListByStudent(c.UserContext(), studentID)
	if err != nil {
		return err
	}
	return helper.JsonData(c, fiber.StatusOK, dto.FromRows(rows, h.deriver()))
}

/* =========================================================
   POST /api/payments
========================================================= */

func (h *PaymentController) CreatePayment(c *fiber.Ctx) error {
	var req dto.CreatePaymentRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return err
	}

	m, err := req.ToModel()
	if err != nil {
		return err
	}
	if err := h.Service.Create(c.UserContext(), m); err != nil {
		return err
	}
	return helper.JsonData(c, fiber.StatusCreated, dto.FromModel(m))
}

/* =========================================================
   DELETE /api/payments/:id
========================================================= */

func (h *PaymentController) DeletePayment(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id", "payment")
	if err != nil {
		return err
	}
	if err := h.Service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Payment deleted successfully", nil)
}

/* =========================================================
   PUT /api/payments/status/:studentId
========================================================= */

func (h *PaymentController) ReconcileStatus(c *fiber.Ctx) error {
	studentID, err := helper.ParseUUIDParam(c, "studentId", "student")
	if err != nil {
		return err
	}

	var req dto.ReconcileRequest
	if err := helper.ParseAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.Service.Reconcile(c.UserContext(), studentID, *req.Amount)
	if err != nil {
		return err
	}

	msg := "Payment status updated successfully"
	if res.Created {
		msg = "Payment recorded successfully"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"message":    msg,
		"payments":   dto.FromModels(res.Payments),
		"total_paid": res.TotalPaid,
	})
}
