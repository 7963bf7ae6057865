// file: internals/features/finance/payments/service/payment_service.go
package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	studentModel "tabletennis_backend/internals/features/academy/students/model"
	model "tabletennis_backend/internals/features/finance/payments/model"
	"tabletennis_backend/internals/helpers/apperror"
	"tabletennis_backend/internals/helpers/dbtime"
)

type PaymentService struct {
	DB *gorm.DB

	// ForeignKeys enables the student existence check on insert.
	ForeignKeys bool

	// Now is the academy clock; tests pin it.
	Now func() time.Time
}

func NewPaymentService(db *gorm.DB, foreignKeys bool) *PaymentService {
	return &PaymentService{DB: db, ForeignKeys: foreignKeys, Now: dbtime.Now}
}

// Today is the academy calendar date used for status derivation.
func (s *PaymentService) Today() time.Time {
	if s.Now == nil {
		return dbtime.Today()
	}
	return dbtime.DateOf(s.Now())
}

type ReconcileResult struct {
	Payments  []model.PaymentModel
	TotalPaid float64
	// Created is set when reconciliation inserted the first payment.
	Created bool
}

func (s *PaymentService) Create(ctx context.Context, p *model.PaymentModel) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if s.ForeignKeys {
			var n int64
			if err := tx.Model(&studentModel.StudentModel{}).
				Where("id = ?", p.StudentID).
				Count(&n).Error; err != nil {
				return apperror.FromGorm("check student", err)
			}
			if n == 0 {
				return apperror.ForeignKey("student %s does not exist", p.StudentID)
			}
		}
		if err := tx.Omit("Student").Create(p).Error; err != nil {
			return apperror.FromGorm("create payment", err)
		}
		return nil
	})
}

// List returns payments joined with the owning student's name, newest first.
// A nil studentID lists every payment.
func (s *PaymentService) List(ctx context.Context, studentID *uuid.UUID) ([]model.PaymentWithStudent, error) {
	q := s.DB.WithContext(ctx).
		Table("payments AS p").
		Select("p.*, s.name AS student_name").
		Joins("LEFT JOIN students AS s ON s.id = p.student_id")
	if studentID != nil {
		q = q.Where("p.student_id = ?", *studentID)
	}

	rows := make([]model.PaymentWithStudent, 0)
	if err := q.Order("p.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, apperror.FromGorm("list payments", err)
	}
	return rows, nil
}

// ListByStudent is List scoped to one student that must exist.
func (s *PaymentService) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.PaymentWithStudent, error) {
	var n int64
	if err := s.DB.WithContext(ctx).Model(&studentModel.StudentModel{}).
		Where("id = ?", studentID).Count(&n).Error; err != nil {
		return nil, apperror.FromGorm("check student", err)
	}
	if n == 0 {
		return nil, apperror.NotFound("student %s not found", studentID)
	}
	return s.List(ctx, &studentID)
}

func (s *PaymentService) Get(ctx context.Context, id uuid.UUID) (*model.PaymentModel, error) {
	var p model.PaymentModel
	if err := s.DB.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, apperror.FromGorm("get payment", err)
	}
	return &p, nil
}

func (s *PaymentService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&model.PaymentModel{})
	if res.Error != nil {
		return apperror.FromGorm("delete payment", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("payment %s not found", id)
	}
	return nil
}

// Reconcile re-derives a student's payment statuses from newAmount, the
// running amount paid so far. With no payments yet it records newAmount as
// the first payment. All reads and writes share one transaction.
func (s *PaymentService) Reconcile(ctx context.Context, studentID uuid.UUID, newAmount float64) (*ReconcileResult, error) {
	today := s.Today()
	out := &ReconcileResult{}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var st studentModel.StudentModel
		if err := tx.First(&st, "id = ?", studentID).Error; err != nil {
			return apperror.FromGorm("load student", err)
		}

		var payments []model.PaymentModel
		if err := tx.Where("student_id = ?", studentID).
			Order("payment_date ASC, created_at ASC").
			Find(&payments).Error; err != nil {
			return apperror.FromGorm("load payments", err)
		}

		if len(payments) == 0 {
			method := model.PaymentMethodSystem
			p := model.PaymentModel{
				StudentID:     st.ID,
				Amount:        newAmount,
				PaymentDate:   dbtime.ToDate(today),
				PaymentMethod: &method,
				Status:        SyntheticStatus(newAmount, st.Amount),
			}
			if err := tx.Omit("Student").Create(&p).Error; err != nil {
				return apperror.FromGorm("create payment", err)
			}
			out.Payments = []model.PaymentModel{p}
			out.Created = true
			out.TotalPaid = SumAmounts(out.Payments)
			return nil
		}

		for i := range payments {
			next := ReconciledStatus(newAmount, st.Amount, time.Time(payments[i].PaymentDate), today)
			if next == payments[i].Status {
				continue
			}
			if err := tx.Model(&model.PaymentModel{}).
				Where("id = ?", payments[i].ID).
				Update("status", next).Error; err != nil {
				return apperror.FromGorm("update payment status", err)
			}
			payments[i].Status = next
		}
		out.Payments = payments
		out.TotalPaid = SumAmounts(payments)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[PaymentService] reconciled student=%s payments=%d total_paid=%.2f created=%v",
		studentID, len(out.Payments), out.TotalPaid, out.Created)
	return out, nil
}
