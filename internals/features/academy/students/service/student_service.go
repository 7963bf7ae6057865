// file: internals/features/academy/students/service/student_service.go
package service

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "tabletennis_backend/internals/features/academy/students/model"
	paymentModel "tabletennis_backend/internals/features/finance/payments/model"
	"tabletennis_backend/internals/helpers/apperror"
)

type StudentService struct {
	DB *gorm.DB
}

func NewStudentService(db *gorm.DB) *StudentService {
	return &StudentService{DB: db}
}

func (s *StudentService) Create(ctx context.Context, m *model.StudentModel) error {
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return apperror.ValidationFields(map[string][]string{"name": {"required"}})
	}
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		return apperror.FromGorm("create student", err)
	}
	return nil
}

// List returns every student, most recently created first.
func (s *StudentService) List(ctx context.Context) ([]model.StudentModel, error) {
	rows := make([]model.StudentModel, 0)
	if err := s.DB.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, apperror.FromGorm("list students", err)
	}
	return rows, nil
}

func (s *StudentService) Get(ctx context.Context, id uuid.UUID) (*model.StudentModel, error) {
	var m model.StudentModel
	if err := s.DB.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, apperror.FromGorm("get student", err)
	}
	return &m, nil
}

// Update loads the student, lets apply mutate it and saves the result.
func (s *StudentService) Update(ctx context.Context, id uuid.UUID, apply func(*model.StudentModel) error) (*model.StudentModel, error) {
	var out model.StudentModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&out, "id = ?", id).Error; err != nil {
			return apperror.FromGorm("get student", err)
		}
		if err := apply(&out); err != nil {
			return err
		}
		out.Name = strings.TrimSpace(out.Name)
		if out.Name == "" {
			return apperror.ValidationFields(map[string][]string{"name": {"required"}})
		}
		if err := tx.Save(&out).Error; err != nil {
			return apperror.FromGorm("update student", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a student and all of its payments atomically and returns
// how many payments went with it.
func (s *StudentService) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	if err := s.DB.WithContext(ctx).Model(&model.StudentModel{}).
		Where("id = ?", id).Count(&n).Error; err != nil {
		return 0, apperror.FromGorm("check student", err)
	}
	if n == 0 {
		return 0, apperror.NotFound("student %s not found", id)
	}

	var deletedPayments int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("student_id = ?", id).Delete(&paymentModel.PaymentModel{})
		if res.Error != nil {
			return apperror.FromGorm("delete payments", res.Error)
		}
		deletedPayments = res.RowsAffected

		res = tx.Where("id = ?", id).Delete(&model.StudentModel{})
		if res.Error != nil {
			return apperror.FromGorm("delete student", res.Error)
		}
		if res.RowsAffected == 0 {
			// removed by someone else between the check and the delete
			return apperror.Conflict("student %s was deleted concurrently", id)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Printf("[StudentService] deleted student=%s payments=%d", id, deletedPayments)
	return deletedPayments, nil
}
