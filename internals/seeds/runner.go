// Package seeds loads demo students, payments and news into an empty database.
package seeds

import (
	"context"
	_ "embed"
	"fmt"
	"log"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	studentDto "tabletennis_backend/internals/features/academy/students/dto"
	studentModel "tabletennis_backend/internals/features/academy/students/model"
	paymentDto "tabletennis_backend/internals/features/finance/payments/dto"
	newsDto "tabletennis_backend/internals/features/news/posts/dto"
	newsModel "tabletennis_backend/internals/features/news/posts/model"
)

//go:embed data/students.json
var studentsJSON []byte

//go:embed data/news.json
var newsJSON []byte

type PaymentSeed struct {
	Amount        float64 `json:"amount"`
	PaymentDate   string  `json:"payment_date"`
	PaymentMethod *string `json:"payment_method"`
	Notes         *string `json:"notes"`
	Status        *string `json:"status"`
}

type StudentSeed struct {
	studentDto.CreateStudentRequest
	Payments []PaymentSeed `json:"payments"`
}

// Run seeds each table only when it is empty, so it is safe on every start.
func Run(ctx context.Context, db *gorm.DB) error {
	if err := seedStudents(ctx, db); err != nil {
		return err
	}
	return seedNews(ctx, db)
}

func seedStudents(ctx context.Context, db *gorm.DB) error {
	var n int64
	if err := db.WithContext(ctx).Model(&studentModel.StudentModel{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		log.Printf("ℹ️ students already has %d rows, skip seeding", n)
		return nil
	}

	var rows []StudentSeed
	if err := sonic.Unmarshal(studentsJSON, &rows); err != nil {
		return fmt.Errorf("decode students seed: %w", err)
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, s := range rows {
			s.Normalize()
			st, err := s.ToModel()
			if err != nil {
				return fmt.Errorf("student %q: %w", s.Name, err)
			}
			if err := tx.Create(st).Error; err != nil {
				return fmt.Errorf("insert student %q: %w", s.Name, err)
			}

			for _, p := range s.Payments {
				amount := p.Amount
				req := paymentDto.CreatePaymentRequest{
					StudentID:     st.ID.String(),
					Amount:        &amount,
					PaymentDate:   p.PaymentDate,
					PaymentMethod: p.PaymentMethod,
					Notes:         p.Notes,
					Status:        p.Status,
				}
				pm, err := req.ToModel()
				if err != nil {
					return fmt.Errorf("payment for %q: %w", s.Name, err)
				}
				if err := tx.Omit("Student").Create(pm).Error; err != nil {
					return fmt.Errorf("insert payment for %q: %w", s.Name, err)
				}
			}
			log.Printf("✅ seeded student %s (%d payments)", st.Name, len(s.Payments))
		}
		return nil
	})
}

func seedNews(ctx context.Context, db *gorm.DB) error {
	var n int64
	if err := db.WithContext(ctx).Model(&newsModel.NewsPostModel{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		log.Printf("ℹ️ news already has %d rows, skip seeding", n)
		return nil
	}

	var rows []newsDto.NewsRequest
	if err := sonic.Unmarshal(newsJSON, &rows); err != nil {
		return fmt.Errorf("decode news seed: %w", err)
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, r := range rows {
			m, err := r.ToModel()
			if err != nil {
				return err
			}
			if err := tx.Create(m).Error; err != nil {
				return fmt.Errorf("insert news %q: %w", m.Title, err)
			}
		}
		log.Printf("✅ seeded %d news posts", len(rows))
		return nil
	})
}
