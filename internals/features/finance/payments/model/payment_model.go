package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	studentModel "tabletennis_backend/internals/features/academy/students/model"
)

type PaymentModel struct {
	ID uuid.UUID `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`

	// FK → students.id (ON DELETE CASCADE)
	StudentID uuid.UUID `gorm:"column:student_id;type:varchar(36);not null;index" json:"student_id"`

	Amount        float64        `gorm:"column:amount;type:numeric(12,2);not null" json:"amount"`
	PaymentDate   datatypes.Date `gorm:"column:payment_date;type:date;not null"    json:"payment_date"`
	PaymentMethod *string        `gorm:"column:payment_method;type:varchar(40)"    json:"payment_method,omitempty"`
	Notes         *string        `gorm:"column:notes;type:text"                    json:"notes,omitempty"`

	Status PaymentStatus `gorm:"column:status;type:varchar(10);not null;default:'pending';check:chk_payments_status,status IN ('paid','pending','overdue')" json:"status"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Student *studentModel.StudentModel `gorm:"foreignKey:StudentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (PaymentModel) TableName() string { return "payments" }

func (m *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Status == "" {
		m.Status = PaymentStatusPending
	}
	return nil
}

// PaymentWithStudent is the LEFT JOIN row used by listings.
type PaymentWithStudent struct {
	PaymentModel
	StudentName *string `gorm:"column:student_name"`
}
