package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type StudentStatus string

const (
	StudentStatusPending  StudentStatus = "pending"
	StudentStatusActive   StudentStatus = "active"
	StudentStatusInactive StudentStatus = "inactive"
)

type StudentModel struct {
	ID uuid.UUID `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`

	Name    string  `gorm:"column:name;type:text;not null" json:"name"`
	Email   *string `gorm:"column:email;type:text"         json:"email,omitempty"`
	Phone   *string `gorm:"column:phone;type:varchar(40)"  json:"phone,omitempty"`
	Package *string `gorm:"column:package;type:text"       json:"package,omitempty"`

	StartDate *datatypes.Date `gorm:"column:start_date;type:date" json:"start_date,omitempty"`
	EndDate   *datatypes.Date `gorm:"column:end_date;type:date"   json:"end_date,omitempty"`

	// Total tuition / package price.
	Amount float64        `gorm:"column:amount;type:numeric(12,2);not null;default:0" json:"amount"`
	Status *StudentStatus `gorm:"column:status;type:varchar(20)"                      json:"status,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"       json:"updated_at"`
}

func (StudentModel) TableName() string { return "students" }

func (m *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
