package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type NewsStatus string

const (
	NewsStatusDraft     NewsStatus = "draft"
	NewsStatusPublished NewsStatus = "published"
)

type NewsPostModel struct {
	ID uuid.UUID `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`

	Title    string  `gorm:"column:title;type:text;not null" json:"title"`
	Content  string  `gorm:"column:content;type:text"        json:"content"`
	Category *string `gorm:"column:category;type:varchar(80);index" json:"category,omitempty"`

	// Public URL of the cover image, if any.
	Image *string `gorm:"column:image;type:text" json:"image,omitempty"`

	Status NewsStatus `gorm:"column:status;type:varchar(20);not null;default:'draft';index" json:"status"`

	// Flags are stored as 0/1.
	IsBreaking    int `gorm:"column:is_breaking;type:integer;not null;default:0"    json:"is_breaking"`
	IsHighlighted int `gorm:"column:is_highlighted;type:integer;not null;default:0" json:"is_highlighted"`

	Date *datatypes.Date `gorm:"column:date;type:date" json:"date,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"       json:"updated_at"`
}

func (NewsPostModel) TableName() string { return "news" }

func (m *NewsPostModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Status == "" {
		m.Status = NewsStatusDraft
	}
	return nil
}

// BoolToFlag normalizes a boolean to its stored 0/1 form.
func BoolToFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}
