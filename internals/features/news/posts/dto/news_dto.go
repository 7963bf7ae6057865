package dto

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	model "tabletennis_backend/internals/features/news/posts/model"
	"tabletennis_backend/internals/helpers/apperror"
	"tabletennis_backend/internals/helpers/dbtime"
)

// FlexBool accepts true/false, 1/0 and their string forms.
type FlexBool bool

func ParseFlexBool(s string) (FlexBool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off", "":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	if string(data) == "null" {
		*b = false
		return nil
	}
	v, err := ParseFlexBool(string(data))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

func (b *FlexBool) UnmarshalText(data []byte) error {
	v, err := ParseFlexBool(string(data))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

func (b FlexBool) Flag() int { return model.BoolToFlag(bool(b)) }

/* =========================================================
   REQUEST: Create / Update
   Pointers distinguish "not sent" from zero values.
========================================================= */

type NewsRequest struct {
	Title         *string   `json:"title"         validate:"omitempty,max=300"`
	Content       *string   `json:"content"`
	Category      *string   `json:"category"      validate:"omitempty,max=80"`
	Image         *string   `json:"image"`
	Status        *string   `json:"status"        validate:"omitempty,oneof=draft published"`
	IsBreaking    *FlexBool `json:"isBreaking"`
	IsHighlighted *FlexBool `json:"isHighlighted"`
	Date          *string   `json:"date"`
}

func (r NewsRequest) ToModel() (*model.NewsPostModel, error) {
	m := &model.NewsPostModel{}
	if err := r.ApplyTo(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (r NewsRequest) ApplyTo(m *model.NewsPostModel) error {
	if r.Title != nil {
		m.Title = strings.TrimSpace(*r.Title)
	}
	if r.Content != nil {
		m.Content = *r.Content
	}
	if r.Category != nil {
		m.Category = trimPtr(r.Category)
	}
	if r.Image != nil {
		m.Image = trimPtr(r.Image)
	}
	if r.Status != nil {
		m.Status = model.NewsStatus(strings.TrimSpace(*r.Status))
	}
	if r.IsBreaking != nil {
		m.IsBreaking = r.IsBreaking.Flag()
	}
	if r.IsHighlighted != nil {
		m.IsHighlighted = r.IsHighlighted.Flag()
	}
	if r.Date != nil {
		d, err := dbtime.ParseDatePtr(r.Date)
		if err != nil {
			return apperror.ValidationFields(map[string][]string{"date": {"date"}})
		}
		m.Date = d
	}
	return nil
}

/* =========================================================
   RESPONSE
========================================================= */

type NewsResponse struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Category      *string   `json:"category"`
	Image         *string   `json:"image"`
	Status        string    `json:"status"`
	IsBreaking    bool      `json:"isBreaking"`
	IsHighlighted bool      `json:"isHighlighted"`
	Date          *string   `json:"date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func FromModel(m *model.NewsPostModel) NewsResponse {
	return NewsResponse{
		ID:            m.ID,
		Title:         m.Title,
		Content:       m.Content,
		Category:      m.Category,
		Image:         m.Image,
		Status:        string(m.Status),
		IsBreaking:    m.IsBreaking != 0,
		IsHighlighted: m.IsHighlighted != 0,
		Date:          dbtime.FormatDatePtr(m.Date),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func FromModels(rows []model.NewsPostModel) []NewsResponse {
	out := make([]NewsResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
