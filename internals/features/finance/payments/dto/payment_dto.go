// file: internals/features/finance/payments/dto/payment_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "tabletennis_backend/internals/features/finance/payments/model"
	"tabletennis_backend/internals/helpers/apperror"
	"tabletennis_backend/internals/helpers/dbtime"
)

/* =========================================================
   REQUEST: CreatePayment
========================================================= */

type CreatePaymentRequest struct {
	StudentID     string   `json:"student_id"     validate:"required,uuid"`
	Amount        *float64 `json:"amount"         validate:"required,gt=0"`
	PaymentDate   string   `json:"payment_date"   validate:"required"`
	PaymentMethod *string  `json:"payment_method" validate:"omitempty,max=40"`
	Notes         *string  `json:"notes"`
	Status        *string  `json:"status"         validate:"omitempty,oneof=paid pending overdue"`
}

func (r CreatePaymentRequest) ToModel() (*model.PaymentModel, error) {
	sid, err := uuid.Parse(strings.TrimSpace(r.StudentID))
	if err != nil {
		return nil, apperror.ValidationFields(map[string][]string{"student_id": {"uuid"}})
	}
	d, err := dbtime.ParseDate(r.PaymentDate)
	if err != nil {
		return nil, apperror.ValidationFields(map[string][]string{"payment_date": {"date"}})
	}

	m := &model.PaymentModel{
		StudentID:     sid,
		Amount:        *r.Amount,
		PaymentDate:   dbtime.ToDate(d),
		PaymentMethod: trimPtr(r.PaymentMethod),
		Notes:         trimPtr(r.Notes),
	}
	if r.Status != nil {
		m.Status = model.PaymentStatus(*r.Status)
	}
	return m, nil
}

/* =========================================================
   REQUEST: Reconcile  PUT /payments/status/:studentId
========================================================= */

type ReconcileRequest struct {
	// Running amount paid so far.
	Amount *float64 `json:"amount" validate:"required,gte=0"`
}

/* =========================================================
   RESPONSE
========================================================= */

type PaymentResponse struct {
	ID            uuid.UUID           `json:"id"`
	StudentID     uuid.UUID           `json:"student_id"`
	Amount        float64             `json:"amount"`
	PaymentDate   string              `json:"payment_date"`
	PaymentMethod *string             `json:"payment_method"`
	Notes         *string             `json:"notes"`
	Status        model.PaymentStatus `json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
}

// PaymentListItem is a listing row. CurrentStatus is only set when
// read-time derivation is enabled.
type PaymentListItem struct {
	PaymentResponse
	StudentName   *string              `json:"student_name"`
	CurrentStatus *model.PaymentStatus `json:"current_status,omitempty"`
}

func FromModel(m *model.PaymentModel) PaymentResponse {
	return PaymentResponse{
		ID:            m.ID,
		StudentID:     m.StudentID,
		Amount:        m.Amount,
		PaymentDate:   dbtime.FormatDate(m.PaymentDate),
		PaymentMethod: m.PaymentMethod,
		Notes:         m.Notes,
		Status:        m.Status,
		CreatedAt:     m.CreatedAt,
	}
}

func FromModels(rows []model.PaymentModel) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}

// FromRows maps joined rows. derive, when non-nil, fills CurrentStatus.
func FromRows(rows []model.PaymentWithStudent, derive func(*model.PaymentModel) model.PaymentStatus) []PaymentListItem {
	out := make([]PaymentListItem, 0, len(rows))
	for i := range rows {
		item := PaymentListItem{
			PaymentResponse: FromModel(&rows[i].PaymentModel),
			StudentName:     rows[i].StudentName,
		}
		if derive != nil {
			cs := derive(&rows[i].PaymentModel)
			item.CurrentStatus = &cs
		}
		out = append(out, item)
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
