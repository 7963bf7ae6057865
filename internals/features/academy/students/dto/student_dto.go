// file: internals/features/academy/students/dto/student_dto.go
package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	model "tabletennis_backend/internals/features/academy/students/model"
	"tabletennis_backend/internals/helpers/apperror"
	"tabletennis_backend/internals/helpers/dbtime"
)

/* =========================================================
   PatchField tri-state (Unset / Null / Set(value))
========================================================= */

type PatchField[T any] struct {
	Set   bool `json:"-"`
	Null  bool `json:"-"`
	Value *T   `json:"-"`
}

func (p *PatchField[T]) UnmarshalJSON(b []byte) error {
	p.Set = true
	if string(b) == "null" {
		p.Null = true
		p.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	p.Value = &v
	return nil
}

func applyPtr[T any](dst **T, f PatchField[T]) {
	if f.Set {
		if f.Null {
			*dst = nil
		} else {
			*dst = f.Value
		}
	}
}

func applyVal[T any](dst *T, f PatchField[T]) {
	if f.Set && !f.Null && f.Value != nil {
		*dst = *f.Value
	}
}

/* =========================================================
   REQUEST: Create
========================================================= */

type CreateStudentRequest struct {
	Name      string   `json:"name"       validate:"required,max=200"`
	Email     *string  `json:"email"      validate:"omitempty,max=200"`
	Phone     *string  `json:"phone"      validate:"omitempty,max=40"`
	Package   *string  `json:"package"    validate:"omitempty,max=200"`
	StartDate *string  `json:"start_date"`
	EndDate   *string  `json:"end_date"`
	Amount    *float64 `json:"amount"     validate:"omitempty,gte=0"`
	Status    *string  `json:"status"     validate:"omitempty,oneof=pending active inactive"`
}

func (r *CreateStudentRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = trimPtr(r.Email)
	r.Phone = trimPtr(r.Phone)
	r.Package = trimPtr(r.Package)
}

func (r CreateStudentRequest) ToModel() (*model.StudentModel, error) {
	start, end, err := parseDates(r.StartDate, r.EndDate)
	if err != nil {
		return nil, err
	}
	m := &model.StudentModel{
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Package:   r.Package,
		StartDate: start,
		EndDate:   end,
	}
	if r.Amount != nil {
		m.Amount = *r.Amount
	}
	if r.Status != nil {
		st := model.StudentStatus(*r.Status)
		m.Status = &st
	}
	return m, nil
}

/* =========================================================
   REQUEST: Update (partial, absent fields are kept)
========================================================= */

type UpdateStudentRequest struct {
	Name      PatchField[string]  `json:"name"`
	Email     PatchField[string]  `json:"email"`
	Phone     PatchField[string]  `json:"phone"`
	Package   PatchField[string]  `json:"package"`
	StartDate PatchField[string]  `json:"start_date"`
	EndDate   PatchField[string]  `json:"end_date"`
	Amount    PatchField[float64] `json:"amount"`
	Status    PatchField[string]  `json:"status"`
}

// Validate checks the fields that were sent.
func (r UpdateStudentRequest) Validate() error {
	fields := map[string][]string{}
	if r.Name.Set && (r.Name.Null || r.Name.Value == nil || strings.TrimSpace(*r.Name.Value) == "") {
		fields["name"] = append(fields["name"], "required")
	}
	if r.Amount.Set && r.Amount.Value != nil && *r.Amount.Value < 0 {
		fields["amount"] = append(fields["amount"], "gte")
	}
	if r.Status.Set && r.Status.Value != nil {
		switch model.StudentStatus(*r.Status.Value) {
		case model.StudentStatusPending, model.StudentStatusActive, model.StudentStatusInactive:
		default:
			fields["status"] = append(fields["status"], "oneof")
		}
	}
	if len(fields) > 0 {
		return apperror.ValidationFields(fields)
	}
	return nil
}

func (r UpdateStudentRequest) ApplyTo(m *model.StudentModel) error {
	applyVal(&m.Name, r.Name)
	applyPtr(&m.Email, r.Email)
	applyPtr(&m.Phone, r.Phone)
	applyPtr(&m.Package, r.Package)
	applyVal(&m.Amount, r.Amount)

	if r.Status.Set {
		if r.Status.Null || r.Status.Value == nil {
			m.Status = nil
		} else {
			st := model.StudentStatus(*r.Status.Value)
			m.Status = &st
		}
	}
	if r.StartDate.Set {
		d, err := parseDateField("start_date", r.StartDate.Value)
		if err != nil {
			return err
		}
		m.StartDate = d
	}
	if r.EndDate.Set {
		d, err := parseDateField("end_date", r.EndDate.Value)
		if err != nil {
			return err
		}
		m.EndDate = d
	}
	return nil
}

/* =========================================================
   RESPONSE
========================================================= */

type StudentResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	Package   *string   `json:"package"`
	StartDate *string   `json:"start_date"`
	EndDate   *string   `json:"end_date"`
	Amount    float64   `json:"amount"`
	Status    *string   `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromModel(m *model.StudentModel) StudentResponse {
	var status *string
	if m.Status != nil {
		s := string(*m.Status)
		status = &s
	}
	return StudentResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Package:   m.Package,
		StartDate: dbtime.FormatDatePtr(m.StartDate),
		EndDate:   dbtime.FormatDatePtr(m.EndDate),
		Amount:    m.Amount,
		Status:    status,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func FromModels(rows []model.StudentModel) []StudentResponse {
	out := make([]StudentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}

/* =========================================================
   small utils
========================================================= */

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

func parseDateField(field string, s *string) (*datatypes.Date, error) {
	d, err := dbtime.ParseDatePtr(s)
	if err != nil {
		return nil, apperror.ValidationFields(map[string][]string{field: {"date"}})
	}
	return d, nil
}

func parseDates(start, end *string) (*datatypes.Date, *datatypes.Date, error) {
	s, err := parseDateField("start_date", start)
	if err != nil {
		return nil, nil, err
	}
	e, err := parseDateField("end_date", end)
	if err != nil {
		return nil, nil, err
	}
	return s, e, nil
}
