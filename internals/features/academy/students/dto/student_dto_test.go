package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "tabletennis_backend/internals/features/academy/students/model"
	"tabletennis_backend/internals/helpers/apperror"
)

func strPtr(s string) *string { return &s }

func TestUpdateRequestPatchSemantics(t *testing.T) {
	m := &model.StudentModel{Name: "Alice", Email: strPtr("a@example.com"), Phone: strPtr("123"), Amount: 100}

	var req UpdateStudentRequest
	require.NoError(t, json.Unmarshal([]byte(`{"amount":150,"email":null,"end_date":"2025-06-30"}`), &req))
	require.NoError(t, req.Validate())
	require.NoError(t, req.ApplyTo(m))

	assert.Equal(t, "Alice", m.Name)
	assert.Equal(t, 150.0, m.Amount)
	assert.Nil(t, m.Email)
	require.NotNil(t, m.Phone)
	assert.Equal(t, "123", *m.Phone)

	resp := FromModel(m)
	require.NotNil(t, resp.EndDate)
	assert.Equal(t, "2025-06-30", *resp.EndDate)
	assert.Nil(t, resp.StartDate)
}

func TestUpdateRequestValidate(t *testing.T) {
	var req UpdateStudentRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"  ","amount":-1,"status":"graduated"}`), &req))

	err := req.Validate()
	var ae *apperror.Error
	require.ErrorAs(t, err, &ae)
	assert.Contains(t, ae.Fields, "name")
	assert.Contains(t, ae.Fields, "amount")
	assert.Contains(t, ae.Fields, "status")
}

func TestCreateRequestRejectsBadDate(t *testing.T) {
	req := CreateStudentRequest{Name: "Alice", StartDate: strPtr("01/02/2024")}
	_, err := req.ToModel()
	assert.ErrorIs(t, err, apperror.ErrValidation)
}
