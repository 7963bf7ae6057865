package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tabletennis_backend/internals/databases/testdb"
	model "tabletennis_backend/internals/features/academy/students/model"
	paymentModel "tabletennis_backend/internals/features/finance/payments/model"
	"tabletennis_backend/internals/helpers/apperror"
	"tabletennis_backend/internals/helpers/dbtime"
)

func addPayments(t *testing.T, db *gorm.DB, studentID uuid.UUID, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		p := paymentModel.PaymentModel{
			StudentID:   studentID,
			Amount:      25,
			PaymentDate: dbtime.ToDate(time.Date(2024, 1, i+1, 0, 0, 0, 0, time.UTC)),
		}
		require.NoError(t, db.Omit("Student").Create(&p).Error)
	}
}

func countPayments(t *testing.T, db *gorm.DB, studentID uuid.UUID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&paymentModel.PaymentModel{}).Where("student_id = ?", studentID).Count(&n).Error)
	return n
}

func TestCreateRequiresName(t *testing.T) {
	svc := NewStudentService(testdb.New(t))

	err := svc.Create(context.Background(), &model.StudentModel{Name: "   "})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	st := &model.StudentModel{Name: " Alice ", Amount: 100}
	require.NoError(t, svc.Create(context.Background(), st))
	assert.NotEqual(t, uuid.Nil, st.ID)
	assert.Equal(t, "Alice", st.Name)
}

func TestListNewestFirst(t *testing.T) {
	svc := NewStudentService(testdb.New(t))
	ctx := context.Background()

	for _, name := range []string{"Alice", "Bob", "Cara"} {
		require.NoError(t, svc.Create(ctx, &model.StudentModel{Name: name}))
		time.Sleep(2 * time.Millisecond)
	}

	rows, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Cara", rows[0].Name)
	assert.Equal(t, "Alice", rows[2].Name)
}

func TestUpdate(t *testing.T) {
	svc := NewStudentService(testdb.New(t))
	ctx := context.Background()

	st := &model.StudentModel{Name: "Alice", Amount: 100}
	require.NoError(t, svc.Create(ctx, st))

	out, err := svc.Update(ctx, st.ID, func(m *model.StudentModel) error {
		m.Amount = 150
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 150.0, out.Amount)

	got, err := svc.Get(ctx, st.ID)
	require.NoError(t, err)
	assert.Equal(t, 150.0, got.Amount)
	assert.Equal(t, "Alice", got.Name)

	_, err = svc.Update(ctx, uuid.New(), func(*model.StudentModel) error { return nil })
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeleteCascadesPayments(t *testing.T) {
	db := testdb.New(t)
	svc := NewStudentService(db)
	ctx := context.Background()

	alice := &model.StudentModel{Name: "Alice", Amount: 100}
	bob := &model.StudentModel{Name: "Bob", Amount: 100}
	require.NoError(t, svc.Create(ctx, alice))
	require.NoError(t, svc.Create(ctx, bob))
	addPayments(t, db, alice.ID, 3)
	addPayments(t, db, bob.ID, 1)

	removed, err := svc.Delete(ctx, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, removed)
	assert.Zero(t, countPayments(t, db, alice.ID))
	assert.EqualValues(t, 1, countPayments(t, db, bob.ID))

	_, err = svc.Get(ctx, alice.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeleteMissingStudentChangesNothing(t *testing.T) {
	db := testdb.New(t)
	svc := NewStudentService(db)
	ctx := context.Background()

	bob := &model.StudentModel{Name: "Bob"}
	require.NoError(t, svc.Create(ctx, bob))
	addPayments(t, db, bob.ID, 2)

	_, err := svc.Delete(ctx, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.EqualValues(t, 2, countPayments(t, db, bob.ID))
}

func TestDeleteTwice(t *testing.T) {
	db := testdb.New(t)
	svc := NewStudentService(db)
	ctx := context.Background()

	st := &model.StudentModel{Name: "Alice"}
	require.NoError(t, svc.Create(ctx, st))
	addPayments(t, db, st.ID, 1)

	removed, err := svc.Delete(ctx, st.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	removed, err = svc.Delete(ctx, st.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Zero(t, removed)
}

func TestDeleteRollsBackOnFailure(t *testing.T) {
	db := testdb.New(t)
	svc := NewStudentService(db)
	ctx := context.Background()

	st := &model.StudentModel{Name: "Alice"}
	require.NoError(t, svc.Create(ctx, st))
	addPayments(t, db, st.ID, 2)

	require.NoError(t, db.Callback().Delete().Before("gorm:delete").Register("test:fail_students", func(tx *gorm.DB) {
		if tx.Statement.Table == "students" {
			_ = tx.AddError(errors.New("disk full"))
		}
	}))

	_, err := svc.Delete(ctx, st.ID)
	assert.ErrorIs(t, err, apperror.ErrStorage)

	// payments deleted inside the transaction are back
	assert.EqualValues(t, 2, countPayments(t, db, st.ID))
	_, err = svc.Get(ctx, st.ID)
	assert.NoError(t, err)
}

func TestDeleteConflictRollsBack(t *testing.T) {
	db := testdb.New(t)
	svc := NewStudentService(db)
	ctx := context.Background()

	st := &model.StudentModel{Name: "Alice"}
	require.NoError(t, svc.Create(ctx, st))
	addPayments(t, db, st.ID, 2)

	// another writer removes the student after the existence check
	require.NoError(t, db.Callback().Delete().Before("gorm:delete").Register("test:race_student", func(tx *gorm.DB) {
		if tx.Statement.Table != "students" {
			return
		}
		if _, err := tx.Statement.ConnPool.ExecContext(tx.Statement.Context, "DELETE FROM students WHERE id = ?", st.ID); err != nil {
			_ = tx.AddError(err)
		}
	}))

	removed, err := svc.Delete(ctx, st.ID)
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Zero(t, removed)

	// the transaction is rolled back as a whole
	assert.EqualValues(t, 2, countPayments(t, db, st.ID))
	_, err = svc.Get(ctx, st.ID)
	assert.NoError(t, err)
}
