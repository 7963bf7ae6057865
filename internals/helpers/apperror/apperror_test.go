package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestErrorsIsMatchesOnKind(t *testing.T) {
	err := fmt.Errorf("delete student: %w", NotFound("student %s not found", "abc"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrConflict))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation: fiber.StatusUnprocessableEntity,
		KindMalformed:  fiber.StatusBadRequest,
		KindNotFound:   fiber.StatusNotFound,
		KindForeignKey: fiber.StatusConflict,
		KindConflict:   fiber.StatusConflict,
		KindStorage:    fiber.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, (&Error{Kind: kind}).HTTPStatus(), kind)
	}
}

func TestFromGorm(t *testing.T) {
	assert.Nil(t, FromGorm("noop", nil))
	assert.ErrorIs(t, FromGorm("find", gorm.ErrRecordNotFound), ErrNotFound)
	assert.ErrorIs(t, FromGorm("insert", gorm.ErrForeignKeyViolated), ErrForeignKey)
	assert.ErrorIs(t, FromGorm("insert", gorm.ErrDuplicatedKey), ErrConflict)

	wrapped := FromGorm("insert", errors.New("disk I/O error"))
	assert.ErrorIs(t, wrapped, ErrStorage)

	typed := Conflict("already gone")
	assert.Same(t, typed, FromGorm("delete", typed))
}
