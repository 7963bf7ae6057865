package helper

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"tabletennis_backend/internals/helpers/apperror"
)

var validate = newValidator()

// field errors are reported under their json names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ParseAndValidate decodes the JSON body into dst and runs the validate tags.
// A body that cannot be decoded is a malformed request; tag failures are
// validation errors carrying per-field details.
func ParseAndValidate(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperror.Malformed("invalid request payload", err)
	}
	return Validate(dst)
}

func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		if fields := ValidationFields(err); len(fields) > 0 {
			return apperror.ValidationFields(fields)
		}
		return apperror.Validation(err.Error())
	}
	return nil
}
