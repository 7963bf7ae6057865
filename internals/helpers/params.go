package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tabletennis_backend/internals/helpers/apperror"
)

// ParseUUIDParam reads a path id. An id that is not a UUID cannot name any
// record, so it is reported as not found.
func ParseUUIDParam(c *fiber.Ctx, name, what string) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Params(name))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.NotFound("%s %s not found", what, raw)
	}
	return id, nil
}

// ParseUUIDQuery reads an optional query filter; blank gives nil.
func ParseUUIDQuery(c *fiber.Ctx, name string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperror.ValidationFields(map[string][]string{name: {"uuid"}})
	}
	return &id, nil
}
