// file: internals/helpers/locals.go
package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var (
	ErrNoUserID = errors.New("missing user id in token")
	ErrNoRole   = errors.New("missing role in token")
)

// GetUserIDFromLocals reads the user id stored by the auth middleware.
func GetUserIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	v, ok := c.Locals("user_id").(string)
	if !ok || v == "" {
		return uuid.Nil, ErrNoUserID
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, ErrNoUserID
	}
	return id, nil
}

func GetRoleFromLocals(c *fiber.Ctx) (string, error) {
	v, ok := c.Locals("user_role").(string)
	if !ok || v == "" {
		return "", ErrNoRole
	}
	return v, nil
}

func GetUserNameFromLocals(c *fiber.Ctx) string {
	v, _ := c.Locals("user_name").(string)
	return v
}
