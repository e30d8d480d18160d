package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/weight-tracker/pkg/util"
)

// AdminOnly gates a route group to admin principals.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return apperrors.NewUnauthorized(MsgNotAuthenticated)
		}
		if err := RequireAdmin(user); err != nil {
			return err
		}
		return c.Next()
	}
}
