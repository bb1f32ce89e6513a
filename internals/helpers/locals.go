package helper

import (
	"github.com/gofiber/fiber/v2"
)

// GetUserID reads the authenticated user id set by the auth middleware.
func GetUserID(c *fiber.Ctx) (uint, error) {
	id, ok := c.Locals("user_id").(uint)
	if !ok || id == 0 {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "التوكن مطلوب")
	}
	return id, nil
}

// GetUserRole reads the authenticated role set by the auth middleware.
func GetUserRole(c *fiber.Ctx) string {
	role, _ := c.Locals("user_role").(string)
	return role
}
