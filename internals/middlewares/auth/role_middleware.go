package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/constants"
)

// RoleMiddlewareWithCustomError checks the role loaded by AuthMiddleware.
// Super admins pass the active-status check implicitly (the primary admin
// must be able to recover a misconfigured account).
func RoleMiddlewareWithCustomError(allowedRoles []string, customForbiddenMessage string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("user_role").(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized: missing role information",
			})
		}

		status, _ := c.Locals("user_status").(string)
		if status != constants.StatusActive && role != constants.RoleSuperAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "الحساب غير مفعل",
			})
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}

		if customForbiddenMessage == "" {
			customForbiddenMessage = "ليس لديك صلاحية للوصول"
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": customForbiddenMessage,
		})
	}
}

// OnlyRoles is the short form used by route files.
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	return RoleMiddlewareWithCustomError(roles, customMessage)
}
