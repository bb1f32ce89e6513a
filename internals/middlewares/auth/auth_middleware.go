// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/configs"
	userModel "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/users/user/model"
)

func extractBearerToken(c *fiber.Ctx) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")), nil
	}
	if cookie := c.Cookies("token"); cookie != "" {
		return cookie, nil
	}
	return "", errors.New("التوكن مطلوب")
}

// AuthMiddleware verifies the access token and loads the account so
// downstream handlers see the *current* role and status, not the ones baked
// into the token at login time.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		if configs.JWTSecret == "" {
			log.Println("[ERROR] JWT_SECRET empty")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		if _, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(configs.JWTSecret), nil
		}); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "التوكن غير صالح أو منتهي الصلاحية")
		}

		sub, _ := claims["sub"].(string)
		userID, err := strconv.ParseUint(sub, 10, 64)
		if err != nil || userID == 0 {
			return fiber.NewError(fiber.StatusUnauthorized, "التوكن غير صالح")
		}

		var user userModel.UserModel
		if err := db.First(&user, uint(userID)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "المستخدم غير موجود")
			}
			log.Println("[ERROR] auth user lookup:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}

		c.Locals("user_id", user.ID)
		c.Locals("user_role", user.Role)
		c.Locals("user_status", user.Status)
		return c.Next()
	}
}

// ActiveOnly gates endpoints that require an approved account. Pending and
// rejected accounts can still hit /me and profile routes.
func ActiveOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, _ := c.Locals("user_status").(string)
		if status != "active" {
			return fiber.NewError(fiber.StatusForbidden, "الحساب غير مفعل")
		}
		return c.Next()
	}
}
