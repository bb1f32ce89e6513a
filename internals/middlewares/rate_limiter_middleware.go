package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func newLimiter(max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": message,
			})
		},
	})
}

// Global limiter for all ordinary endpoints.
func GlobalRateLimiter() fiber.Handler {
	return newLimiter(100, time.Minute, "❌ طلبات كثيرة جداً. حاول مرة أخرى لاحقاً.")
}

// Stricter limiter for login attempts.
func LoginRateLimiter() fiber.Handler {
	return newLimiter(5, time.Minute, "❌ محاولات دخول كثيرة. حاول بعد قليل.")
}

// Limiter for registrations.
func RegisterRateLimiter() fiber.Handler {
	return newLimiter(3, 5*time.Minute, "❌ محاولات تسجيل كثيرة. انتظر بضع دقائق.")
}

// Limiter for forgot-password requests.
func ForgotPasswordRateLimiter() fiber.Handler {
	return newLimiter(2, 10*time.Minute, "❌ طلبات إعادة تعيين كثيرة. حاول خلال ١٠ دقائق.")
}
