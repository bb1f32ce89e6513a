package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/users/auth/controller"
	"github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/middlewares"
	authMiddleware "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/middlewares/auth"
)

// AuthRoutes mounts the public authentication endpoints.
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	auth := api.Group("/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/forgot-password", middlewares.ForgotPasswordRateLimiter(), ctrl.ForgotPassword)
	auth.Post("/reset-password", ctrl.ResetPassword)
}

// ProtectedAuthRoutes mounts the session endpoints behind the auth middleware.
func ProtectedAuthRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	auth := api.Group("/auth", authMiddleware.AuthMiddleware(db))
	auth.Get("/me", ctrl.Me)
	auth.Put("/profile", ctrl.UpdateProfile)
	auth.Post("/change-password", ctrl.ChangePassword)
}
