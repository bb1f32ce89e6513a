package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/users/user/controller"
)

// AdminUserRoutes mounts user management under the admin group. The group is
// already gated to super_admin.
func AdminUserRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := userController.NewUserAdminController(db)

	admin.Get("/registrations", ctrl.GetPendingRegistrations)
	admin.Post("/registrations/:id/approve", ctrl.ApproveRegistration)
	admin.Post("/registrations/:id/reject", ctrl.RejectRegistration)
	admin.Post("/registrations/bulk-approve", ctrl.BulkApprove)
	admin.Post("/registrations/bulk-reject", ctrl.BulkReject)

	admin.Get("/users", ctrl.GetUsers)
	admin.Get("/users/:id", ctrl.GetUser)
	admin.Put("/users/:id", ctrl.UpdateUser)
	admin.Post("/users/:id/reset-password", ctrl.ResetUserPassword)
	admin.Post("/users/:id/withdraw", ctrl.WithdrawUser)
	admin.Post("/users/:id/activate", ctrl.ActivateUser)
	admin.Post("/users/:id/role", ctrl.SetRole)
	admin.Post("/users/:id/circle", ctrl.AssignCircle)
	admin.Post("/users/bulk-assign-circle", ctrl.BulkAssignCircle)
	admin.Post("/users/bulk-activate", ctrl.BulkActivate)
	admin.Post("/users/bulk-withdraw", ctrl.BulkWithdraw)
}
