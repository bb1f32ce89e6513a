package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	reportController "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/reports/report/controller"
)

// AdminReportRoutes mounts analytics and import/export under the admin group.
func AdminReportRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := reportController.NewAdminReportController(db)

	admin.Get("/analytics", ctrl.GetAnalytics)
	admin.Get("/analytics/members", ctrl.GetAnalyticsMembers)
	admin.Get("/export/cards", ctrl.ExportCards)
	admin.Get("/export/users", ctrl.ExportUsers)
	admin.Get("/import/template", ctrl.ImportTemplate)
	admin.Post("/import/users", ctrl.ImportUsers)
}

// SupervisorReportRoutes mounts the circle card export under the supervisor
// group.
func SupervisorReportRoutes(supervisor fiber.Router, db *gorm.DB) {
	ctrl := reportController.NewSupervisorReportController(db)

	supervisor.Get("/export/cards", ctrl.ExportCircleCards)
}
