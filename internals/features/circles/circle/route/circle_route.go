package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	circleController "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/circles/circle/controller"
)

// AdminCircleRoutes mounts circle management under the admin group.
func AdminCircleRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := circleController.NewCircleController(db)

	admin.Post("/circles", ctrl.CreateCircle)
	admin.Get("/circles", ctrl.GetCircles)
	admin.Get("/circles/:id", ctrl.GetCircle)
	admin.Put("/circles/:id", ctrl.UpdateCircle)
	admin.Delete("/circles/:id", ctrl.DeleteCircle)
	admin.Post("/circles/:id/members", ctrl.AssignMembers)
}

// SupervisorCircleRoutes exposes a supervisor's own circle.
func SupervisorCircleRoutes(supervisor fiber.Router, db *gorm.DB) {
	ctrl := circleController.NewCircleController(db)

	supervisor.Get("/circle", ctrl.GetMyCircle)
}
