package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	cardController "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/cards/card/controller"
)

// ParticipantCardRoutes mounts the self-service card endpoints. The group is
// already gated by auth + active-status middleware.
func ParticipantCardRoutes(participant fiber.Router, db *gorm.DB) {
	ctrl := cardController.NewParticipantCardController(db)

	participant.Post("/cards", ctrl.CreateCard)
	participant.Get("/cards", ctrl.GetMyCards)
	participant.Get("/cards/:date", ctrl.GetMyCardByDate)
	participant.Get("/stats", ctrl.GetMyStats)
}

// SupervisorCardRoutes mounts the circle-management endpoints. The group is
// already gated to supervisor/super_admin.
func SupervisorCardRoutes(supervisor fiber.Router, db *gorm.DB) {
	ctrl := cardController.NewSupervisorCardController(db)

	supervisor.Get("/members", ctrl.GetMembers)
	supervisor.Get("/members/:id/cards", ctrl.GetMemberCards)
	supervisor.Put("/members/:id/cards", ctrl.UpsertMemberCard)
	supervisor.Delete("/members/:id/cards/:date", ctrl.DeleteMemberCard)

	supervisor.Get("/leaderboard", ctrl.GetLeaderboard)
	supervisor.Get("/daily-summary", ctrl.GetDailySummary)
	supervisor.Get("/range-summary", ctrl.GetRangeSummary)
	supervisor.Get("/weekly-summary", ctrl.GetWeeklySummary)
}
