package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/constants"
	cardRoute "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/cards/card/route"
	circleRoute "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/circles/circle/route"
	reportRoute "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/reports/report/route"
	settingRoute "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/settings/setting/route"
	authRoute "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/users/auth/route"
	userRoute "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/users/user/route"
	authMiddleware "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/middlewares/auth"
)

// SetupRoutes wires every feature group onto the app.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	BaseRoutes(app)

	api := app.Group("/api")

	// Public.
	authRoute.AuthRoutes(api, db)
	settingRoute.PublicSettingRoutes(api, db)

	// Session endpoints: any authenticated account, active or not.
	authRoute.ProtectedAuthRoutes(api, db)

	// Participant self-service: approved accounts only.
	participant := api.Group("/participant",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.ActiveOnly(),
	)
	cardRoute.ParticipantCardRoutes(participant, db)

	// Circle management: supervisors and admins.
	supervisor := api.Group("/supervisor",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles("هذه الصفحة مخصصة للمشرفين",
			constants.RoleSupervisor, constants.RoleSuperAdmin),
	)
	cardRoute.SupervisorCardRoutes(supervisor, db)
	circleRoute.SupervisorCircleRoutes(supervisor, db)
	reportRoute.SupervisorReportRoutes(supervisor, db)

	// Administration: super admin only.
	admin := app.Group("/admin",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles("هذه الصفحة مخصصة للإدارة", constants.RoleSuperAdmin),
	)
	userRoute.AdminUserRoutes(admin, db)
	circleRoute.AdminCircleRoutes(admin, db)
	reportRoute.AdminReportRoutes(admin, db)
	settingRoute.AdminSettingRoutes(admin, db)
}
