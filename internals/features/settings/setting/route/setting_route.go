package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	settingController "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/settings/setting/controller"
)

// PublicSettingRoutes exposes the read-only settings endpoint.
func PublicSettingRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := settingController.NewSettingController(db)
	api.Get("/settings", ctrl.GetSettings)
}

// AdminSettingRoutes mounts the settings editor under the admin group.
func AdminSettingRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := settingController.NewSettingController(db)
	admin.Put("/settings", ctrl.UpdateSettings)
}
