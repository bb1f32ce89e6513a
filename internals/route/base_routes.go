package route

import (
	"time"

	"github.com/gofiber/fiber/v2"

	database "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/databases"
	helper "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/helpers"
)

var startedAt = time.Now()

func BaseRoutes(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		return helper.Success(c, "أهلاً بك في منصة بصيرة للبرنامج الرمضاني", fiber.Map{
			"service": "basira-api",
		})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "up"
		if sqlDB, err := database.DB.DB(); err != nil || sqlDB.Ping() != nil {
			dbStatus = "down"
		}
		return helper.Success(c, "ok", fiber.Map{
			"database": dbStatus,
			"uptime":   time.Since(startedAt).Round(time.Second).String(),
		})
	})
}
