package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	settingModel "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/settings/setting/model"
	helper "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/helpers"
)

type SettingController struct {
	DB *gorm.DB
}

func NewSettingController(db *gorm.DB) *SettingController {
	return &SettingController{DB: db}
}

func (sc *SettingController) GetSettings(c *fiber.Ctx) error {
	var s settingModel.SiteSettingModel
	if err := sc.DB.First(&s).Error; err != nil {
		log.Printf("[ERROR] read settings: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر جلب الإعدادات")
	}
	return helper.Success(c, "تم جلب الإعدادات", s)
}

type updateSettingsRequest struct {
	EnableEmailNotifications *bool `json:"enable_email_notifications"`
}

func (sc *SettingController) UpdateSettings(c *fiber.Ctx) error {
	var req updateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "صيغة الطلب غير صالحة")
	}

	var s settingModel.SiteSettingModel
	if err := sc.DB.First(&s).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر جلب الإعدادات")
	}

	if req.EnableEmailNotifications != nil {
		s.EnableEmailNotifications = *req.EnableEmailNotifications
	}
	if err := sc.DB.Save(&s).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر تحديث الإعدادات")
	}

	return helper.Success(c, "تم تحديث الإعدادات بنجاح", s)
}
