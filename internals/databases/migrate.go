package database

import (
	"errors"
	"log"
	"os"

	"gorm.io/gorm"

	"github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/configs"
	"github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/constants"
	cardModel "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/cards/card/model"
	circleModel "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/circles/circle/model"
	settingModel "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/settings/setting/model"
	authModel "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/users/auth/model"
	userModel "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/users/user/model"
)

// Migrate creates the schema and seeds the super admin + settings row.
func Migrate() {
	if err := DB.AutoMigrate(
		&userModel.UserModel{},
		&circleModel.CircleModel{},
		&cardModel.DailyCardModel{},
		&settingModel.SiteSettingModel{},
		&authModel.PasswordResetToken{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}
	log.Println("✅ Schema migrated.")

	seedSiteSettings(DB)
	seedSuperAdmin(DB)
}

func seedSiteSettings(db *gorm.DB) {
	var s settingModel.SiteSettingModel
	err := db.First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := db.Create(&settingModel.SiteSettingModel{EnableEmailNotifications: true}).Error; err != nil {
			log.Printf("[ERROR] seed site_settings: %v", err)
		}
	} else if err != nil {
		log.Printf("[ERROR] read site_settings: %v", err)
	}
}

func seedSuperAdmin(db *gorm.DB) {
	email := configs.SuperAdminEmail
	password := os.Getenv("SUPER_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("⚠️ SUPER_ADMIN_EMAIL/PASSWORD not set; skipping admin seed")
		return
	}

	var existing userModel.UserModel
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[ERROR] super admin lookup: %v", err)
		return
	}

	admin := userModel.UserModel{
		FullName: "Super Admin",
		Gender:   "male",
		Age:      0,
		Phone:    "-",
		Email:    email,
		Country:  "-",
		Status:   constants.StatusActive,
		Role:     constants.RoleSuperAdmin,
	}
	if err := admin.SetPassword(password); err != nil {
		log.Printf("[ERROR] hash super admin password: %v", err)
		return
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("[ERROR] seed super admin: %v", err)
		return
	}
	log.Printf("✅ Super admin seeded: %s", email)
}
