package model

// SiteSettingModel is the single global settings row.
type SiteSettingModel struct {
	ID                       uint `gorm:"column:id;primaryKey" json:"id"`
	EnableEmailNotifications bool `gorm:"column:enable_email_notifications;default:true" json:"enable_email_notifications"`
}

func (SiteSettingModel) TableName() string {
	return "site_settings"
}
