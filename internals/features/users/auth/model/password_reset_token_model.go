package model

import (
	"time"

	"gorm.io/gorm"
)

// PasswordResetToken is one issued 6-digit reset code. Codes live in the
// database so resets survive a restart; expired rows are swept by the
// cleanup scheduler.
type PasswordResetToken struct {
	ID        uint           `gorm:"column:id;primaryKey" json:"id"`
	Email     string         `gorm:"column:email;type:varchar(200);not null;index" json:"email"`
	Code      string         `gorm:"column:code;type:varchar(10);not null" json:"-"`
	ExpiresAt time.Time      `gorm:"column:expires_at;not null" json:"expires_at"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}
