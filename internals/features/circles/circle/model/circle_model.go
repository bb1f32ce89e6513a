package model

import (
	"time"

	userModel "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/users/user/model"
)

// CircleModel is a halqa: a named group of participants under at most one
// supervisor. A supervisor leads at most one circle; reassignment strips the
// previous circle first.
type CircleModel struct {
	ID           uint      `gorm:"column:id;primaryKey" json:"id"`
	Name         string    `gorm:"column:name;type:varchar(200);uniqueIndex;not null" json:"name"`
	SupervisorID *uint     `gorm:"column:supervisor_id;index" json:"supervisor_id"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Supervisor *userModel.UserModel `gorm:"foreignKey:SupervisorID" json:"-"`
	Members    []userModel.UserModel `gorm:"foreignKey:CircleID" json:"-"`
}

func (CircleModel) TableName() string {
	return "circles"
}
