package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/constants"
)

// UserModel covers participants, supervisors and super admins. Circle
// membership is a bare foreign key; the circle side owns the relation so the
// two packages do not import each other.
type UserModel struct {
	ID             uint    `gorm:"column:id;primaryKey" json:"id"`
	MemberID       *int    `gorm:"column:member_id;unique;index" json:"member_id"`
	FullName       string  `gorm:"column:full_name;type:varchar(200);not null" json:"full_name"`
	Gender         string  `gorm:"column:gender;type:varchar(10);not null" json:"gender"`
	Age            int     `gorm:"column:age;not null" json:"age"`
	Phone          string  `gorm:"column:phone;type:varchar(30);not null" json:"phone"`
	Email          string  `gorm:"column:email;type:varchar(200);uniqueIndex;not null" json:"email"`
	PasswordHash   string  `gorm:"column:password_hash;type:varchar(200);not null" json:"-"`
	Country        string  `gorm:"column:country;type:varchar(100);not null" json:"country"`
	ReferralSource string  `gorm:"column:referral_source;type:text" json:"referral_source"`
	Status         string  `gorm:"column:status;type:varchar(20);default:pending;index" json:"status"`
	Role           string  `gorm:"column:role;type:varchar(20);default:participant;index" json:"role"`
	RejectionNote  *string `gorm:"column:rejection_note;type:text" json:"rejection_note"`
	CircleID       *uint   `gorm:"column:circle_id;index" json:"circle_id"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *UserModel) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

func (u *UserModel) IsActive() bool {
	return u.Status == constants.StatusActive
}

func (u *UserModel) IsSuperAdmin() bool {
	return u.Role == constants.RoleSuperAdmin
}

// NextMemberID returns the membership number for the next account, starting
// at MemberIDStart when the table is empty.
func NextMemberID(db *gorm.DB) (int, error) {
	var maxID *int
	if err := db.Model(&UserModel{}).Select("MAX(member_id)").Scan(&maxID).Error; err != nil {
		return 0, err
	}
	if maxID == nil {
		return constants.MemberIDStart, nil
	}
	return *maxID + 1, nil
}
