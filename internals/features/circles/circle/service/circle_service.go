package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/constants"
	circleModel "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/circles/circle/model"
	userDto "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/users/user/dto"
	userModel "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/users/user/model"
)

// Info is the denormalized circle view handed to response builders.
type Info struct {
	ID              uint
	Name            string
	SupervisorID    *uint
	SupervisorName  string
	SupervisorPhone string
}

// LoadInfo fetches circles (all when ids is nil) with their supervisors in
// two queries, keyed by circle id.
func LoadInfo(db *gorm.DB, ids []uint) (map[uint]Info, error) {
	var circles []circleModel.CircleModel
	q := db.Model(&circleModel.CircleModel{})
	if ids != nil {
		q = q.Where("id IN ?", ids)
	}
	if err := q.Find(&circles).Error; err != nil {
		return nil, err
	}

	supIDs := make([]uint, 0, len(circles))
	for _, c := range circles {
		if c.SupervisorID != nil {
			supIDs = append(supIDs, *c.SupervisorID)
		}
	}
	supervisors := map[uint]userModel.UserModel{}
	if len(supIDs) > 0 {
		var rows []userModel.UserModel
		if err := db.Where("id IN ?", supIDs).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, u := range rows {
			supervisors[u.ID] = u
		}
	}

	infos := make(map[uint]Info, len(circles))
	for _, c := range circles {
		info := Info{ID: c.ID, Name: c.Name, SupervisorID: c.SupervisorID}
		if c.SupervisorID != nil {
			if sup, ok := supervisors[*c.SupervisorID]; ok {
				info.SupervisorName = sup.FullName
				info.SupervisorPhone = sup.Phone
			}
		}
		infos[c.ID] = info
	}
	return infos, nil
}

// InfoForUsers loads just the circles referenced by the given users.
func InfoForUsers(db *gorm.DB, users []userModel.UserModel) (map[uint]Info, error) {
	seen := map[uint]bool{}
	ids := []uint{}
	for _, u := range users {
		if u.CircleID != nil && !seen[*u.CircleID] {
			seen[*u.CircleID] = true
			ids = append(ids, *u.CircleID)
		}
	}
	if len(ids) == 0 {
		return map[uint]Info{}, nil
	}
	return LoadInfo(db, ids)
}

// UserContext assembles the relation facts for one user's response.
func UserContext(db *gorm.DB, u userModel.UserModel, infos map[uint]Info) *userDto.UserContext {
	ctx := &userDto.UserContext{}
	if u.CircleID != nil {
		if info, ok := infos[*u.CircleID]; ok {
			ctx.CircleName = info.Name
			ctx.SupervisorName = info.SupervisorName
			ctx.SupervisorPhone = info.SupervisorPhone
		}
	}
	if u.Role == constants.RoleSupervisor || u.Role == constants.RoleSuperAdmin {
		var led circleModel.CircleModel
		if err := db.Where("supervisor_id = ?", u.ID).First(&led).Error; err == nil {
			ctx.SupervisedCircleName = led.Name
		}
	}
	return ctx
}

// BySupervisor finds the circle a supervisor leads.
func BySupervisor(db *gorm.DB, supervisorID uint) (*circleModel.CircleModel, error) {
	var c circleModel.CircleModel
	err := db.Where("supervisor_id = ?", supervisorID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ActiveMembers lists the active roster: the circle's members, or every
// active participant when circleID is nil ("all circles" for admins).
func ActiveMembers(db *gorm.DB, circleID *uint) ([]userModel.UserModel, error) {
	var members []userModel.UserModel
	q := db.Where("status = ?", constants.StatusActive)
	if circleID != nil {
		q = q.Where("circle_id = ?", *circleID)
	} else {
		q = q.Where("role = ?", constants.RoleParticipant)
	}
	if err := q.Order("full_name ASC").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}
