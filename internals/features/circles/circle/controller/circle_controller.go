package controller

import (
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/constants"
	circleDto "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/circles/circle/dto"
	circleModel "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/circles/circle/model"
	"github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/circles/circle/service"
	userModel "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/users/user/model"
	helper "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/helpers"
)

type CircleController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewCircleController(db *gorm.DB) *CircleController {
	return &CircleController{DB: db, Validate: validator.New()}
}

func circleIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "معرف الحلقة غير صالح")
	}
	return uint(id), nil
}

// checkSupervisor verifies the candidate holds the supervisor or admin role.
func (cc *CircleController) checkSupervisor(id uint) (*userModel.UserModel, error) {
	var sup userModel.UserModel
	if err := cc.DB.First(&sup, id).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "المشرف غير موجود")
	}
	if sup.Role != constants.RoleSupervisor && sup.Role != constants.RoleSuperAdmin {
		return nil, fiber.NewError(fiber.StatusBadRequest, "المستخدم المحدد ليس مشرفاً")
	}
	return &sup, nil
}

// stripSupervisor frees the supervisor from any circle they currently lead.
// A supervisor leads at most one circle.
func stripSupervisor(tx *gorm.DB, supervisorID uint) error {
	return tx.Model(&circleModel.CircleModel{}).
		Where("supervisor_id = ?", supervisorID).
		Update("supervisor_id", nil).Error
}

func (cc *CircleController) response(circle circleModel.CircleModel) circleDto.CircleResponse {
	supervisorName := ""
	if circle.SupervisorID != nil {
		var sup userModel.UserModel
		if err := cc.DB.First(&sup, *circle.SupervisorID).Error; err == nil {
			supervisorName = sup.FullName
		}
	}
	var members []userModel.UserModel
	cc.DB.Where("circle_id = ?", circle.ID).Find(&members)
	return circleDto.NewCircleResponse(circle, supervisorName, members)
}

// =============================
// ⭕ CRUD
// =============================
func (cc *CircleController) CreateCircle(c *fiber.Ctx) error {
	var req circleDto.CreateCircleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "صيغة الطلب غير صالحة")
	}
	req.Normalize()
	if err := cc.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if req.SupervisorID != nil {
		if _, err := cc.checkSupervisor(*req.SupervisorID); err != nil {
			fe := err.(*fiber.Error)
			return helper.Error(c, fe.Code, fe.Message)
		}
	}

	circle := circleModel.CircleModel{Name: req.Name, SupervisorID: req.SupervisorID}
	err := cc.DB.Transaction(func(tx *gorm.DB) error {
		if req.SupervisorID != nil {
			if e := stripSupervisor(tx, *req.SupervisorID); e != nil {
				return e
			}
		}
		return tx.Create(&circle).Error
	})
	if err != nil {
		if helper.IsDuplicateKey(err) {
			return helper.Error(c, fiber.StatusConflict, "يوجد حلقة بهذا الاسم مسبقاً")
		}
		log.Printf("[ERROR] create circle: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر إنشاء الحلقة")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "تم إنشاء الحلقة بنجاح", cc.response(circle))
}

func (cc *CircleController) GetCircles(c *fiber.Ctx) error {
	var circles []circleModel.CircleModel
	if err := cc.DB.Order("name ASC").Find(&circles).Error; err != nil {
		log.Printf("[ERROR] list circles: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر جلب الحلقات")
	}

	out := make([]circleDto.CircleResponse, len(circles))
	for i, circle := range circles {
		out[i] = cc.response(circle)
	}
	return helper.Success(c, "تم جلب الحلقات", out)
}

func (cc *CircleController) GetCircle(c *fiber.Ctx) error {
	id, err := circleIDParam(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.Error(c, fe.Code, fe.Message)
	}

	var circle circleModel.CircleModel
	if err := cc.DB.First(&circle, id).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "الحلقة غير موجودة")
	}

	var members []userModel.UserModel
	cc.DB.Where("circle_id = ?", circle.ID).Order("full_name ASC").Find(&members)

	memberList := make([]fiber.Map, len(members))
	for i, m := range members {
		memberList[i] = fiber.Map{
			"id":        m.ID,
			"member_id": m.MemberID,
			"full_name": m.FullName,
			"gender":    m.Gender,
			"status":    m.Status,
		}
	}

	return helper.Success(c, "تم جلب الحلقة", fiber.Map{
		"circle":  cc.response(circle),
		"members": memberList,
	})
}

func (cc *CircleController) UpdateCircle(c *fiber.Ctx) error {
	id, err := circleIDParam(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.Error(c, fe.Code, fe.Message)
	}

	var req circleDto.UpdateCircleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "صيغة الطلب غير صالحة")
	}
	if err := cc.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var circle circleModel.CircleModel
	if err := cc.DB.First(&circle, id).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "الحلقة غير موجودة")
	}

	if req.SupervisorID != nil {
		if _, err := cc.checkSupervisor(*req.SupervisorID); err != nil {
			fe := err.(*fiber.Error)
			return helper.Error(c, fe.Code, fe.Message)
		}
	}

	err = cc.DB.Transaction(func(tx *gorm.DB) error {
		if req.Name != nil {
			circle.Name = *req.Name
		}
		if req.SupervisorID != nil {
			if e := stripSupervisor(tx, *req.SupervisorID); e != nil {
				return e
			}
			circle.SupervisorID = req.SupervisorID
		}
		return tx.Save(&circle).Error
	})
	if err != nil {
		if helper.IsDuplicateKey(err) {
			return helper.Error(c, fiber.StatusConflict, "يوجد حلقة بهذا الاسم مسبقاً")
		}
		log.Printf("[ERROR] update circle: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر تحديث الحلقة")
	}

	return helper.Success(c, "تم تحديث الحلقة بنجاح", cc.response(circle))
}

// DeleteCircle removes the circle and detaches its members.
func (cc *CircleController) DeleteCircle(c *fiber.Ctx) error {
	id, err := circleIDParam(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.Error(c, fe.Code, fe.Message)
	}

	var circle circleModel.CircleModel
	if err := cc.DB.First(&circle, id).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "الحلقة غير موجودة")
	}

	err = cc.DB.Transaction(func(tx *gorm.DB) error {
		e := tx.Model(&userModel.UserModel{}).
			Where("circle_id = ?", circle.ID).
			Update("circle_id", nil).Error
		if e != nil {
			return e
		}
		return tx.Delete(&circle).Error
	})
	if err != nil {
		log.Printf("[ERROR] delete circle: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر حذف الحلقة")
	}

	return helper.Success(c, "تم حذف الحلقة بنجاح", nil)
}

// GetMyCircle shows a supervisor their own circle with its roster.
func (cc *CircleController) GetMyCircle(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	circle, err := service.BySupervisor(cc.DB, userID)
	if err != nil {
		log.Printf("[ERROR] my circle: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر جلب الحلقة")
	}
	if circle == nil {
		return helper.Error(c, fiber.StatusNotFound, "لا توجد حلقة مسندة إليك")
	}

	var members []userModel.UserModel
	cc.DB.Where("circle_id = ?", circle.ID).Order("full_name ASC").Find(&members)

	memberList := make([]fiber.Map, len(members))
	for i, m := range members {
		memberList[i] = fiber.Map{
			"id":        m.ID,
			"member_id": m.MemberID,
			"full_name": m.FullName,
			"gender":    m.Gender,
			"phone":     m.Phone,
			"status":    m.Status,
		}
	}

	return helper.Success(c, "تم جلب الحلقة", fiber.Map{
		"circle":  cc.response(*circle),
		"members": memberList,
	})
}

// =============================
// 👥 MEMBERSHIP
// =============================
func (cc *CircleController) AssignMembers(c *fiber.Ctx) error {
	id, err := circleIDParam(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.Error(c, fe.Code, fe.Message)
	}

	var req circleDto.AssignMembersRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "صيغة الطلب غير صالحة")
	}
	if err := cc.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var circle circleModel.CircleModel
	if err := cc.DB.First(&circle, id).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "الحلقة غير موجودة")
	}

	res := cc.DB.Model(&userModel.UserModel{}).
		Where("id IN ?", req.UserIDs).
		Update("circle_id", circle.ID)
	if res.Error != nil {
		log.Printf("[ERROR] assign members: %v", res.Error)
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر إسناد الأعضاء")
	}

	return helper.Success(c, "تم إسناد الأعضاء للحلقة", fiber.Map{"assigned_count": res.RowsAffected})
}
