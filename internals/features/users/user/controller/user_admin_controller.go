package controller

import (
	"log"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/configs"
	"github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/constants"
	circleModel "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/circles/circle/model"
	circleService "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/circles/circle/service"
	userDto "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/users/user/dto"
	userModel "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/users/user/model"
	helper "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/helpers"
)

type UserAdminController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewUserAdminController(db *gorm.DB) *UserAdminController {
	return &UserAdminController{DB: db, Validate: validator.New()}
}

func userIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "معرف المستخدم غير صالح")
	}
	return uint(id), nil
}

// isPrimaryAdmin guards the bootstrap account against demotion and removal.
func isPrimaryAdmin(u *userModel.UserModel) bool {
	return configs.SuperAdminEmail != "" && u.Email == configs.SuperAdminEmail
}

func (uc *UserAdminController) respond(c *fiber.Ctx, msg string, users []userModel.UserModel, p *helper.Pagination) error {
	infos, err := circleService.InfoForUsers(uc.DB, users)
	if err != nil {
		log.Printf("[ERROR] circle info: %v", err)
		infos = map[uint]circleService.Info{}
	}
	out := make([]userDto.UserResponse, len(users))
	for i, u := range users {
		out[i] = userDto.NewUserResponse(u, circleService.UserContext(uc.DB, u, infos))
	}
	if p != nil {
		return helper.Success(c, msg, fiber.Map{"users": out, "pagination": p})
	}
	return helper.Success(c, msg, out)
}

// =============================
// 📋 REGISTRATIONS QUEUE
// =============================
func (uc *UserAdminController) GetPendingRegistrations(c *fiber.Ctx) error {
	var users []userModel.UserModel
	err := uc.DB.Where("status = ?", constants.StatusPending).
		Order("created_at ASC").Find(&users).Error
	if err != nil {
		log.Printf("[ERROR] pending registrations: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر جلب طلبات التسجيل")
	}
	return uc.respond(c, "تم جلب طلبات التسجيل", users, nil)
}

func (uc *UserAdminController) ApproveRegistration(c *fiber.Ctx) error {
	id, err := userIDParam(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.Error(c, fe.Code, fe.Message)
	}

	var user userModel.UserModel
	if err := uc.DB.First(&user, id).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "المستخدم غير موجود")
	}
	if user.Status != constants.StatusPending {
		return helper.Error(c, fiber.StatusBadRequest, "هذا الطلب ليس قيد المراجعة")
	}

	user.Status = constants.StatusActive
	user.RejectionNote = nil
	if err := uc.DB.Save(&user).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر اعتماد الطلب")
	}

	return helper.Success(c, "تم اعتماد التسجيل بنجاح", userDto.NewUserResponse(user, nil))
}

func (uc *UserAdminController) RejectRegistration(c *fiber.Ctx) error {
	id, err := userIDParam(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.Error(c, fe.Code, fe.Message)
	}

	var req userDto.RejectRegistrationRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return helper.Error(c, fiber.StatusBadRequest, "صيغة الطلب غير صالحة")
	}

	var user userModel.UserModel
	if err := uc.DB.First(&user, id).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "المستخدم غير موجود")
	}
	if user.Status != constants.StatusPending {
		return helper.Error(c, fiber.StatusBadRequest, "هذا الطلب ليس قيد المراجعة")
	}

	user.Status = constants.StatusRejected
	note := strings.TrimSpace(req.Note)
	if note != "" {
		user.RejectionNote = &note
	}
	if err := uc.DB.Save(&user).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر رفض الطلب")
	}

	return helper.Success(c, "تم رفض التسجيل", userDto.NewUserResponse(user, nil))
}

// =============================
// 👥 USERS LIST / DETAIL
// =============================
func (uc *UserAdminController) GetUsers(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := uc.DB.Model(&userModel.UserModel{})
	if v := c.Query("status"); v != "" {
		if !constants.ValidStatus(v) {
			return helper.Error(c, fiber.StatusBadRequest, "حالة غير صالحة")
		}
		q = q.Where("status = ?", v)
	}
	if v := c.Query("role"); v != "" {
		if !constants.ValidRole(v) {
			return helper.Error(c, fiber.StatusBadRequest, "دور غير صالح")
		}
		q = q.Where("role = ?", v)
	}
	if v := c.Query("gender"); v != "" {
		if v != "male" && v != "female" {
			return helper.Error(c, fiber.StatusBadRequest, "جنس غير صالح")
		}
		q = q.Where("gender = ?", v)
	}
	if v := c.Query("circle_id"); v != "" {
		if v == "none" {
			q = q.Where("circle_id IS NULL")
		} else if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			q = q.Where("circle_id = ?", uint(id))
		} else {
			return helper.Error(c, fiber.StatusBadRequest, "معرف الحلقة غير صالح")
		}
	}
	if v := strings.TrimSpace(c.Query("search")); v != "" {
		like := "%" + v + "%"
		q = q.Where("full_name ILIKE ? OR email ILIKE ? OR phone ILIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر جلب المستخدمين")
	}

	var users []userModel.UserModel
	err := q.Order("member_id ASC").Offset(p.Offset).Limit(p.Limit).Find(&users).Error
	if err != nil {
		log.Printf("[ERROR] list users: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر جلب المستخدمين")
	}

	pg := helper.BuildPagination(total, p)
	return uc.respond(c, "تم جلب المستخدمين", users, &pg)
}

func (uc *UserAdminController) GetUser(c *fiber.Ctx) error {
	id, err := userIDParam(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.Error(c, fe.Code, fe.Message)
	}

	var user userModel.UserModel
	if err := uc.DB.First(&user, id).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "المستخدم غير موجود")
	}
	return uc.respond(c, "تم جلب المستخدم", []userModel.UserModel{user}, nil)
}

func (uc *UserAdminController) UpdateUser(c *fiber.Ctx) error {
	id, err := userIDParam(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.Error(c, fe.Code, fe.Message)
	}

	var req userDto.AdminUserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "صيغة الطلب غير صالحة")
	}
	req.Normalize()
	if err := uc.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user userModel.UserModel
	if err := uc.DB.First(&user, id).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "المستخدم غير موجود")
	}
	if isPrimaryAdmin(&user) && req.Status != nil && *req.Status != constants.StatusActive {
		return helper.Error(c, fiber.StatusForbidden, "لا يمكن تعطيل حساب المدير الرئيسي")
	}

	req.ApplyToModel(&user)
	if err := uc.DB.Save(&user).Error; err != nil {
		log.Printf("[ERROR] update user: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر تحديث المستخدم")
	}

	return helper.Success(c, "تم تحديث المستخدم بنجاح", userDto.NewUserResponse(user, nil))
}

// =============================
// 🔐 ACCOUNT ACTIONS
// =============================
func (uc *UserAdminController) ResetUserPassword(c *fiber.Ctx) error {
	id, err := userIDParam(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.Error(c, fe.Code, fe.Message)
	}

	var req userDto.AdminResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "صيغة الطلب غير صالحة")
	}
	if err := uc.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user userModel.UserModel
	if err := uc.DB.First(&user, id).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "المستخدم غير موجود")
	}
	if err := user.SetPassword(req.NewPassword); err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر معالجة كلمة المرور")
	}
	if err := uc.DB.Save(&user).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر تحديث كلمة المرور")
	}

	return helper.Success(c, "تم إعادة تعيين كلمة المرور بنجاح", nil)
}

func (uc *UserAdminController) WithdrawUser(c *fiber.Ctx) error {
	return uc.setStatus(c, constants.StatusWithdrawn, "تم إيقاف الحساب")
}

func (uc *UserAdminController) ActivateUser(c *fiber.Ctx) error {
	return uc.setStatus(c, constants.StatusActive, "تم تفعيل الحساب")
}

func (uc *UserAdminController) setStatus(c *fiber.Ctx, status, msg string) error {
	id, err := userIDParam(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.Error(c, fe.Code, fe.Message)
	}

	var user userModel.UserModel
	if err := uc.DB.First(&user, id).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "المستخدم غير موجود")
	}
	if isPrimaryAdmin(&user) && status != constants.StatusActive {
		return helper.Error(c, fiber.StatusForbidden, "لا يمكن تعطيل حساب المدير الرئيسي")
	}

	user.Status = status
	if err := uc.DB.Save(&user).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر تحديث الحالة")
	}

	return helper.Success(c, msg, userDto.NewUserResponse(user, nil))
}

func (uc *UserAdminController) SetRole(c *fiber.Ctx) error {
	id, err := userIDParam(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.Error(c, fe.Code, fe.Message)
	}

	var req userDto.SetRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "صيغة الطلب غير صالحة")
	}
	if err := uc.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user userModel.UserModel
	if err := uc.DB.First(&user, id).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "المستخدم غير موجود")
	}
	if isPrimaryAdmin(&user) && req.Role != constants.RoleSuperAdmin {
		return helper.Error(c, fiber.StatusForbidden, "لا يمكن تغيير دور المدير الرئيسي")
	}

	err = uc.DB.Transaction(func(tx *gorm.DB) error {
		// A demoted supervisor no longer leads their circle.
		if user.Role == constants.RoleSupervisor && req.Role != constants.RoleSupervisor {
			e := tx.Model(&circleModel.CircleModel{}).
				Where("supervisor_id = ?", user.ID).
				Update("supervisor_id", nil).Error
			if e != nil {
				return e
			}
		}
		user.Role = req.Role
		return tx.Save(&user).Error
	})
	if err != nil {
		log.Printf("[ERROR] set role: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر تحديث الدور")
	}

	return helper.Success(c, "تم تحديث الدور بنجاح", userDto.NewUserResponse(user, nil))
}

func (uc *UserAdminController) AssignCircle(c *fiber.Ctx) error {
	id, err := userIDParam(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.Error(c, fe.Code, fe.Message)
	}

	var req userDto.AssignCircleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "صيغة الطلب غير صالحة")
	}

	var user userModel.UserModel
	if err := uc.DB.First(&user, id).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "المستخدم غير موجود")
	}

	if req.CircleID != nil {
		var circle circleModel.CircleModel
		if err := uc.DB.First(&circle, *req.CircleID).Error; err != nil {
			return helper.Error(c, fiber.StatusNotFound, "الحلقة غير موجودة")
		}
	}

	user.CircleID = req.CircleID
	if err := uc.DB.Save(&user).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر إسناد الحلقة")
	}

	msg := "تم إسناد الحلقة بنجاح"
	if req.CircleID == nil {
		msg = "تم إخراج العضو من الحلقة"
	}
	return helper.Success(c, msg, userDto.NewUserResponse(user, nil))
}

// =============================
// 📦 BULK ACTIONS
// =============================
func (uc *UserAdminController) BulkApprove(c *fiber.Ctx) error {
	var req userDto.BulkUserIDsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "صيغة الطلب غير صالحة")
	}
	if err := uc.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	res := uc.DB.Model(&userModel.UserModel{}).
		Where("id IN ? AND status = ?", req.UserIDs, constants.StatusPending).
		Updates(map[string]any{"status": constants.StatusActive, "rejection_note": nil})
	if res.Error != nil {
		log.Printf("[ERROR] bulk approve: %v", res.Error)
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر اعتماد الطلبات")
	}

	return helper.Success(c, "تم اعتماد الطلبات المحددة", fiber.Map{"approved_count": res.RowsAffected})
}

func (uc *UserAdminController) BulkReject(c *fiber.Ctx) error {
	var req userDto.BulkRejectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "صيغة الطلب غير صالحة")
	}
	if err := uc.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]any{"status": constants.StatusRejected}
	if note := strings.TrimSpace(req.Note); note != "" {
		updates["rejection_note"] = note
	}
	res := uc.DB.Model(&userModel.UserModel{}).
		Where("id IN ? AND status = ?", req.UserIDs, constants.StatusPending).
		Updates(updates)
	if res.Error != nil {
		log.Printf("[ERROR] bulk reject: %v", res.Error)
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر رفض الطلبات")
	}

	return helper.Success(c, "تم رفض الطلبات المحددة", fiber.Map{"rejected_count": res.RowsAffected})
}

func (uc *UserAdminController) BulkActivate(c *fiber.Ctx) error {
	return uc.bulkSetStatus(c, constants.StatusActive, "تم تفعيل الحسابات المحددة")
}

func (uc *UserAdminController) BulkWithdraw(c *fiber.Ctx) error {
	return uc.bulkSetStatus(c, constants.StatusWithdrawn, "تم إيقاف الحسابات المحددة")
}

// bulkSetStatus never touches the primary admin's row.
func (uc *UserAdminController) bulkSetStatus(c *fiber.Ctx, status, msg string) error {
	var req userDto.BulkUserIDsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "صيغة الطلب غير صالحة")
	}
	if err := uc.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	q := uc.DB.Model(&userModel.UserModel{}).Where("id IN ?", req.UserIDs)
	if configs.SuperAdminEmail != "" {
		q = q.Where("email <> ?", configs.SuperAdminEmail)
	}
	res := q.Update("status", status)
	if res.Error != nil {
		log.Printf("[ERROR] bulk status: %v", res.Error)
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر تحديث الحالة")
	}

	return helper.Success(c, msg, fiber.Map{"updated_count": res.RowsAffected})
}

func (uc *UserAdminController) BulkAssignCircle(c *fiber.Ctx) error {
	var req userDto.BulkAssignCircleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "صيغة الطلب غير صالحة")
	}
	if err := uc.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if req.CircleID != nil {
		var circle circleModel.CircleModel
		if err := uc.DB.First(&circle, *req.CircleID).Error; err != nil {
			return helper.Error(c, fiber.StatusNotFound, "الحلقة غير موجودة")
		}
	}

	res := uc.DB.Model(&userModel.UserModel{}).
		Where("id IN ?", req.UserIDs).
		Update("circle_id", req.CircleID)
	if res.Error != nil {
		log.Printf("[ERROR] bulk assign circle: %v", res.Error)
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر إسناد الحلقة")
	}

	return helper.Success(c, "تم إسناد الحلقة للأعضاء المحددين", fiber.Map{"updated_count": res.RowsAffected})
}
