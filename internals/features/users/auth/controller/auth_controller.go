package controller

import (
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/configs"
	"github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/constants"
	circleService "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/circles/circle/service"
	settingModel "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/settings/setting/model"
	authDto "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/users/auth/dto"
	authModel "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/users/auth/model"
	authService "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/users/auth/service"
	userDto "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/users/user/dto"
	userModel "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/users/user/model"
	helper "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/helpers"
	"github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/helpers/mailer"
)

const resetTokenTTL = 15 * time.Minute

type AuthController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db, Validate: validator.New()}
}

// =============================
// 📝 REGISTER
// =============================
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req authDto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "صيغة الطلب غير صالحة")
	}
	req.Normalize()
	if err := ac.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.Password != req.ConfirmPassword {
		return helper.Error(c, fiber.StatusBadRequest, "كلمتا المرور غير متطابقتين")
	}

	user := userModel.UserModel{
		FullName:       req.FullName,
		Gender:         req.Gender,
		Age:            req.Age,
		Phone:          req.Phone,
		Email:          req.Email,
		Country:        req.Country,
		ReferralSource: req.ReferralSource,
		Status:         constants.StatusPending,
		Role:           constants.RoleParticipant,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر معالجة كلمة المرور")
	}

	// The configured primary admin bypasses the review queue.
	if configs.SuperAdminEmail != "" && req.Email == configs.SuperAdminEmail {
		user.Role = constants.RoleSuperAdmin
		user.Status = constants.StatusActive
	}

	err := ac.DB.Transaction(func(tx *gorm.DB) error {
		next, err := userModel.NextMemberID(tx)
		if err != nil {
			return err
		}
		user.MemberID = &next
		return tx.Create(&user).Error
	})
	if err != nil {
		if helper.IsDuplicateKey(err) {
			return helper.Error(c, fiber.StatusConflict, "البريد الإلكتروني مسجل مسبقاً")
		}
		log.Printf("[ERROR] register: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر إنشاء الحساب")
	}

	if ac.notificationsEnabled() && user.Status == constants.StatusPending {
		go mailer.NotifyNewRegistration(user.FullName, user.Email, user.Phone, user.Gender, user.Age, user.Country, user.ReferralSource)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated,
		"تم استلام طلب التسجيل وسيتم مراجعته من قبل الإدارة",
		userDto.NewUserResponse(user, nil))
}

// =============================
// 🔑 LOGIN
// =============================
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req authDto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "صيغة الطلب غير صالحة")
	}
	req.Normalize()
	if err := ac.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user userModel.UserModel
	if err := ac.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "البريد الإلكتروني أو كلمة المرور غير صحيحة")
	}
	if !user.CheckPassword(req.Password) {
		return helper.Error(c, fiber.StatusUnauthorized, "البريد الإلكتروني أو كلمة المرور غير صحيحة")
	}

	switch user.Status {
	case constants.StatusPending:
		return helper.Error(c, fiber.StatusForbidden, "حسابك قيد المراجعة، سيتم إشعارك عند الموافقة")
	case constants.StatusRejected:
		msg := "تم رفض طلب تسجيلك"
		if user.RejectionNote != nil && *user.RejectionNote != "" {
			msg = fmt.Sprintf("%s: %s", msg, *user.RejectionNote)
		}
		return helper.Error(c, fiber.StatusForbidden, msg)
	case constants.StatusWithdrawn:
		return helper.Error(c, fiber.StatusForbidden, "تم إيقاف حسابك، يرجى التواصل مع الإدارة")
	}

	token, err := authService.CreateAccessToken(&user)
	if err != nil {
		log.Printf("[ERROR] sign token: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر إنشاء رمز الدخول")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(configs.JWTExpiresIn),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	infos, _ := circleService.InfoForUsers(ac.DB, []userModel.UserModel{user})
	ctx := circleService.UserContext(ac.DB, user, infos)

	return helper.Success(c, "تم تسجيل الدخول بنجاح", fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
		"user":         userDto.NewUserResponse(user, ctx),
	})
}

// =============================
// 👤 ME / PROFILE
// =============================
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	var user userModel.UserModel
	if err := ac.DB.First(&user, userID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "المستخدم غير موجود")
	}

	infos, err := circleService.InfoForUsers(ac.DB, []userModel.UserModel{user})
	if err != nil {
		log.Printf("[ERROR] me circle info: %v", err)
	}
	ctx := circleService.UserContext(ac.DB, user, infos)

	return helper.Success(c, "تم جلب البيانات", userDto.NewUserResponse(user, ctx))
}

func (ac *AuthController) UpdateProfile(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	var req authDto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "صيغة الطلب غير صالحة")
	}
	if err := ac.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user userModel.UserModel
	if err := ac.DB.First(&user, userID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "المستخدم غير موجود")
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Country != nil {
		user.Country = *req.Country
	}
	if req.Age != nil {
		user.Age = *req.Age
	}
	if err := ac.DB.Save(&user).Error; err != nil {
		log.Printf("[ERROR] update profile: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر تحديث البيانات")
	}

	return helper.Success(c, "تم تحديث البيانات بنجاح", userDto.NewUserResponse(user, nil))
}

func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	var req authDto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "صيغة الطلب غير صالحة")
	}
	if err := ac.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.NewPassword != req.ConfirmPassword {
		return helper.Error(c, fiber.StatusBadRequest, "كلمتا المرور غير متطابقتين")
	}

	var user userModel.UserModel
	if err := ac.DB.First(&user, userID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "المستخدم غير موجود")
	}
	if !user.CheckPassword(req.CurrentPassword) {
		return helper.Error(c, fiber.StatusBadRequest, "كلمة المرور الحالية غير صحيحة")
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر معالجة كلمة المرور")
	}
	if err := ac.DB.Save(&user).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر تحديث كلمة المرور")
	}

	return helper.Success(c, "تم تغيير كلمة المرور بنجاح", nil)
}

// =============================
// 🔁 PASSWORD RESET
// =============================

// ForgotPassword answers identically whether or not the email exists.
func (ac *AuthController) ForgotPassword(c *fiber.Ctx) error {
	var req authDto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "صيغة الطلب غير صالحة")
	}
	if err := ac.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	const genericMsg = "إذا كان البريد مسجلاً لدينا فستصلك رسالة تحتوي رمز الاستعادة"

	var user userModel.UserModel
	if err := ac.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return helper.Success(c, genericMsg, nil)
	}

	code, err := generateResetCode()
	if err != nil {
		log.Printf("[ERROR] reset code: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "حدث خطأ، حاول مرة أخرى")
	}

	// One live code per email; earlier codes are invalidated.
	if err := ac.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", user.Email).Delete(&authModel.PasswordResetToken{}).Error; err != nil {
			return err
		}
		return tx.Create(&authModel.PasswordResetToken{
			Email:     user.Email,
			Code:      code,
			ExpiresAt: time.Now().Add(resetTokenTTL),
		}).Error
	}); err != nil {
		log.Printf("[ERROR] store reset token: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "حدث خطأ، حاول مرة أخرى")
	}

	go mailer.SendPasswordReset(user.Email, code)

	return helper.Success(c, genericMsg, nil)
}

func (ac *AuthController) ResetPassword(c *fiber.Ctx) error {
	var req authDto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "صيغة الطلب غير صالحة")
	}
	if err := ac.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var token authModel.PasswordResetToken
	err := ac.DB.Where("email = ? AND code = ?", req.Email, req.Token).
		Order("created_at DESC").First(&token).Error
	if err != nil || time.Now().After(token.ExpiresAt) {
		return helper.Error(c, fiber.StatusBadRequest, "رمز الاستعادة غير صحيح أو منتهي الصلاحية")
	}

	var user userModel.UserModel
	if err := ac.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "رمز الاستعادة غير صحيح أو منتهي الصلاحية")
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر معالجة كلمة المرور")
	}

	if err := ac.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		return tx.Where("email = ?", req.Email).Delete(&authModel.PasswordResetToken{}).Error
	}); err != nil {
		log.Printf("[ERROR] reset password: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر تحديث كلمة المرور")
	}

	return helper.Success(c, "تم تعيين كلمة المرور الجديدة بنجاح", nil)
}

func (ac *AuthController) notificationsEnabled() bool {
	var s settingModel.SiteSettingModel
	if err := ac.DB.First(&s).Error; err != nil {
		return false
	}
	return s.EnableEmailNotifications
}

func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
