package controller

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/configs"
	cardDto "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/cards/card/dto"
	cardModel "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/cards/card/model"
	"github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/cards/engine"
	circleService "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/circles/circle/service"
	userModel "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/users/user/model"
	helper "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/helpers"
)

// engineErrorResponse maps validation failures from the scoring core onto
// the API's Arabic messages.
func engineErrorResponse(c *fiber.Ctx, err error) error {
	var oor *engine.ScoreOutOfRangeError
	if errors.As(err, &oor) {
		return helper.Error(c, fiber.StatusBadRequest,
			fmt.Sprintf("قيمة البند %s يجب أن تكون بين 0 و %g", oor.Category, oor.Max))
	}
	var oow *engine.DateOutOfWindowError
	if errors.As(err, &oow) {
		return helper.Error(c, fiber.StatusBadRequest,
			fmt.Sprintf("التاريخ خارج فترة البرنامج (%s إلى %s)",
				helper.FormatDate(oow.Window.Start), helper.FormatDate(oow.Window.End)))
	}
	var fd *engine.FutureDateError
	if errors.As(err, &fd) {
		return helper.Error(c, fiber.StatusBadRequest, "لا يمكن إدخال بطاقة بتاريخ مستقبلي")
	}
	if errors.Is(err, engine.ErrDuplicateCard) {
		return helper.Error(c, fiber.StatusConflict, "تم إدخال بطاقة هذا اليوم مسبقاً ولا يمكن تعديلها")
	}
	return helper.Error(c, fiber.StatusBadRequest, err.Error())
}

type ParticipantCardController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewParticipantCardController(db *gorm.DB) *ParticipantCardController {
	return &ParticipantCardController{DB: db, Validate: validator.New()}
}

// =============================
// 📋 CREATE CARD (create-only)
// =============================
func (pc *ParticipantCardController) CreateCard(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	var req cardDto.CardRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "صيغة الطلب غير صالحة")
	}
	if err := pc.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	in, err := req.ToEngineInput(userID)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "صيغة التاريخ غير صالحة، المطلوب YYYY-MM-DD")
	}

	card, err := engine.ValidateCard(in, engine.DefaultScheme, configs.ProgramWindow(), helper.Today(), false)
	if err != nil {
		return engineErrorResponse(c, err)
	}

	var row cardModel.DailyCardModel
	row.SetScores(card)
	if err := pc.DB.Create(&row).Error; err != nil {
		if helper.IsDuplicateKey(err) {
			return engineErrorResponse(c, engine.ErrDuplicateCard)
		}
		log.Printf("[ERROR] create card: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر حفظ البطاقة")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "تم حفظ بطاقة اليوم بنجاح",
		cardDto.NewCardResponse(row, engine.DefaultScheme))
}

// =============================
// 📄 LIST / GET OWN CARDS
// =============================
func (pc *ParticipantCardController) GetMyCards(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	q := pc.DB.Where("user_id = ?", userID)
	if raw := c.Query("from"); raw != "" {
		from, err := helper.ParseDate(raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "تاريخ البداية غير صالح، المطلوب YYYY-MM-DD")
		}
		q = q.Where("date >= ?", from)
	}
	if raw := c.Query("to"); raw != "" {
		to, err := helper.ParseDate(raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "تاريخ النهاية غير صالح، المطلوب YYYY-MM-DD")
		}
		q = q.Where("date <= ?", to)
	}

	var rows []cardModel.DailyCardModel
	if err := q.Order("date ASC").Find(&rows).Error; err != nil {
		log.Printf("[ERROR] list cards: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر جلب البطاقات")
	}

	return helper.Success(c, "تم جلب البطاقات", cardDto.NewCardResponses(rows, engine.DefaultScheme))
}

func (pc *ParticipantCardController) GetMyCardByDate(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	d, err := helper.ParseDate(c.Params("date"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "صيغة التاريخ غير صالحة، المطلوب YYYY-MM-DD")
	}

	var row cardModel.DailyCardModel
	if err := pc.DB.Where("user_id = ? AND date = ?", userID, d).First(&row).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "لا توجد بطاقة لهذا اليوم")
	}

	return helper.Success(c, "تم جلب البطاقة", cardDto.NewCardResponse(row, engine.DefaultScheme))
}

// =============================
// 📊 PERSONAL STATS
// =============================
func (pc *ParticipantCardController) GetMyStats(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}

	var user userModel.UserModel
	if err := pc.DB.First(&user, userID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "المستخدم غير موجود")
	}

	var rows []cardModel.DailyCardModel
	if err := pc.DB.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		log.Printf("[ERROR] stats cards: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر جلب الإحصائيات")
	}

	agg := engine.Summarize(cardModel.ToEngineCards(rows), engine.DefaultScheme)
	agg.UserID = user.ID
	agg.Name = user.FullName

	resp := cardDto.StatsResponse{Aggregate: agg}
	today := helper.Today()
	for _, r := range rows {
		if engine.DateOnly(r.Date).Equal(today) {
			total := r.ToEngine().Total()
			resp.TodaySubmitted = true
			resp.TodayScore = engine.Round1(total)
			resp.TodayPercentage = engine.Percentage(total, engine.DefaultScheme.MaxPerDay())
			break
		}
	}
	if user.CircleID != nil {
		infos, err := circleService.LoadInfo(pc.DB, []uint{*user.CircleID})
		if err == nil {
			if info, ok := infos[*user.CircleID]; ok {
				resp.CircleName = info.Name
				resp.SupervisorName = info.SupervisorName
				resp.SupervisorPhone = info.SupervisorPhone
			}
		}
	}

	return helper.Success(c, "تم جلب الإحصائيات", resp)
}
