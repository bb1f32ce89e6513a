package controller

import (
	"log"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/configs"
	"github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/constants"
	cardDto "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/cards/card/dto"
	cardModel "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/cards/card/model"
	"github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/cards/engine"
	circleService "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/circles/circle/service"
	userModel "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/users/user/model"
	helper "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/helpers"
)

type SupervisorCardController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewSupervisorCardController(db *gorm.DB) *SupervisorCardController {
	return &SupervisorCardController{DB: db, Validate: validator.New()}
}

// resolveCircle decides which circle a report covers. Supervisors always get
// their own circle. Admins may pass ?circle_id=N for one circle or omit it
// for all circles (nil).
func (sc *SupervisorCardController) resolveCircle(c *fiber.Ctx) (*uint, error) {
	role := helper.GetUserRole(c)
	if role == constants.RoleSuperAdmin {
		raw := c.Query("circle_id")
		if raw == "" || raw == "all" {
			return nil, nil
		}
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "معرف الحلقة غير صالح")
		}
		cid := uint(id)
		return &cid, nil
	}

	userID, err := helper.GetUserID(c)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}
	circle, err := circleService.BySupervisor(sc.DB, userID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "تعذر جلب الحلقة")
	}
	if circle == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "لا توجد حلقة مسندة إليك")
	}
	return &circle.ID, nil
}

// verifyMemberAccess loads the member and checks the caller may act on them.
func (sc *SupervisorCardController) verifyMemberAccess(c *fiber.Ctx, memberID uint) (*userModel.UserModel, error) {
	var member userModel.UserModel
	if err := sc.DB.First(&member, memberID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "العضو غير موجود")
	}

	if helper.GetUserRole(c) == constants.RoleSuperAdmin {
		return &member, nil
	}

	userID, err := helper.GetUserID(c)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}
	circle, err := circleService.BySupervisor(sc.DB, userID)
	if err != nil || circle == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "لا توجد حلقة مسندة إليك")
	}
	if member.CircleID == nil || *member.CircleID != circle.ID {
		return nil, fiber.NewError(fiber.StatusForbidden, "هذا العضو ليس ضمن حلقتك")
	}
	return &member, nil
}

func memberIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "معرف العضو غير صالح")
	}
	return uint(id), nil
}

// =============================
// 👥 ROSTER
// =============================
func (sc *SupervisorCardController) GetMembers(c *fiber.Ctx) error {
	circleID, err := sc.resolveCircle(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.Error(c, fe.Code, fe.Message)
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	members, err := circleService.ActiveMembers(sc.DB, circleID)
	if err != nil {
		log.Printf("[ERROR] roster: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر جلب الأعضاء")
	}

	// Flag who has already submitted today's card.
	ids := make([]uint, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	today := helper.Today()
	submittedToday := map[uint]bool{}
	if len(ids) > 0 {
		var rows []cardModel.DailyCardModel
		if err := sc.DB.Where("user_id IN ? AND date = ?", ids, today).Find(&rows).Error; err == nil {
			for _, r := range rows {
				submittedToday[r.UserID] = true
			}
		}
	}

	out := make([]fiber.Map, len(members))
	for i, m := range members {
		out[i] = fiber.Map{
			"id":              m.ID,
			"member_id":       m.MemberID,
			"full_name":       m.FullName,
			"gender":          m.Gender,
			"phone":           m.Phone,
			"email":           m.Email,
			"country":         m.Country,
			"circle_id":       m.CircleID,
			"submitted_today": submittedToday[m.ID],
		}
	}

	return helper.Success(c, "تم جلب الأعضاء", out)
}

// =============================
// 📄 MEMBER CARDS
// =============================
func (sc *SupervisorCardController) GetMemberCards(c *fiber.Ctx) error {
	memberID, err := memberIDParam(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.Error(c, fe.Code, fe.Message)
	}
	if _, err := sc.verifyMemberAccess(c, memberID); err != nil {
		fe := err.(*fiber.Error)
		return helper.Error(c, fe.Code, fe.Message)
	}

	var rows []cardModel.DailyCardModel
	if err := sc.DB.Where("user_id = ?", memberID).Order("date ASC").Find(&rows).Error; err != nil {
		log.Printf("[ERROR] member cards: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر جلب البطاقات")
	}

	return helper.Success(c, "تم جلب البطاقات", cardDto.NewCardResponses(rows, engine.DefaultScheme))
}

// UpsertMemberCard creates or replaces a member's card for a date. The
// privileged validation path allows backfilling any in-window day.
func (sc *SupervisorCardController) UpsertMemberCard(c *fiber.Ctx) error {
	memberID, err := memberIDParam(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.Error(c, fe.Code, fe.Message)
	}
	member, err := sc.verifyMemberAccess(c, memberID)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.Error(c, fe.Code, fe.Message)
	}

	var req cardDto.CardRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "صيغة الطلب غير صالحة")
	}
	if err := sc.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	in, err := req.ToEngineInput(member.ID)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "صيغة التاريخ غير صالحة، المطلوب YYYY-MM-DD")
	}

	card, err := engine.ValidateCard(in, engine.DefaultScheme, configs.ProgramWindow(), helper.Today(), true)
	if err != nil {
		return engineErrorResponse(c, err)
	}

	var row cardModel.DailyCardModel
	created := false
	err = sc.DB.Transaction(func(tx *gorm.DB) error {
		e := tx.Where("user_id = ? AND date = ?", member.ID, card.Date).First(&row).Error
		if e == gorm.ErrRecordNotFound {
			created = true
			row = cardModel.DailyCardModel{}
		} else if e != nil {
			return e
		}
		row.SetScores(card)
		return tx.Save(&row).Error
	})
	if err != nil {
		log.Printf("[ERROR] upsert card: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر حفظ البطاقة")
	}

	msg := "تم تحديث بطاقة العضو بنجاح"
	code := fiber.StatusOK
	if created {
		msg = "تم إنشاء بطاقة العضو بنجاح"
		code = fiber.StatusCreated
	}
	return helper.SuccessWithCode(c, code, msg, cardDto.NewCardResponse(row, engine.DefaultScheme))
}

func (sc *SupervisorCardController) DeleteMemberCard(c *fiber.Ctx) error {
	memberID, err := memberIDParam(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.Error(c, fe.Code, fe.Message)
	}
	if _, err := sc.verifyMemberAccess(c, memberID); err != nil {
		fe := err.(*fiber.Error)
		return helper.Error(c, fe.Code, fe.Message)
	}

	d, err := helper.ParseDate(c.Params("date"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "صيغة التاريخ غير صالحة، المطلوب YYYY-MM-DD")
	}

	res := sc.DB.Where("user_id = ? AND date = ?", memberID, d).Delete(&cardModel.DailyCardModel{})
	if res.Error != nil {
		log.Printf("[ERROR] delete card: %v", res.Error)
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر حذف البطاقة")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "لا توجد بطاقة لهذا اليوم")
	}

	return helper.Success(c, "تم حذف البطاقة بنجاح", nil)
}

// =============================
// 🏆 LEADERBOARD
// =============================

// elapsedRange clamps [window start, today] to the window so mid-program
// boards divide by the days elapsed, not the whole month.
func elapsedRange(w engine.Window, today time.Time) (time.Time, time.Time) {
	to := engine.DateOnly(today)
	if to.After(w.End) {
		to = w.End
	}
	if to.Before(w.Start) {
		to = w.Start
	}
	return w.Start, to
}

func (sc *SupervisorCardController) GetLeaderboard(c *fiber.Ctx) error {
	circleID, err := sc.resolveCircle(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.Error(c, fe.Code, fe.Message)
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	members, err := circleService.ActiveMembers(sc.DB, circleID)
	if err != nil {
		log.Printf("[ERROR] leaderboard roster: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر جلب الأعضاء")
	}

	from, to := elapsedRange(configs.ProgramWindow(), helper.Today())
	cardsByUser, err := sc.loadCards(members, from, to)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر جلب البطاقات")
	}

	aggs := make([]engine.Aggregate, len(members))
	for i, m := range members {
		agg := engine.SummarizeRange(cardsByUser[m.ID], from, to, engine.DefaultScheme, engine.MaxByDays)
		agg.UserID = m.ID
		agg.Name = m.FullName
		aggs[i] = agg
	}

	entries := engine.Rank(aggs, engine.ByTotalScore, engine.NewCollator())

	return helper.Success(c, "تم جلب لوحة الترتيب", fiber.Map{
		"from":    helper.FormatDate(from),
		"to":      helper.FormatDate(to),
		"entries": entries,
	})
}

// =============================
// 📅 SUMMARIES
// =============================
func (sc *SupervisorCardController) GetDailySummary(c *fiber.Ctx) error {
	circleID, err := sc.resolveCircle(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.Error(c, fe.Code, fe.Message)
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	d := helper.Today()
	if raw := c.Query("date"); raw != "" {
		if d, err = helper.ParseDate(raw); err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "صيغة التاريخ غير صالحة، المطلوب YYYY-MM-DD")
		}
	}

	members, err := circleService.ActiveMembers(sc.DB, circleID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر جلب الأعضاء")
	}

	cardsByUser, err := sc.loadCards(members, d, d)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر جلب البطاقات")
	}

	roster := toRoster(members)
	var all []engine.Scorecard
	for _, cs := range cardsByUser {
		all = append(all, cs...)
	}
	coverage := engine.DailyCoverage(roster, all, d, d)

	var cov engine.DayCoverage
	if len(coverage) > 0 {
		cov = coverage[0]
	}

	return helper.Success(c, "تم جلب ملخص اليوم", fiber.Map{
		"date":            helper.FormatDate(d),
		"total_members":   len(roster),
		"submitted_count": len(cov.Submitted),
		"missing_count":   len(cov.Missing),
		"submitted":       cov.Submitted,
		"missing":         cov.Missing,
	})
}

func (sc *SupervisorCardController) GetRangeSummary(c *fiber.Ctx) error {
	from, to, err := rangeParams(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.Error(c, fe.Code, fe.Message)
	}
	return sc.rangeSummary(c, from, to, "تم جلب ملخص الفترة")
}

// GetWeeklySummary reports one program week (1-based), each week being seven
// days from the window start with the last week clipped to the window end.
func (sc *SupervisorCardController) GetWeeklySummary(c *fiber.Ctx) error {
	w := configs.ProgramWindow()

	week := 1
	if raw := c.Query("week"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return helper.Error(c, fiber.StatusBadRequest, "رقم الأسبوع غير صالح")
		}
		week = n
	}

	from := w.Start.AddDate(0, 0, (week-1)*7)
	if from.After(w.End) {
		return helper.Error(c, fiber.StatusBadRequest, "رقم الأسبوع خارج فترة البرنامج")
	}
	to := from.AddDate(0, 0, 6)
	if to.After(w.End) {
		to = w.End
	}

	return sc.rangeSummary(c, from, to, "تم جلب ملخص الأسبوع")
}

func (sc *SupervisorCardController) rangeSummary(c *fiber.Ctx, from, to time.Time, msg string) error {
	circleID, err := sc.resolveCircle(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.Error(c, fe.Code, fe.Message)
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	members, err := circleService.ActiveMembers(sc.DB, circleID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر جلب الأعضاء")
	}

	cardsByUser, err := sc.loadCards(members, from, to)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر جلب البطاقات")
	}

	aggs := make([]engine.Aggregate, len(members))
	for i, m := range members {
		agg := engine.SummarizeRange(cardsByUser[m.ID], from, to, engine.DefaultScheme, engine.MaxByDays)
		agg.UserID = m.ID
		agg.Name = m.FullName
		aggs[i] = agg
	}
	entries := engine.Rank(aggs, engine.ByTotalScore, engine.NewCollator())

	var all []engine.Scorecard
	for _, cs := range cardsByUser {
		all = append(all, cs...)
	}
	coverage := engine.DailyCoverage(toRoster(members), all, from, to)

	days := make([]fiber.Map, len(coverage))
	for i, cov := range coverage {
		days[i] = fiber.Map{
			"date":            helper.FormatDate(cov.Date),
			"submitted_count": len(cov.Submitted),
			"missing_count":   len(cov.Missing),
			"missing":         cov.Missing,
		}
	}

	return helper.Success(c, msg, fiber.Map{
		"from":    helper.FormatDate(from),
		"to":      helper.FormatDate(to),
		"entries": entries,
		"days":    days,
	})
}

// loadCards fetches the roster's cards for [from, to] grouped by user.
func (sc *SupervisorCardController) loadCards(members []userModel.UserModel, from, to time.Time) (map[uint][]engine.Scorecard, error) {
	out := make(map[uint][]engine.Scorecard, len(members))
	if len(members) == 0 {
		return out, nil
	}
	ids := make([]uint, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}

	var rows []cardModel.DailyCardModel
	err := sc.DB.Where("user_id IN ? AND date BETWEEN ? AND ?", ids, from, to).
		Order("date ASC").Find(&rows).Error
	if err != nil {
		log.Printf("[ERROR] load cards: %v", err)
		return nil, err
	}
	for _, r := range rows {
		out[r.UserID] = append(out[r.UserID], r.ToEngine())
	}
	return out, nil
}

func toRoster(members []userModel.UserModel) []engine.Member {
	roster := make([]engine.Member, len(members))
	for i, m := range members {
		roster[i] = engine.Member{ID: m.ID, Name: m.FullName}
	}
	return roster
}

func rangeParams(c *fiber.Ctx) (time.Time, time.Time, error) {
	from, err := helper.ParseDate(c.Query("from"))
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "تاريخ البداية غير صالح، المطلوب YYYY-MM-DD")
	}
	to, err := helper.ParseDate(c.Query("to"))
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "تاريخ النهاية غير صالح، المطلوب YYYY-MM-DD")
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "تاريخ النهاية قبل تاريخ البداية")
	}
	return from, to, nil
}
