package controller

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/configs"
	"github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/constants"
	cardModel "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/cards/card/model"
	"github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/cards/engine"
	circleService "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/circles/circle/service"
	reportService "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/reports/report/service"
	userModel "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/users/user/model"
	helper "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/helpers"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	csvContentType  = "text/csv; charset=utf-8"
)

type AdminReportController struct {
	DB *gorm.DB
}

func NewAdminReportController(db *gorm.DB) *AdminReportController {
	return &AdminReportController{DB: db}
}

func sendFile(c *fiber.Ctx, name, contentType string, data []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(data)
}

// exportFormat reads ?format= with xlsx as the default.
func exportFormat(c *fiber.Ctx) (string, error) {
	f := c.Query("format", "xlsx")
	if f != "xlsx" && f != "csv" {
		return "", fiber.NewError(fiber.StatusBadRequest, "الصيغة المطلوبة غير مدعومة، المتاح xlsx أو csv")
	}
	return f, nil
}

// =============================
// 📈 ANALYTICS
// =============================
func (rc *AdminReportController) GetAnalytics(c *fiber.Ctx) error {
	byStatus := map[string]int64{}
	for _, s := range []string{constants.StatusPending, constants.StatusActive, constants.StatusRejected, constants.StatusWithdrawn} {
		var n int64
		rc.DB.Model(&userModel.UserModel{}).Where("status = ?", s).Count(&n)
		byStatus[s] = n
	}

	byRole := map[string]int64{}
	for _, r := range []string{constants.RoleParticipant, constants.RoleSupervisor, constants.RoleSuperAdmin} {
		var n int64
		rc.DB.Model(&userModel.UserModel{}).Where("role = ?", r).Count(&n)
		byRole[r] = n
	}

	var circleCount int64
	rc.DB.Table("circles").Count(&circleCount)

	var cardCount int64
	rc.DB.Model(&cardModel.DailyCardModel{}).Count(&cardCount)

	var todayCount int64
	rc.DB.Model(&cardModel.DailyCardModel{}).Where("date = ?", helper.Today()).Count(&todayCount)

	w := configs.ProgramWindow()
	from, to := elapsedRange(w, helper.Today())

	members, err := circleService.ActiveMembers(rc.DB, nil)
	if err != nil {
		log.Printf("[ERROR] analytics roster: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر جلب الإحصائيات")
	}
	cardsByUser, err := loadCardsByUser(rc.DB, memberIDs(members), from, to)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر جلب الإحصائيات")
	}

	var totalScore, maxScore float64
	for _, m := range members {
		agg := engine.SummarizeRange(cardsByUser[m.ID], from, to, engine.DefaultScheme, engine.MaxByDays)
		totalScore += agg.TotalScore
		maxScore += agg.MaxScore
	}

	return helper.Success(c, "تم جلب الإحصائيات", fiber.Map{
		"users_by_status":     byStatus,
		"users_by_role":       byRole,
		"circle_count":        circleCount,
		"card_count":          cardCount,
		"cards_today":         todayCount,
		"program_start":       helper.FormatDate(w.Start),
		"program_end":         helper.FormatDate(w.End),
		"elapsed_days":        engine.Window{Start: from, End: to}.Days(),
		"overall_total_score": engine.Round1(totalScore),
		"overall_max_score":   maxScore,
		"overall_percentage":  engine.Percentage(totalScore, maxScore),
	})
}

// GetAnalyticsMembers returns ranked per-member aggregates with filters:
// gender, circle_id, supervisor (name contains), search (member name
// contains), min_pct/max_pct, from/to, sort=score|percentage|name.
func (rc *AdminReportController) GetAnalyticsMembers(c *fiber.Ctx) error {
	sortKey := c.Query("sort", "score")
	if sortKey != "score" && sortKey != "percentage" && sortKey != "name" {
		return helper.Error(c, fiber.StatusBadRequest, "معيار الترتيب غير صالح، المتاح score أو percentage أو name")
	}

	w := configs.ProgramWindow()
	from, to := elapsedRange(w, helper.Today())
	var err error
	if raw := c.Query("from"); raw != "" {
		if from, err = helper.ParseDate(raw); err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "تاريخ البداية غير صالح، المطلوب YYYY-MM-DD")
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err = helper.ParseDate(raw); err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "تاريخ النهاية غير صالح، المطلوب YYYY-MM-DD")
		}
	}
	if to.Before(from) {
		return helper.Error(c, fiber.StatusBadRequest, "تاريخ النهاية قبل تاريخ البداية")
	}

	q := rc.DB.Where("status = ? AND role = ?", constants.StatusActive, constants.RoleParticipant)
	if v := c.Query("gender"); v != "" {
		if v != "male" && v != "female" {
			return helper.Error(c, fiber.StatusBadRequest, "جنس غير صالح")
		}
		q = q.Where("gender = ?", v)
	}
	if raw := c.Query("circle_id"); raw != "" && raw != "all" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "معرف الحلقة غير صالح")
		}
		q = q.Where("circle_id = ?", uint(id))
	}
	if v := strings.TrimSpace(c.Query("search")); v != "" {
		q = q.Where("full_name ILIKE ?", "%"+v+"%")
	}

	var members []userModel.UserModel
	if err := q.Order("full_name ASC").Find(&members).Error; err != nil {
		log.Printf("[ERROR] analytics members: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر جلب الأعضاء")
	}

	infos, err := circleService.InfoForUsers(rc.DB, members)
	if err != nil {
		infos = map[uint]circleService.Info{}
	}

	// Supervisor filter matches against the member's circle supervisor name.
	if v := strings.TrimSpace(c.Query("supervisor")); v != "" {
		filtered := members[:0]
		for _, m := range members {
			if m.CircleID == nil {
				continue
			}
			if info, ok := infos[*m.CircleID]; ok && strings.Contains(info.SupervisorName, v) {
				filtered = append(filtered, m)
			}
		}
		members = filtered
	}

	cardsByUser, err := loadCardsByUser(rc.DB, memberIDs(members), from, to)
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

	rankKey := engine.ByTotalScore
	if sortKey == "percentage" {
		rankKey = engine.ByPercentage
	}
	col := engine.NewCollator()
	entries := engine.Rank(aggs, rankKey, col)

	if raw := c.Query("min_pct"); raw != "" {
		min, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "النسبة الدنيا غير صالحة")
		}
		entries = filterEntries(entries, func(e engine.RankEntry) bool { return e.Percentage >= min })
	}
	if raw := c.Query("max_pct"); raw != "" {
		max, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "النسبة القصوى غير صالحة")
		}
		entries = filterEntries(entries, func(e engine.RankEntry) bool { return e.Percentage <= max })
	}

	// Ranks are assigned by score; a name sort only reorders the listing.
	if sortKey == "name" {
		sort.SliceStable(entries, func(i, j int) bool {
			return col.CompareString(entries[i].Name, entries[j].Name) < 0
		})
	}

	out := make([]fiber.Map, len(entries))
	for i, e := range entries {
		circleName := ""
		if u := findMember(members, e.UserID); u != nil && u.CircleID != nil {
			if info, ok := infos[*u.CircleID]; ok {
				circleName = info.Name
			}
		}
		out[i] = fiber.Map{
			"rank":        e.Rank,
			"user_id":     e.UserID,
			"full_name":   e.Name,
			"circle_name": circleName,
			"cards_count": e.Cards,
			"total_score": e.TotalScore,
			"max_score":   e.MaxScore,
			"percentage":  e.Percentage,
		}
	}

	return helper.Success(c, "تم جلب تحليلات الأعضاء", fiber.Map{
		"from":    helper.FormatDate(from),
		"to":      helper.FormatDate(to),
		"count":   len(out),
		"members": out,
	})
}

func filterEntries(entries []engine.RankEntry, keep func(engine.RankEntry) bool) []engine.RankEntry {
	out := entries[:0]
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func findMember(members []userModel.UserModel, id uint) *userModel.UserModel {
	for i := range members {
		if members[i].ID == id {
			return &members[i]
		}
	}
	return nil
}

// =============================
// 📤 STANDINGS EXPORT
// =============================
func (rc *AdminReportController) ExportCards(c *fiber.Ctx) error {
	format, err := exportFormat(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.Error(c, fe.Code, fe.Message)
	}

	var circleID *uint
	if raw := c.Query("circle_id"); raw != "" && raw != "all" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "معرف الحلقة غير صالح")
		}
		cid := uint(id)
		circleID = &cid
	}

	w := configs.ProgramWindow()
	from, to := elapsedRange(w, helper.Today())
	if raw := c.Query("from"); raw != "" {
		if from, err = helper.ParseDate(raw); err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "تاريخ البداية غير صالح، المطلوب YYYY-MM-DD")
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err = helper.ParseDate(raw); err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "تاريخ النهاية غير صالح، المطلوب YYYY-MM-DD")
		}
	}
	if to.Before(from) {
		return helper.Error(c, fiber.StatusBadRequest, "تاريخ النهاية قبل تاريخ البداية")
	}

	members, err := circleService.ActiveMembers(rc.DB, circleID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر جلب الأعضاء")
	}
	cardsByUser, err := loadCardsByUser(rc.DB, memberIDs(members), from, to)
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

	infos, err := circleService.InfoForUsers(rc.DB, members)
	if err != nil {
		infos = map[uint]circleService.Info{}
	}
	byID := make(map[uint]userModel.UserModel, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}

	proj := reportService.LeaderboardProjection()
	rows := proj.Rows(entries, func(e engine.RankEntry) map[string]any {
		meta := map[string]any{}
		if u, ok := byID[e.UserID]; ok {
			if u.MemberID != nil {
				meta["member_id"] = *u.MemberID
			}
			if u.CircleID != nil {
				if info, ok := infos[*u.CircleID]; ok {
					meta["circle"] = info.Name
				}
			}
		}
		return meta
	})

	name := fmt.Sprintf("standings_%s_%s", helper.FormatDate(from), helper.FormatDate(to))
	if format == "csv" {
		data, err := reportService.WriteCSV(proj.Header(), rows)
		if err != nil {
			log.Printf("[ERROR] export csv: %v", err)
			return helper.Error(c, fiber.StatusInternalServerError, "تعذر إنشاء الملف")
		}
		return sendFile(c, name+".csv", csvContentType, data)
	}

	data, err := reportService.WriteXLSX("النتائج", proj.Header(), rows)
	if err != nil {
		log.Printf("[ERROR] export xlsx: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر إنشاء الملف")
	}
	return sendFile(c, name+".xlsx", xlsxContentType, data)
}

// =============================
// 📤 MEMBERSHIP EXPORT
// =============================
func (rc *AdminReportController) ExportUsers(c *fiber.Ctx) error {
	format, err := exportFormat(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.Error(c, fe.Code, fe.Message)
	}

	var users []userModel.UserModel
	if err := rc.DB.Order("member_id ASC").Find(&users).Error; err != nil {
		log.Printf("[ERROR] export users: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر جلب المستخدمين")
	}

	infos, err := circleService.InfoForUsers(rc.DB, users)
	if err != nil {
		infos = map[uint]circleService.Info{}
	}

	rows := make([][]any, len(users))
	for i, u := range users {
		memberID := any("")
		if u.MemberID != nil {
			memberID = *u.MemberID
		}
		circleName := ""
		if u.CircleID != nil {
			if info, ok := infos[*u.CircleID]; ok {
				circleName = info.Name
			}
		}
		rows[i] = []any{
			memberID, u.FullName,
			reportService.Label(reportService.GenderLabels, u.Gender),
			u.Age, u.Phone, u.Email, u.Country, u.ReferralSource,
			reportService.Label(reportService.StatusLabels, u.Status),
			reportService.Label(reportService.RoleLabels, u.Role),
			circleName,
		}
	}

	name := "members_" + time.Now().UTC().Format("2006-01-02")
	if format == "csv" {
		data, err := reportService.WriteCSV(reportService.UserExportHeader(), rows)
		if err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "تعذر إنشاء الملف")
		}
		return sendFile(c, name+".csv", csvContentType, data)
	}

	data, err := reportService.WriteXLSX("الأعضاء", reportService.UserExportHeader(), rows)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر إنشاء الملف")
	}
	return sendFile(c, name+".xlsx", xlsxContentType, data)
}

// =============================
// 📥 MEMBERSHIP IMPORT
// =============================
func (rc *AdminReportController) ImportTemplate(c *fiber.Ctx) error {
	data, err := reportService.WriteXLSX("الأعضاء", reportService.ImportTemplateHeader(), nil)
	if err != nil {
		log.Printf("[ERROR] import template: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر إنشاء الملف")
	}
	return sendFile(c, "import_template.xlsx", xlsxContentType, data)
}

// ImportUsers ingests a membership sheet. Rows that fail validation or
// collide with an existing email are reported back; the rest are created as
// active participants with the default password.
func (rc *AdminReportController) ImportUsers(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "الملف مطلوب في الحقل file")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "تعذر قراءة الملف")
	}
	defer file.Close()

	parsed, rowErrs, err := reportService.ReadUserImport(file)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	created := 0
	err = rc.DB.Transaction(func(tx *gorm.DB) error {
		for _, p := range parsed {
			var existing userModel.UserModel
			if e := tx.Where("email = ?", p.Email).First(&existing).Error; e == nil {
				rowErrs = append(rowErrs, reportService.RowError{Row: p.Row, Reason: "البريد الإلكتروني مسجل مسبقاً"})
				continue
			}

			next, e := userModel.NextMemberID(tx)
			if e != nil {
				return e
			}
			u := userModel.UserModel{
				MemberID:       &next,
				FullName:       p.FullName,
				Gender:         p.Gender,
				Age:            p.Age,
				Phone:          p.Phone,
				Email:          p.Email,
				Country:        p.Country,
				ReferralSource: p.Referral,
				Status:         constants.StatusActive,
				Role:           constants.RoleParticipant,
			}
			if e := u.SetPassword(constants.ImportDefaultPassword); e != nil {
				return e
			}
			if e := tx.Create(&u).Error; e != nil {
				return e
			}
			created++
		}
		return nil
	})
	if err != nil {
		log.Printf("[ERROR] import users: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر استيراد الأعضاء")
	}

	return helper.Success(c, "تم استيراد الأعضاء", fiber.Map{
		"created_count": created,
		"error_count":   len(rowErrs),
		"errors":        rowErrs,
	})
}

// =============================
// shared loaders
// =============================
func memberIDs(members []userModel.UserModel) []uint {
	ids := make([]uint, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	return ids
}

func loadCardsByUser(db *gorm.DB, ids []uint, from, to time.Time) (map[uint][]engine.Scorecard, error) {
	out := make(map[uint][]engine.Scorecard, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []cardModel.DailyCardModel
	err := db.Where("user_id IN ? AND date BETWEEN ? AND ?", ids, from, to).
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

// elapsedRange clamps [window start, today] to the window.
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
