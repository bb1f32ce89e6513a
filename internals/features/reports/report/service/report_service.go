// Package service shapes aggregation results into exportable tables and
// reads membership spreadsheets back in.
package service

import (
	"fmt"

	"github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/constants"
	"github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/cards/engine"
)

// Arabic display labels for enum fields.
var (
	GenderLabels = map[string]string{
		"male":   "ذكر",
		"female": "أنثى",
	}
	StatusLabels = map[string]string{
		constants.StatusPending:   "قيد المراجعة",
		constants.StatusActive:    "نشط",
		constants.StatusRejected:  "مرفوض",
		constants.StatusWithdrawn: "منسحب",
	}
	RoleLabels = map[string]string{
		constants.RoleParticipant: "مشارك",
		constants.RoleSupervisor:  "مشرف",
		constants.RoleSuperAdmin:  "مدير عام",
	}
)

func Label(m map[string]string, key string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return key
}

// metaStr reads a string out of a projection meta map without panicking on
// absent keys.
func metaStr(meta map[string]any, key string) string {
	if meta == nil {
		return ""
	}
	if v, ok := meta[key]; ok {
		return fmt.Sprint(v)
	}
	return ""
}

// LeaderboardProjection is the ranked standings table used by the circle and
// program exports.
func LeaderboardProjection() engine.Projection {
	return engine.Projection{Fields: []engine.Field{
		{Key: "rank", Label: "الترتيب", Value: func(e engine.RankEntry, _ map[string]any) any {
			return e.Rank
		}},
		{Key: "member_id", Label: "رقم العضوية", Value: func(_ engine.RankEntry, meta map[string]any) any {
			return metaStr(meta, "member_id")
		}},
		{Key: "full_name", Label: "الاسم", Value: func(e engine.RankEntry, _ map[string]any) any {
			return e.Name
		}},
		{Key: "circle", Label: "الحلقة", Value: func(_ engine.RankEntry, meta map[string]any) any {
			return metaStr(meta, "circle")
		}},
		{Key: "cards_count", Label: "عدد البطاقات", Value: func(e engine.RankEntry, _ map[string]any) any {
			return e.Cards
		}},
		{Key: "total_score", Label: "مجموع النقاط", Value: func(e engine.RankEntry, _ map[string]any) any {
			return e.TotalScore
		}},
		{Key: "max_score", Label: "النقاط القصوى", Value: func(e engine.RankEntry, _ map[string]any) any {
			return e.MaxScore
		}},
		{Key: "percentage", Label: "النسبة المئوية", Value: func(e engine.RankEntry, _ map[string]any) any {
			return e.Percentage
		}},
	}}
}

// CardDetailHeader is the per-day card export layout: date, then one column
// per category in display order, then the note and totals.
func CardDetailHeader() []string {
	header := []string{"رقم العضوية", "الاسم", "التاريخ"}
	for _, cat := range engine.Categories {
		header = append(header, cat.Label)
	}
	return append(header, "أعمال إضافية (وصف)", "المجموع")
}

// CardDetailRow flattens one card for the detail export.
func CardDetailRow(memberID, fullName string, card engine.Scorecard) []any {
	row := []any{memberID, fullName, card.Date.Format("2006-01-02")}
	for _, s := range card.Scores {
		row = append(row, s)
	}
	return append(row, card.Note, engine.Round1(card.Total()))
}

// UserExportHeader lists the membership export columns. ImportTemplateHeader
// is its leading slice, so exports round-trip through the importer.
func UserExportHeader() []string {
	return []string{
		"رقم العضوية", "الاسم الكامل", "الجنس", "العمر", "الهاتف",
		"البريد الإلكتروني", "الدولة", "مصدر المعرفة", "الحالة", "الدور", "الحلقة",
	}
}

// ImportTemplateHeader is the sheet layout handed to admins for bulk import.
func ImportTemplateHeader() []string {
	return []string{
		"الاسم الكامل", "الجنس", "العمر", "الهاتف",
		"البريد الإلكتروني", "الدولة", "مصدر المعرفة",
	}
}
