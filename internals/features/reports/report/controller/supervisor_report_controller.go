package controller

import (
	"fmt"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/configs"
	"github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/constants"
	circleService "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/circles/circle/service"
	reportService "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/reports/report/service"
	helper "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/helpers"
)

type SupervisorReportController struct {
	DB *gorm.DB
}

func NewSupervisorReportController(db *gorm.DB) *SupervisorReportController {
	return &SupervisorReportController{DB: db}
}

// ExportCircleCards exports every per-day card of the caller's circle over
// the program window, one row per card. Admins may pass ?circle_id=N or
// omit it for all circles.
func (rc *SupervisorReportController) ExportCircleCards(c *fiber.Ctx) error {
	format, err := exportFormat(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.Error(c, fe.Code, fe.Message)
	}

	var circleID *uint
	if helper.GetUserRole(c) == constants.RoleSuperAdmin {
		if raw := c.Query("circle_id"); raw != "" && raw != "all" {
			id, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				return helper.Error(c, fiber.StatusBadRequest, "معرف الحلقة غير صالح")
			}
			cid := uint(id)
			circleID = &cid
		}
	} else {
		userID, err := helper.GetUserID(c)
		if err != nil {
			return helper.Error(c, fiber.StatusUnauthorized, err.Error())
		}
		circle, err := circleService.BySupervisor(rc.DB, userID)
		if err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "تعذر جلب الحلقة")
		}
		if circle == nil {
			return helper.Error(c, fiber.StatusNotFound, "لا توجد حلقة مسندة إليك")
		}
		circleID = &circle.ID
	}

	members, err := circleService.ActiveMembers(rc.DB, circleID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر جلب الأعضاء")
	}

	w := configs.ProgramWindow()
	cardsByUser, err := loadCardsByUser(rc.DB, memberIDs(members), w.Start, w.End)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر جلب البطاقات")
	}

	// Roster order (name asc), then date asc within each member.
	var rows [][]any
	for _, m := range members {
		memberID := ""
		if m.MemberID != nil {
			memberID = strconv.Itoa(*m.MemberID)
		}
		for _, card := range cardsByUser[m.ID] {
			rows = append(rows, reportService.CardDetailRow(memberID, m.FullName, card))
		}
	}

	name := fmt.Sprintf("circle_cards_%s_%s", helper.FormatDate(w.Start), helper.FormatDate(w.End))
	if format == "csv" {
		data, err := reportService.WriteCSV(reportService.CardDetailHeader(), rows)
		if err != nil {
			log.Printf("[ERROR] circle export csv: %v", err)
			return helper.Error(c, fiber.StatusInternalServerError, "تعذر إنشاء الملف")
		}
		return sendFile(c, name+".csv", csvContentType, data)
	}

	data, err := reportService.WriteXLSX("البطاقات", reportService.CardDetailHeader(), rows)
	if err != nil {
		log.Printf("[ERROR] circle export xlsx: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "تعذر إنشاء الملف")
	}
	return sendFile(c, name+".xlsx", xlsxContentType, data)
}
