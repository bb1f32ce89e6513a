package model

import (
	"time"

	"github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/cards/engine"
)

// DailyCardModel is one user's card for one calendar day. The natural key
// (user_id, date) is enforced by a composite unique index; the create-only
// participant path relies on the constraint to reject duplicates.
type DailyCardModel struct {
	ID     uint      `gorm:"column:id;primaryKey" json:"id"`
	UserID uint      `gorm:"column:user_id;not null;uniqueIndex:uniq_user_date" json:"user_id"`
	Date   time.Time `gorm:"column:date;type:date;not null;uniqueIndex:uniq_user_date" json:"date"`

	Quran            float64 `gorm:"column:quran;default:0" json:"quran"`
	Duas             float64 `gorm:"column:duas;default:0" json:"duas"`
	Taraweeh         float64 `gorm:"column:taraweeh;default:0" json:"taraweeh"`
	Tahajjud         float64 `gorm:"column:tahajjud;default:0" json:"tahajjud"`
	Duha             float64 `gorm:"column:duha;default:0" json:"duha"`
	Rawatib          float64 `gorm:"column:rawatib;default:0" json:"rawatib"`
	MainLesson       float64 `gorm:"column:main_lesson;default:0" json:"main_lesson"`
	RequiredLesson   float64 `gorm:"column:required_lesson;default:0" json:"required_lesson"`
	EnrichmentLesson float64 `gorm:"column:enrichment_lesson;default:0" json:"enrichment_lesson"`
	CharityWorship   float64 `gorm:"column:charity_worship;default:0" json:"charity_worship"`
	ExtraWork        float64 `gorm:"column:extra_work;default:0" json:"extra_work"`

	ExtraWorkDescription string `gorm:"column:extra_work_description;type:text" json:"extra_work_description"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (DailyCardModel) TableName() string {
	return "daily_cards"
}

// Scores returns the category values in the engine's fixed display order.
func (c *DailyCardModel) Scores() []float64 {
	return []float64{
		c.Quran, c.Duas, c.Taraweeh, c.Tahajjud, c.Duha, c.Rawatib,
		c.MainLesson, c.RequiredLesson, c.EnrichmentLesson,
		c.CharityWorship, c.ExtraWork,
	}
}

// SetScores applies an engine-validated card back onto the row.
func (c *DailyCardModel) SetScores(card engine.Scorecard) {
	s := card.Scores
	c.Quran, c.Duas, c.Taraweeh, c.Tahajjud, c.Duha, c.Rawatib = s[0], s[1], s[2], s[3], s[4], s[5]
	c.MainLesson, c.RequiredLesson, c.EnrichmentLesson = s[6], s[7], s[8]
	c.CharityWorship, c.ExtraWork = s[9], s[10]
	c.ExtraWorkDescription = card.Note
	c.Date = card.Date
	c.UserID = card.UserID
}

// ToEngine converts the row to the engine's value type.
func (c *DailyCardModel) ToEngine() engine.Scorecard {
	return engine.Scorecard{
		UserID: c.UserID,
		Date:   engine.DateOnly(c.Date),
		Scores: c.Scores(),
		Note:   c.ExtraWorkDescription,
	}
}

// ToEngineCards converts a result set in one pass.
func ToEngineCards(rows []DailyCardModel) []engine.Scorecard {
	out := make([]engine.Scorecard, len(rows))
	for i := range rows {
		out[i] = rows[i].ToEngine()
	}
	return out
}
