package dto

import (
	"strings"
	"time"

	cardModel "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/cards/card/model"
	"github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/cards/engine"
	helper "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/helpers"
)

/* =======================================================
   REQUEST DTO
   ======================================================= */

// CardRequest is one daily card as submitted. Range checks live in the
// engine validator; the struct tags only guard shape so error messages come
// from one place.
type CardRequest struct {
	Date string `json:"date" validate:"required"`

	Quran            float64 `json:"quran"`
	Duas             float64 `json:"duas"`
	Taraweeh         float64 `json:"taraweeh"`
	Tahajjud         float64 `json:"tahajjud"`
	Duha             float64 `json:"duha"`
	Rawatib          float64 `json:"rawatib"`
	MainLesson       float64 `json:"main_lesson"`
	RequiredLesson   float64 `json:"required_lesson"`
	EnrichmentLesson float64 `json:"enrichment_lesson"`
	CharityWorship   float64 `json:"charity_worship"`
	ExtraWork        float64 `json:"extra_work"`

	ExtraWorkDescription string `json:"extra_work_description"`
}

// ToEngineInput parses the date and lines the scores up with the category
// order expected by the validator.
func (r *CardRequest) ToEngineInput(userID uint) (engine.CardInput, error) {
	d, err := helper.ParseDate(r.Date)
	if err != nil {
		return engine.CardInput{}, err
	}
	return engine.CardInput{
		UserID: userID,
		Date:   d,
		Scores: []float64{
			r.Quran, r.Duas, r.Taraweeh, r.Tahajjud, r.Duha, r.Rawatib,
			r.MainLesson, r.RequiredLesson, r.EnrichmentLesson,
			r.CharityWorship, r.ExtraWork,
		},
		Note: strings.TrimSpace(r.ExtraWorkDescription),
	}, nil
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type CardResponse struct {
	ID     uint   `json:"id"`
	UserID uint   `json:"user_id"`
	Date   string `json:"date"`

	Quran            float64 `json:"quran"`
	Duas             float64 `json:"duas"`
	Taraweeh         float64 `json:"taraweeh"`
	Tahajjud         float64 `json:"tahajjud"`
	Duha             float64 `json:"duha"`
	Rawatib          float64 `json:"rawatib"`
	MainLesson       float64 `json:"main_lesson"`
	RequiredLesson   float64 `json:"required_lesson"`
	EnrichmentLesson float64 `json:"enrichment_lesson"`
	CharityWorship   float64 `json:"charity_worship"`
	ExtraWork        float64 `json:"extra_work"`

	ExtraWorkDescription string `json:"extra_work_description"`

	TotalScore float64 `json:"total_score"`
	MaxScore   float64 `json:"max_score"`
	Percentage float64 `json:"percentage"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewCardResponse(m cardModel.DailyCardModel, scheme engine.Scheme) CardResponse {
	total := m.ToEngine().Total()
	max := scheme.MaxPerDay()
	return CardResponse{
		ID:     m.ID,
		UserID: m.UserID,
		Date:   helper.FormatDate(m.Date),

		Quran:            m.Quran,
		Duas:             m.Duas,
		Taraweeh:         m.Taraweeh,
		Tahajjud:         m.Tahajjud,
		Duha:             m.Duha,
		Rawatib:          m.Rawatib,
		MainLesson:       m.MainLesson,
		RequiredLesson:   m.RequiredLesson,
		EnrichmentLesson: m.EnrichmentLesson,
		CharityWorship:   m.CharityWorship,
		ExtraWork:        m.ExtraWork,

		ExtraWorkDescription: m.ExtraWorkDescription,

		TotalScore: engine.Round1(total),
		MaxScore:   max,
		Percentage: engine.Percentage(total, max),

		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func NewCardResponses(rows []cardModel.DailyCardModel, scheme engine.Scheme) []CardResponse {
	out := make([]CardResponse, len(rows))
	for i := range rows {
		out[i] = NewCardResponse(rows[i], scheme)
	}
	return out
}

// StatsResponse is the participant's personal rollup plus today's figures
// and circle facts.
type StatsResponse struct {
	engine.Aggregate
	TodaySubmitted  bool    `json:"today_submitted"`
	TodayScore      float64 `json:"today_score"`
	TodayPercentage float64 `json:"today_percentage"`
	CircleName      string  `json:"circle_name,omitempty"`
	SupervisorName  string  `json:"supervisor_name,omitempty"`
	SupervisorPhone string  `json:"supervisor_phone,omitempty"`
}
