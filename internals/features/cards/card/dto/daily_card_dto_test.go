package dto

import (
	"testing"
	"time"

	cardModel "github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/cards/card/model"
	"github.com/BetulAlbayrak1999/ramadan-program-management-basira-org/internals/features/cards/engine"
)

func TestCardRequestToEngineInput(t *testing.T) {
	req := CardRequest{
		Date:                 "2026-02-20",
		Quran:                10,
		Duas:                 1,
		Taraweeh:             2,
		Tahajjud:             3,
		Duha:                 4,
		Rawatib:              5,
		MainLesson:           6,
		RequiredLesson:       7,
		EnrichmentLesson:     8,
		CharityWorship:       9,
		ExtraWork:            10,
		ExtraWorkDescription: "  زيارة مريض  ",
	}

	in, err := req.ToEngineInput(42)
	if err != nil {
		t.Fatalf("ToEngineInput: %v", err)
	}
	if in.UserID != 42 {
		t.Errorf("UserID = %d", in.UserID)
	}
	if !in.Date.Equal(time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Date = %v", in.Date)
	}

	want := []float64{10, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	if len(in.Scores) != len(want) {
		t.Fatalf("got %d scores", len(in.Scores))
	}
	for i := range want {
		if in.Scores[i] != want[i] {
			t.Errorf("score[%d] (%s) = %v, want %v", i, engine.Categories[i].Key, in.Scores[i], want[i])
		}
	}
	if in.Note != "زيارة مريض" {
		t.Errorf("note not trimmed: %q", in.Note)
	}
}

func TestCardRequestBadDate(t *testing.T) {
	for _, date := range []string{"", "20-02-2026", "2026/02/20", "yesterday"} {
		req := CardRequest{Date: date}
		if _, err := req.ToEngineInput(1); err == nil {
			t.Errorf("date %q accepted", date)
		}
	}
}

func TestNewCardResponseDerivedFields(t *testing.T) {
	row := cardModel.DailyCardModel{
		ID:     5,
		UserID: 42,
		Date:   time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC),
		Quran:  10, Duas: 10, Taraweeh: 10,
	}

	resp := NewCardResponse(row, engine.DefaultScheme)
	if resp.Date != "2026-02-20" {
		t.Errorf("Date = %q", resp.Date)
	}
	if resp.TotalScore != 30 {
		t.Errorf("TotalScore = %v", resp.TotalScore)
	}
	if resp.MaxScore != 110 {
		t.Errorf("MaxScore = %v", resp.MaxScore)
	}
	if resp.Percentage != 27.3 {
		t.Errorf("Percentage = %v", resp.Percentage)
	}
}
