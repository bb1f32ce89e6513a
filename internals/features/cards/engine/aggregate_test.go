package engine

import (
	"testing"
	"time"
)

func cardWithTotal(userID uint, date time.Time, total float64) Scorecard {
	// Spread the total over categories without exceeding the ceiling.
	s := make([]float64, DefaultScheme.NumCategories())
	rest := total
	for i := range s {
		if rest >= DefaultScheme.CategoryMax {
			s[i] = DefaultScheme.CategoryMax
			rest -= DefaultScheme.CategoryMax
		} else {
			s[i] = rest
			rest = 0
		}
	}
	return Scorecard{UserID: userID, Date: date, Scores: s}
}

func TestSummarizeEmpty(t *testing.T) {
	agg := Summarize(nil, DefaultScheme)
	if agg.Cards != 0 || agg.TotalScore != 0 || agg.MaxScore != 0 || agg.Percentage != 0 {
		t.Fatalf("empty set: got %+v", agg)
	}
}

func TestSummarizeSingleCard(t *testing.T) {
	// [10,0,5,5,0,10,0,0,0,0,0] → total 30, max 110, 27.3%.
	card := Scorecard{UserID: 1, Date: day(2026, 3, 1),
		Scores: []float64{10, 0, 5, 5, 0, 10, 0, 0, 0, 0, 0}}
	agg := Summarize([]Scorecard{card}, DefaultScheme)
	if agg.TotalScore != 30 {
		t.Fatalf("total=%v, want 30", agg.TotalScore)
	}
	if agg.MaxScore != 110 {
		t.Fatalf("max=%v, want 110", agg.MaxScore)
	}
	if agg.Percentage != 27.3 {
		t.Fatalf("pct=%v, want 27.3", agg.Percentage)
	}
}

func TestSummarizeThreeCards(t *testing.T) {
	cards := []Scorecard{
		cardWithTotal(1, day(2026, 2, 20), 60),
		cardWithTotal(1, day(2026, 2, 21), 80),
		cardWithTotal(1, day(2026, 2, 22), 100),
	}
	agg := Summarize(cards, DefaultScheme)
	if agg.Cards != 3 || agg.TotalScore != 240 || agg.MaxScore != 330 {
		t.Fatalf("got %+v", agg)
	}
	if agg.Percentage != 72.7 {
		t.Fatalf("pct=%v, want 72.7", agg.Percentage)
	}
}

func TestSummarizeOrderInsensitive(t *testing.T) {
	a := []Scorecard{
		cardWithTotal(1, day(2026, 2, 20), 55),
		cardWithTotal(1, day(2026, 2, 21), 77),
	}
	b := []Scorecard{a[1], a[0]}
	if Summarize(a, DefaultScheme) != Summarize(b, DefaultScheme) {
		t.Fatal("summarize depends on input order")
	}
}

func TestSummarizePercentageBounded(t *testing.T) {
	cards := []Scorecard{
		cardWithTotal(1, day(2026, 2, 20), 0),
		cardWithTotal(1, day(2026, 2, 21), 110),
		cardWithTotal(1, day(2026, 2, 22), 42.5),
	}
	for n := 0; n <= len(cards); n++ {
		agg := Summarize(cards[:n], DefaultScheme)
		if agg.Percentage < 0 || agg.Percentage > 100 {
			t.Fatalf("n=%d: percentage %v out of [0,100]", n, agg.Percentage)
		}
	}
}

func TestSummarizeRangeFiltersInclusive(t *testing.T) {
	cards := []Scorecard{
		cardWithTotal(1, day(2026, 2, 19), 50),
		cardWithTotal(1, day(2026, 2, 22), 60),
		cardWithTotal(1, day(2026, 2, 25), 70),
	}
	agg := SummarizeRange(cards, day(2026, 2, 19), day(2026, 2, 22), DefaultScheme, MaxBySubmitted)
	if agg.Cards != 2 || agg.TotalScore != 110 {
		t.Fatalf("got %+v", agg)
	}
	if agg.MaxScore != 220 {
		t.Fatalf("submitted policy: max=%v, want 220", agg.MaxScore)
	}
}

func TestSummarizeRangeMaxByDays(t *testing.T) {
	cards := []Scorecard{
		cardWithTotal(1, day(2026, 2, 20), 110),
	}
	// 4-day range, one perfect card → 110/440 = 25%.
	agg := SummarizeRange(cards, day(2026, 2, 19), day(2026, 2, 22), DefaultScheme, MaxByDays)
	if agg.MaxScore != 440 {
		t.Fatalf("days policy: max=%v, want 440", agg.MaxScore)
	}
	if agg.Percentage != 25 {
		t.Fatalf("pct=%v, want 25", agg.Percentage)
	}
}

func TestDailyCoveragePartitions(t *testing.T) {
	roster := []Member{{ID: 1, Name: "user1"}, {ID: 2, Name: "user2"}, {ID: 3, Name: "user3"}}
	d1, d2 := day(2026, 3, 1), day(2026, 3, 2)
	cards := []Scorecard{
		cardWithTotal(1, d1, 10),
		cardWithTotal(1, d2, 10),
		cardWithTotal(2, d1, 10),
	}

	cov := DailyCoverage(roster, cards, d1, d2)
	if len(cov) != 2 {
		t.Fatalf("want 2 days, got %d", len(cov))
	}
	wantIDs := func(ms []Member, ids ...uint) {
		t.Helper()
		if len(ms) != len(ids) {
			t.Fatalf("want %v, got %+v", ids, ms)
		}
		for i, m := range ms {
			if m.ID != ids[i] {
				t.Fatalf("want %v, got %+v", ids, ms)
			}
		}
	}
	wantIDs(cov[0].Submitted, 1, 2)
	wantIDs(cov[0].Missing, 3)
	wantIDs(cov[1].Submitted, 1)
	wantIDs(cov[1].Missing, 2, 3)
}

func TestDailyCoverageDegenerateInputs(t *testing.T) {
	if got := DailyCoverage(nil, nil, day(2026, 3, 1), day(2026, 3, 3)); len(got) != 3 {
		t.Fatalf("empty roster: want 3 empty days, got %d", len(got))
	}
	if got := DailyCoverage([]Member{{ID: 1}}, nil, day(2026, 3, 3), day(2026, 3, 1)); got != nil {
		t.Fatalf("inverted range: want nil, got %+v", got)
	}
}

func TestWindowDays(t *testing.T) {
	if d := window().Days(); d != 29 {
		t.Fatalf("ramadan window days=%d, want 29", d)
	}
	if d := (Window{Start: day(2026, 3, 3), End: day(2026, 3, 1)}).Days(); d != 0 {
		t.Fatalf("inverted window days=%d, want 0", d)
	}
}
