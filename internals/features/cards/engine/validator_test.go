package engine

import (
	"errors"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func window() Window {
	return Window{Start: day(2026, 2, 19), End: day(2026, 3, 19)}
}

func scores(vals ...float64) []float64 {
	s := make([]float64, DefaultScheme.NumCategories())
	copy(s, vals)
	return s
}

func TestValidateCardScoreBounds(t *testing.T) {
	today := day(2026, 3, 1)
	cases := []struct {
		value float64
		ok    bool
	}{
		{0, true},
		{10, true},
		{5.5, true},
		{-0.01, false},
		{10.01, false},
	}
	for _, c := range cases {
		in := CardInput{UserID: 1, Date: day(2026, 3, 1), Scores: scores(c.value)}
		_, err := ValidateCard(in, DefaultScheme, window(), today, false)
		if c.ok && err != nil {
			t.Fatalf("value %v: unexpected error %v", c.value, err)
		}
		if !c.ok {
			var oor *ScoreOutOfRangeError
			if !errors.As(err, &oor) {
				t.Fatalf("value %v: want ScoreOutOfRangeError, got %v", c.value, err)
			}
			if oor.Category != "quran" {
				t.Fatalf("value %v: wrong category %q", c.value, oor.Category)
			}
		}
	}
}

func TestValidateCardDateWindow(t *testing.T) {
	today := day(2026, 3, 19)
	cases := []struct {
		date time.Time
		ok   bool
	}{
		{day(2026, 2, 18), false},
		{day(2026, 2, 19), true},
		{day(2026, 3, 19), true},
		{day(2026, 3, 20), false},
	}
	for _, c := range cases {
		in := CardInput{UserID: 1, Date: c.date, Scores: scores()}
		_, err := ValidateCard(in, DefaultScheme, window(), today, false)
		if c.ok && err != nil {
			t.Fatalf("date %s: unexpected error %v", c.date.Format("2006-01-02"), err)
		}
		if !c.ok {
			var dow *DateOutOfWindowError
			if !errors.As(err, &dow) {
				t.Fatalf("date %s: want DateOutOfWindowError, got %v", c.date.Format("2006-01-02"), err)
			}
		}
	}
}

func TestValidateCardFutureDate(t *testing.T) {
	today := day(2026, 3, 1)
	in := CardInput{UserID: 1, Date: day(2026, 3, 2), Scores: scores()}

	_, err := ValidateCard(in, DefaultScheme, window(), today, false)
	var fd *FutureDateError
	if !errors.As(err, &fd) {
		t.Fatalf("self-service future date: want FutureDateError, got %v", err)
	}

	// Supervisors editing on behalf of a member may backfill and pre-fill.
	if _, err := ValidateCard(in, DefaultScheme, window(), today, true); err != nil {
		t.Fatalf("privileged future date: unexpected error %v", err)
	}

	// Today itself is always fine.
	in.Date = today
	if _, err := ValidateCard(in, DefaultScheme, window(), today, false); err != nil {
		t.Fatalf("today: unexpected error %v", err)
	}
}

func TestValidateCardNormalizes(t *testing.T) {
	in := CardInput{
		UserID: 7,
		Date:   time.Date(2026, 3, 1, 23, 45, 12, 0, time.FixedZone("x", 3*3600)),
		Scores: scores(10, 0, 5),
		Note:   "  حفظ سورة الملك  ",
	}
	card, err := ValidateCard(in, DefaultScheme, window(), day(2026, 3, 5), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !card.Date.Equal(day(2026, 3, 1)) {
		t.Fatalf("date not normalized: %v", card.Date)
	}
	if card.Note != "حفظ سورة الملك" {
		t.Fatalf("note not trimmed: %q", card.Note)
	}
	// Normalization copies, never aliases caller memory.
	in.Scores[0] = 3
	if card.Scores[0] != 10 {
		t.Fatalf("scores aliased to input")
	}
}

func TestValidateCardRejectsWrongArity(t *testing.T) {
	in := CardInput{UserID: 1, Date: day(2026, 3, 1), Scores: []float64{1, 2, 3}}
	if _, err := ValidateCard(in, DefaultScheme, window(), day(2026, 3, 1), false); err == nil {
		t.Fatal("want error for wrong score count")
	}
}

func TestParseScore(t *testing.T) {
	cases := []struct {
		raw  any
		want float64
		ok   bool
	}{
		{"0", 0, true},
		{"7.5", 7.5, true},
		{" 10 ", 10, true},
		{"", 0, true},
		{nil, 0, true},
		{3, 3, true},
		{float64(4.2), 4.2, true},
		{"abc", 0, false},
	}
	for _, c := range cases {
		got, err := ParseScore(c.raw)
		if c.ok != (err == nil) {
			t.Fatalf("ParseScore(%v): err=%v, want ok=%v", c.raw, err, c.ok)
		}
		if err == nil && got != c.want {
			t.Fatalf("ParseScore(%v)=%v, want %v", c.raw, got, c.want)
		}
	}
}
