// Package engine holds the scorecard aggregation core: card validation,
// per-user rollups, leaderboard ranking and tabular projection. Everything
// here is a pure function over values already loaded from storage — no DB,
// no Fiber, no globals.
package engine

import (
	"math"
	"time"
)

// Category is one scored activity on the daily card. Label is the Arabic
// display name used by exports.
type Category struct {
	Key   string
	Label string
}

// Categories is the fixed display order for the eleven daily activities.
var Categories = []Category{
	{Key: "quran", Label: "وِرد القرآن"},
	{Key: "duas", Label: "الأدعية"},
	{Key: "taraweeh", Label: "صلاة التراويح"},
	{Key: "tahajjud", Label: "التهجد والوتر"},
	{Key: "duha", Label: "صلاة الضحى"},
	{Key: "rawatib", Label: "السنن الرواتب"},
	{Key: "main_lesson", Label: "المقطع الأساسي"},
	{Key: "required_lesson", Label: "المقطع الواجب"},
	{Key: "enrichment_lesson", Label: "المقطع الإثرائي"},
	{Key: "charity_worship", Label: "عبادة متعدية"},
	{Key: "extra_work", Label: "أعمال إضافية"},
}

// Scheme describes the scoring layout. Threaded as a value so the category
// set or ceiling can change between deployments without touching the engine.
type Scheme struct {
	CategoryMax float64
	Categories  []Category
}

// DefaultScheme is the production layout: 11 categories, 0-10 each.
var DefaultScheme = Scheme{CategoryMax: 10, Categories: Categories}

func (s Scheme) NumCategories() int { return len(s.Categories) }

// MaxPerDay is the theoretical ceiling of a single card (110 by default).
func (s Scheme) MaxPerDay() float64 {
	return float64(len(s.Categories)) * s.CategoryMax
}

// Window is the observance period. Both ends inclusive, date-only.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether d falls inside the window.
func (w Window) Contains(d time.Time) bool {
	d = DateOnly(d)
	return !d.Before(DateOnly(w.Start)) && !d.After(DateOnly(w.End))
}

// Days is the number of calendar days in the window.
func (w Window) Days() int {
	start, end := DateOnly(w.Start), DateOnly(w.End)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// DateOnly strips the time component; all engine date math runs on UTC
// midnights.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Scorecard is one validated daily card as the engine sees it. Scores is
// index-aligned with the scheme's category list.
type Scorecard struct {
	UserID uint
	Date   time.Time
	Scores []float64
	Note   string
}

// Total is the card's summed score.
func (c Scorecard) Total() float64 {
	var t float64
	for _, v := range c.Scores {
		t += v
	}
	return t
}

// Round1 rounds to one decimal place, the precision used for every
// percentage the system reports.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Percentage computes round(total/max*100, 1) treating max <= 0 as 0.
func Percentage(total, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return Round1(total / max * 100)
}
