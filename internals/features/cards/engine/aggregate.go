package engine

import "time"

// Aggregate is one user's rollup over a set of cards. Never persisted.
type Aggregate struct {
	UserID     uint    `json:"user_id"`
	Name       string  `json:"full_name"`
	Cards      int     `json:"cards_count"`
	TotalScore float64 `json:"total_score"`
	MaxScore   float64 `json:"max_score"`
	Percentage float64 `json:"percentage"`
}

// MaxPolicy picks the denominator for range aggregates.
//
// Participant stats divide by the cards actually submitted (a user is not
// penalized for days before they joined), while leaderboards and range
// reports divide by the days in range so a missed day costs its full daily
// ceiling. Callers choose explicitly.
type MaxPolicy int

const (
	// MaxBySubmitted: max = cards × per-day ceiling.
	MaxBySubmitted MaxPolicy = iota
	// MaxByDays: max = days in range × per-day ceiling.
	MaxByDays
)

// Summarize rolls up all cards of one user. Empty input yields the zero
// aggregate (percentage 0, no division fault). Order-insensitive.
func Summarize(cards []Scorecard, scheme Scheme) Aggregate {
	var agg Aggregate
	for _, c := range cards {
		agg.UserID = c.UserID
		agg.Cards++
		agg.TotalScore += c.Total()
	}
	agg.MaxScore = float64(agg.Cards) * scheme.MaxPerDay()
	agg.Percentage = Percentage(agg.TotalScore, agg.MaxScore)
	return agg
}

// SummarizeRange filters to cards dated within [from, to] inclusive, then
// rolls up with the chosen max policy.
func SummarizeRange(cards []Scorecard, from, to time.Time, scheme Scheme, policy MaxPolicy) Aggregate {
	w := Window{Start: from, End: to}
	var inRange []Scorecard
	for _, c := range cards {
		if w.Contains(c.Date) {
			inRange = append(inRange, c)
		}
	}
	agg := Summarize(inRange, scheme)
	if policy == MaxByDays {
		agg.MaxScore = float64(w.Days()) * scheme.MaxPerDay()
		agg.Percentage = Percentage(agg.TotalScore, agg.MaxScore)
	}
	return agg
}

// Member is a roster entry for coverage reports.
type Member struct {
	ID   uint   `json:"user_id"`
	Name string `json:"full_name"`
}

// DayCoverage partitions a roster into who submitted a card on one date and
// who did not.
type DayCoverage struct {
	Date      time.Time `json:"date"`
	Submitted []Member  `json:"submitted"`
	Missing   []Member  `json:"missing"`
}

// DailyCoverage computes per-day submission coverage for a roster over
// [from, to] inclusive. An empty roster or inverted range yields an empty
// result. Roster order is preserved inside each partition.
func DailyCoverage(roster []Member, cards []Scorecard, from, to time.Time) []DayCoverage {
	from, to = DateOnly(from), DateOnly(to)
	if to.Before(from) {
		return nil
	}

	submitted := make(map[uint]map[time.Time]bool, len(roster))
	for _, c := range cards {
		days := submitted[c.UserID]
		if days == nil {
			days = make(map[time.Time]bool)
			submitted[c.UserID] = days
		}
		days[DateOnly(c.Date)] = true
	}

	var out []DayCoverage
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		cov := DayCoverage{Date: d, Submitted: []Member{}, Missing: []Member{}}
		for _, m := range roster {
			if submitted[m.ID][d] {
				cov.Submitted = append(cov.Submitted, m)
			} else {
				cov.Missing = append(cov.Missing, m)
			}
		}
		out = append(out, cov)
	}
	return out
}
