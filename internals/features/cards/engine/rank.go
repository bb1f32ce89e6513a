package engine

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// RankKey selects the primary ordering attribute for a leaderboard.
type RankKey int

const (
	ByTotalScore RankKey = iota
	ByPercentage
)

func (k RankKey) value(a Aggregate) float64 {
	if k == ByPercentage {
		return a.Percentage
	}
	return a.TotalScore
}

// RankEntry is one leaderboard row.
type RankEntry struct {
	Aggregate
	Rank int `json:"rank"`
}

// NewCollator builds the name collator used for tie-breaks. Participant
// names are Arabic; collation is case-insensitive.
func NewCollator() *collate.Collator {
	return collate.New(language.Arabic, collate.IgnoreCase)
}

// Rank orders aggregates by the primary key descending, breaking ties by
// name ascending (then user id, so the order is total) and assigns standard
// competition ranks: equal primary-key values share a rank and the next
// distinct value skips past them ([100, 100, 90] → [1, 1, 3]).
//
// Rank numbers depend only on the primary key, not on the tie-break.
// Pure and deterministic: any permutation of the input produces the same
// output.
func Rank(aggs []Aggregate, key RankKey, col *collate.Collator) []RankEntry {
	if col == nil {
		col = NewCollator()
	}

	entries := make([]RankEntry, len(aggs))
	for i, a := range aggs {
		entries[i] = RankEntry{Aggregate: a}
	}
	sort.Slice(entries, func(i, j int) bool {
		vi, vj := key.value(entries[i].Aggregate), key.value(entries[j].Aggregate)
		if vi != vj {
			return vi > vj
		}
		if c := col.CompareString(entries[i].Name, entries[j].Name); c != 0 {
			return c < 0
		}
		return entries[i].UserID < entries[j].UserID
	})

	for i := range entries {
		if i > 0 && key.value(entries[i].Aggregate) == key.value(entries[i-1].Aggregate) {
			entries[i].Rank = entries[i-1].Rank
		} else {
			entries[i].Rank = i + 1
		}
	}
	return entries
}
