package engine

import (
	"reflect"
	"testing"
)

func leaderboardProjection() Projection {
	return Projection{Fields: []Field{
		{Key: "rank", Label: "الترتيب", Value: func(e RankEntry, _ map[string]any) any { return e.Rank }},
		{Key: "full_name", Label: "الاسم", Value: func(e RankEntry, _ map[string]any) any { return e.Name }},
		{Key: "circle", Label: "الحلقة", Value: func(_ RankEntry, m map[string]any) any { return m["circle"] }},
		{Key: "total_score", Label: "المجموع", Value: func(e RankEntry, _ map[string]any) any { return e.TotalScore }},
	}}
}

func TestProjectionHeaderAndRows(t *testing.T) {
	p := leaderboardProjection()
	if got := p.Header(); !reflect.DeepEqual(got, []string{"الترتيب", "الاسم", "الحلقة", "المجموع"}) {
		t.Fatalf("header: %v", got)
	}

	entries := Rank([]Aggregate{agg(1, "A", 100), agg(2, "B", 90)}, ByTotalScore, nil)
	meta := func(e RankEntry) map[string]any {
		return map[string]any{"circle": "halqa-1"}
	}
	rows := p.Rows(entries, meta)
	if len(rows) != 2 {
		t.Fatalf("want 2 rows, got %d", len(rows))
	}
	if !reflect.DeepEqual(rows[0], []any{1, "A", "halqa-1", 100.0}) {
		t.Fatalf("row 0: %v", rows[0])
	}
	if !reflect.DeepEqual(rows[1], []any{2, "B", "halqa-1", 90.0}) {
		t.Fatalf("row 1: %v", rows[1])
	}
}

func TestProjectionRestartable(t *testing.T) {
	p := leaderboardProjection()
	entries := Rank([]Aggregate{agg(1, "A", 10), agg(2, "B", 5)}, ByTotalScore, nil)

	first := p.Rows(entries, nil)
	second := p.Rows(entries, nil)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("re-iteration produced different rows")
	}
}

func TestProjectionEachStops(t *testing.T) {
	p := leaderboardProjection()
	entries := Rank([]Aggregate{agg(1, "A", 10), agg(2, "B", 5), agg(3, "C", 1)}, ByTotalScore, nil)

	var seen int
	p.Each(entries, nil, func(row []any) bool {
		seen++
		return seen < 2
	})
	if seen != 2 {
		t.Fatalf("early stop after %d rows, want 2", seen)
	}
}

func TestProjectionPreservesOrder(t *testing.T) {
	// The projector must not re-sort what the ranking engine produced.
	p := Projection{Fields: []Field{
		{Key: "name", Label: "name", Value: func(e RankEntry, _ map[string]any) any { return e.Name }},
	}}
	entries := []RankEntry{
		{Aggregate: agg(3, "Z", 1), Rank: 1},
		{Aggregate: agg(1, "A", 2), Rank: 2},
	}
	rows := p.Rows(entries, nil)
	if rows[0][0] != "Z" || rows[1][0] != "A" {
		t.Fatalf("order changed: %v", rows)
	}
}
