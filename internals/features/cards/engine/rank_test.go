package engine

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func agg(id uint, name string, total float64) Aggregate {
	return Aggregate{UserID: id, Name: name, TotalScore: total, MaxScore: 330,
		Percentage: Percentage(total, 330)}
}

func TestRankCompetitionSemantics(t *testing.T) {
	entries := Rank([]Aggregate{
		agg(1, "A", 100),
		agg(2, "B", 100),
		agg(3, "C", 90),
		agg(4, "D", 80),
	}, ByTotalScore, nil)

	require.Len(t, entries, 4)
	names := []string{entries[0].Name, entries[1].Name, entries[2].Name, entries[3].Name}
	assert.Equal(t, []string{"A", "B", "C", "D"}, names)
	ranks := []int{entries[0].Rank, entries[1].Rank, entries[2].Rank, entries[3].Rank}
	assert.Equal(t, []int{1, 1, 3, 4}, ranks)
}

func TestRankDeterministicUnderPermutation(t *testing.T) {
	aggs := []Aggregate{
		agg(1, "خالد", 100),
		agg(2, "أحمد", 100),
		agg(3, "سارة", 95.5),
		agg(4, "ليلى", 95.5),
		agg(5, "محمد", 80),
	}
	want := Rank(aggs, ByTotalScore, nil)

	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 20; i++ {
		shuffled := make([]Aggregate, len(aggs))
		copy(shuffled, aggs)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		got := Rank(shuffled, ByTotalScore, nil)
		if !reflect.DeepEqual(want, got) {
			t.Fatalf("permutation %d changed the ranking:\nwant %+v\ngot  %+v", i, want, got)
		}
	}
}

func TestRankTieBreakByName(t *testing.T) {
	entries := Rank([]Aggregate{
		agg(9, "يوسف", 50),
		agg(8, "آدم", 50),
	}, ByTotalScore, nil)
	// Same score: both rank 1, ordered by collated name.
	assert.Equal(t, "آدم", entries[0].Name)
	assert.Equal(t, "يوسف", entries[1].Name)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 1, entries[1].Rank)
}

func TestRankEdgeCases(t *testing.T) {
	assert.Empty(t, Rank(nil, ByTotalScore, nil))

	single := Rank([]Aggregate{agg(1, "A", 10)}, ByTotalScore, nil)
	require.Len(t, single, 1)
	assert.Equal(t, 1, single[0].Rank)

	same := Rank([]Aggregate{agg(1, "A", 42), agg(2, "B", 42), agg(3, "C", 42)}, ByTotalScore, nil)
	for _, e := range same {
		assert.Equal(t, 1, e.Rank)
	}
}

func TestRankByPercentage(t *testing.T) {
	a := agg(1, "A", 100) // 30.3% of 330
	b := Aggregate{UserID: 2, Name: "B", TotalScore: 90, MaxScore: 110, Percentage: Percentage(90, 110)} // 81.8%
	entries := Rank([]Aggregate{a, b}, ByPercentage, nil)
	assert.Equal(t, "B", entries[0].Name)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 2, entries[1].Rank)
}

func TestRankDoesNotMutateInput(t *testing.T) {
	aggs := []Aggregate{agg(1, "B", 10), agg(2, "A", 20)}
	_ = Rank(aggs, ByTotalScore, nil)
	assert.Equal(t, "B", aggs[0].Name, "input slice reordered")
}
